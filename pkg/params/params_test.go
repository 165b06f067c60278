package params

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvreport/internal/report"
)

func ctxWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestTopN(t *testing.T) {
	assert.Equal(t, 10, TopN(ctxWithQuery(t, "")))
	assert.Equal(t, 5, TopN(ctxWithQuery(t, "top=5")))
	assert.Equal(t, 100, TopN(ctxWithQuery(t, "top=5000")), "capped at the maximum")
	assert.Equal(t, 10, TopN(ctxWithQuery(t, "top=0")))
	assert.Equal(t, 10, TopN(ctxWithQuery(t, "top=-3")))
	assert.Equal(t, 10, TopN(ctxWithQuery(t, "top=abc")))
}

func TestPeriodDefaultsToCurrentMonth(t *testing.T) {
	p, ok := Period(ctxWithQuery(t, ""))
	require.True(t, ok)

	now := time.Now()
	assert.Equal(t, report.MonthPeriod(int(now.Month()), now.Year()), p)
}

func TestPeriodYearOnly(t *testing.T) {
	p, ok := Period(ctxWithQuery(t, "year=2024"))
	require.True(t, ok)
	assert.Equal(t, report.YearPeriod(2024), p)
}

func TestPeriodMonthAndYear(t *testing.T) {
	p, ok := Period(ctxWithQuery(t, "month=8&year=2025"))
	require.True(t, ok)
	assert.Equal(t, report.MonthPeriod(8, 2025), p)
}

func TestPeriodMonthAssumesCurrentYear(t *testing.T) {
	p, ok := Period(ctxWithQuery(t, "month=3"))
	require.True(t, ok)
	assert.Equal(t, report.MonthPeriod(3, time.Now().Year()), p)
}

func TestPeriodInvalid(t *testing.T) {
	for _, q := range []string{
		"month=13&year=2024",
		"month=0&year=2024",
		"month=abc",
		"year=abc",
		"year=1",
	} {
		_, ok := Period(ctxWithQuery(t, q))
		assert.False(t, ok, "query %q", q)
	}
}
