package params

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kvreport/internal/report"
)

const (
	DefaultTopN = 10
	MaxTopN     = 100
	MinTopN     = 1
)

// TopN extracts and bounds the "top" query parameter.
func TopN(c *gin.Context) int {
	top, _ := strconv.Atoi(c.DefaultQuery("top", strconv.Itoa(DefaultTopN)))
	if top < MinTopN {
		top = DefaultTopN
	}
	if top > MaxTopN {
		top = MaxTopN
	}
	return top
}

// Period extracts the report scope from "month"/"year" query parameters.
// No parameters means the current month; a year alone means the whole year;
// a month alone assumes the current year.
func Period(c *gin.Context) (report.Period, bool) {
	now := time.Now()

	monthStr := c.Query("month")
	yearStr := c.Query("year")

	if monthStr == "" && yearStr == "" {
		return report.MonthPeriod(int(now.Month()), now.Year()), true
	}

	year := now.Year()
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return report.Period{}, false
		}
		year = y
	}

	if monthStr == "" {
		p := report.YearPeriod(year)
		return p, p.Valid()
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return report.Period{}, false
	}
	p := report.MonthPeriod(month, year)
	if p.Month < 1 {
		return report.Period{}, false
	}
	return p, p.Valid()
}
