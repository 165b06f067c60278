package report

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotUnderstood signals that a free-text question carries no recognizable
// report trigger. Callers should show usage hints instead of a report.
var ErrNotUnderstood = errors.New("question not understood")

// ReportRequest is the structured form every report runs from. The free-text
// parser below is a best-effort adapter producing one of these; API callers
// build it directly from query parameters.
type ReportRequest struct {
	Metric Metric `json:"metric"`
	Period Period `json:"period"`
	TopN   int    `json:"top_n"`
}

// DefaultTopN applies when a question or request names no count.
const DefaultTopN = 10

// Keyword sets for intent classification, matched as substrings of the
// lowercased question.
var (
	orderCountPhrases = []string{
		"nhiều đơn hàng", "nhiều hóa đơn", "đơn hàng nhiều", "hóa đơn nhiều",
		"số đơn", "số hóa đơn", "xuất hiện nhiều",
	}
	revenuePhrases = []string{
		"doanh thu", "lợi nhuận", "thu nhập", "tiền", "revenue", "profit",
		"mang lại nhiều", "kiếm được nhiều", "sinh lời",
	}
)

var (
	firstNumberRe = regexp.MustCompile(`\d+`)
	yearScopeRe   = regexp.MustCompile(`năm (\d{4})`)
	monthScopeRe  = regexp.MustCompile(`tháng (\d+)`)
	anyYearRe     = regexp.MustCompile(`\d{4}`)
)

// Fallback scope when a question triggers a report but names no period.
var defaultPeriod = MonthPeriod(8, 2025)

// ParseQuestion classifies a Vietnamese free-text question into a report
// request: metric by keyword, top-N from the first integer, period from
// "năm"/"tháng" scope words. Questions without a "top" trigger are rejected
// with ErrNotUnderstood.
func ParseQuestion(question string) (ReportRequest, error) {
	q := strings.ToLower(question)

	if !strings.Contains(q, "top") {
		return ReportRequest{}, ErrNotUnderstood
	}

	req := ReportRequest{
		Metric: classifyMetric(q),
		TopN:   DefaultTopN,
		Period: defaultPeriod,
	}

	if num := firstNumberRe.FindString(q); num != "" {
		if n, err := strconv.Atoi(num); err == nil {
			req.TopN = n
		}
	}

	switch {
	case strings.Contains(q, "năm"):
		year := 2024
		if m := yearScopeRe.FindStringSubmatch(q); m != nil {
			year, _ = strconv.Atoi(m[1])
		}
		req.Period = YearPeriod(year)

	case strings.Contains(q, "tháng"):
		month := 8
		if m := monthScopeRe.FindStringSubmatch(q); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 12 {
				month = n
			}
		}
		year := 2025
		if m := anyYearRe.FindString(q); m != "" {
			year, _ = strconv.Atoi(m)
		}
		req.Period = MonthPeriod(month, year)
	}

	return req, nil
}

func classifyMetric(q string) Metric {
	for _, phrase := range orderCountPhrases {
		if strings.Contains(q, phrase) {
			return MetricOrderCount
		}
	}
	for _, phrase := range revenuePhrases {
		if strings.Contains(q, phrase) {
			return MetricRevenue
		}
	}
	return MetricQuantity
}
