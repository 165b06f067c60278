package report

import (
	"sort"
)

// Metric selects the ranking key.
type Metric string

const (
	MetricQuantity   Metric = "quantity"
	MetricRevenue    Metric = "revenue"
	MetricOrderCount Metric = "orders"
)

// Ranking is an ordered top-N view over product metrics, sorted descending
// by one metric. Ties keep their first-seen aggregation order.
type Ranking []ProductMetrics

// TopByQuantity ranks products by cumulative quantity sold.
func TopByQuantity(stats *ProductStats, topN int) Ranking {
	return topBy(stats, topN, func(a, b ProductMetrics) bool {
		return a.TotalQuantity > b.TotalQuantity
	})
}

// TopByRevenue ranks products by cumulative revenue.
func TopByRevenue(stats *ProductStats, topN int) Ranking {
	return topBy(stats, topN, func(a, b ProductMetrics) bool {
		return a.TotalRevenue.GreaterThan(b.TotalRevenue)
	})
}

// TopByOrderCount ranks products by the number of orders they appear on.
func TopByOrderCount(stats *ProductStats, topN int) Ranking {
	return topBy(stats, topN, func(a, b ProductMetrics) bool {
		return a.InvoiceCount > b.InvoiceCount
	})
}

// RankBy dispatches to the ranker for the given metric. Unknown metrics
// fall back to quantity, mirroring the default report.
func RankBy(metric Metric, stats *ProductStats, topN int) Ranking {
	switch metric {
	case MetricRevenue:
		return TopByRevenue(stats, topN)
	case MetricOrderCount:
		return TopByOrderCount(stats, topN)
	default:
		return TopByQuantity(stats, topN)
	}
}

func topBy(stats *ProductStats, topN int, greater func(a, b ProductMetrics) bool) Ranking {
	all := stats.All()
	sort.SliceStable(all, func(i, j int) bool {
		return greater(all[i], all[j])
	})
	if topN >= 0 && topN < len(all) {
		all = all[:topN]
	}
	return Ranking(all)
}
