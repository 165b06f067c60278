package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PotentialConfig carries the thresholds and weights of the marketing
// potential heuristic. These are business rules, not derived from data;
// keeping them here lets operations tune them without a code change.
type PotentialConfig struct {
	// Filter: a product qualifies only when it clears all three bars.
	MinRevenue      decimal.Decimal `json:"min_revenue"`       // high-value product
	MaxInvoiceCount int             `json:"max_invoice_count"` // not yet popular
	MinAvgPrice     decimal.Decimal `json:"min_avg_price"`     // not a cheap item

	// Scoring: score = min(revenue/RevenueCap, 1)*RevenueWeight
	//                + min(avgPrice/AvgPriceCap, 1)*PriceWeight
	//                + max(ScarcityBase - invoiceCount, 0)
	RevenueCap    float64 `json:"revenue_cap"`
	AvgPriceCap   float64 `json:"avg_price_cap"`
	RevenueWeight float64 `json:"revenue_weight"`
	PriceWeight   float64 `json:"price_weight"`
	ScarcityBase  float64 `json:"scarcity_base"`

	TopN int `json:"top_n"`
}

// DefaultPotentialConfig returns the heuristic's default tuning:
// revenue ≥ 50M VND, at most 30 orders, average price ≥ 200k VND,
// weighted 40/30/30 with caps at 1B revenue and 10M average price.
func DefaultPotentialConfig() PotentialConfig {
	return PotentialConfig{
		MinRevenue:      decimal.NewFromInt(50_000_000),
		MaxInvoiceCount: 30,
		MinAvgPrice:     decimal.NewFromInt(200_000),
		RevenueCap:      1_000_000_000,
		AvgPriceCap:     10_000_000,
		RevenueWeight:   40,
		PriceWeight:     30,
		ScarcityBase:    30,
		TopN:            10,
	}
}

// ScoredProduct is a qualifying product with its potential score.
type ScoredProduct struct {
	ProductMetrics
	Score float64 `json:"potential_score"`
}

// ScorePotential filters products that sell well in value but rarely in
// order count, scores them, and returns the top candidates descending by
// score. Ties keep aggregation order.
func ScorePotential(stats *ProductStats, cfg PotentialConfig) []ScoredProduct {
	var candidates []ScoredProduct

	for _, m := range stats.All() {
		avgPrice := m.AvgPrice()
		if m.TotalRevenue.LessThan(cfg.MinRevenue) ||
			m.InvoiceCount > cfg.MaxInvoiceCount ||
			avgPrice.LessThan(cfg.MinAvgPrice) {
			continue
		}

		revenueScore := clamp01(m.TotalRevenue.InexactFloat64()/cfg.RevenueCap) * cfg.RevenueWeight
		priceScore := clamp01(avgPrice.InexactFloat64()/cfg.AvgPriceCap) * cfg.PriceWeight
		scarcityScore := cfg.ScarcityBase - float64(m.InvoiceCount)
		if scarcityScore < 0 {
			scarcityScore = 0
		}

		candidates = append(candidates, ScoredProduct{
			ProductMetrics: m,
			Score:          revenueScore + priceScore + scarcityScore,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if cfg.TopN > 0 && len(candidates) > cfg.TopN {
		candidates = candidates[:cfg.TopN]
	}
	return candidates
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
