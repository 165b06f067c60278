package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kvreport/internal/kiotviet"
)

// InvoiceCache stores full period fetches so repeated reports over the same
// range skip the API. Misses are signalled with ok == false.
type InvoiceCache interface {
	GetInvoices(ctx context.Context, from, to time.Time) ([]kiotviet.Invoice, bool)
	SaveInvoices(ctx context.Context, from, to time.Time, invoices []kiotviet.Invoice)
}

// FetchInfo describes how a report's underlying fetch went.
type FetchInfo struct {
	Status       FetchStatus `json:"status"`
	Pages        int         `json:"pages"`
	InvoiceCount int         `json:"invoice_count"`
	FromCache    bool        `json:"from_cache"`
	Error        string      `json:"error,omitempty"`
}

// Report is a ranked top-N view over one period.
type Report struct {
	RunID   string        `json:"run_id"`
	Request ReportRequest `json:"request"`
	Fetch   FetchInfo     `json:"fetch"`
	Ranking Ranking       `json:"ranking"`
}

// TotalRevenue sums the revenue of the ranked products, used for the
// revenue-share column of the console report.
func (r *Report) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.Ranking {
		total = total.Add(m.TotalRevenue)
	}
	return total
}

// PotentialReport lists under-exposed high-value products with scores.
type PotentialReport struct {
	RunID    string          `json:"run_id"`
	Period   Period          `json:"period"`
	Fetch    FetchInfo       `json:"fetch"`
	Config   PotentialConfig `json:"config"`
	Products []ScoredProduct `json:"products"`
}

// ComparisonEntry is a product present in both the order-count and revenue
// top lists, with its rank in each.
type ComparisonEntry struct {
	ProductName string `json:"product_name"`
	OrderRank   int    `json:"order_rank"`
	RevenueRank int    `json:"revenue_rank"`
}

// ComparisonReport contrasts the order-count and revenue rankings.
type ComparisonReport struct {
	RunID           string            `json:"run_id"`
	Period          Period            `json:"period"`
	Fetch           FetchInfo         `json:"fetch"`
	ByOrderCount    Ranking           `json:"by_order_count"`
	ByRevenue       Ranking           `json:"by_revenue"`
	Common          []ComparisonEntry `json:"common"`
	OnlyOrderCount  int               `json:"only_order_count"`
	OnlyRevenue     int               `json:"only_revenue"`
	DistinctProduct int               `json:"distinct_products"`
}

// RunProgressFunc observes per-page fetch progress, correlated by the run
// id that ends up on the finished report.
type RunProgressFunc func(runID string, period Period, page, fetched int)

// Service orchestrates fetch → aggregate → rank for every report type.
// One instance serves the whole process; each call fetches fresh data
// unless the cache is wired in.
type Service struct {
	source       InvoiceSource
	cache        InvoiceCache
	pageSize     int
	potentialCfg PotentialConfig
	aggOpts      AggregateOptions
	onProgress   RunProgressFunc
}

// NewService builds a report service over the given invoice source.
func NewService(source InvoiceSource) *Service {
	return &Service{
		source:       source,
		pageSize:     100,
		potentialCfg: DefaultPotentialConfig(),
	}
}

// SetCache wires an optional invoice cache.
func (s *Service) SetCache(c InvoiceCache) { s.cache = c }

// SetProgress wires an observer for per-page fetch progress.
func (s *Service) SetProgress(fn RunProgressFunc) { s.onProgress = fn }

// SetAggregateOptions switches order-count semantics.
func (s *Service) SetAggregateOptions(opts AggregateOptions) { s.aggOpts = opts }

// SetPotentialConfig overrides the marketing-potential heuristic.
func (s *Service) SetPotentialConfig(cfg PotentialConfig) { s.potentialCfg = cfg }

// TopProducts runs one ranked report. A failed fetch returns an error; a
// partial fetch returns the truncated report with Fetch.Status = partial so
// the caller decides whether to trust it.
func (s *Service) TopProducts(ctx context.Context, req ReportRequest) (*Report, error) {
	if !req.Period.Valid() {
		return nil, fmt.Errorf("invalid report period: month=%d year=%d", req.Period.Month, req.Period.Year)
	}
	if req.TopN <= 0 {
		req.TopN = DefaultTopN
	}

	runID, invoices, info, err := s.fetchPeriod(ctx, req.Period)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(invoices, s.aggOpts)
	return &Report{
		RunID:   runID,
		Request: req,
		Fetch:   info,
		Ranking: RankBy(req.Metric, stats, req.TopN),
	}, nil
}

// Answer parses a free-text question and runs the report it asks for.
func (s *Service) Answer(ctx context.Context, question string) (*Report, error) {
	req, err := ParseQuestion(question)
	if err != nil {
		return nil, err
	}
	return s.TopProducts(ctx, req)
}

// Potential runs the marketing-potential report. topN <= 0 keeps the
// configured default.
func (s *Service) Potential(ctx context.Context, period Period, topN int) (*PotentialReport, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid report period: month=%d year=%d", period.Month, period.Year)
	}

	runID, invoices, info, err := s.fetchPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	cfg := s.potentialCfg
	if topN > 0 {
		cfg.TopN = topN
	}

	stats := Aggregate(invoices, s.aggOpts)
	return &PotentialReport{
		RunID:    runID,
		Period:   period,
		Fetch:    info,
		Config:   cfg,
		Products: ScorePotential(stats, cfg),
	}, nil
}

// Comparison contrasts the order-count and revenue top-N lists over one
// period, surfacing products that appear in both.
func (s *Service) Comparison(ctx context.Context, period Period, topN int) (*ComparisonReport, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid report period: month=%d year=%d", period.Month, period.Year)
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	runID, invoices, info, err := s.fetchPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(invoices, s.aggOpts)
	byOrders := TopByOrderCount(stats, topN)
	byRevenue := TopByRevenue(stats, topN)

	revenueRank := make(map[string]int, len(byRevenue))
	for i, m := range byRevenue {
		revenueRank[m.ProductName] = i + 1
	}

	var common []ComparisonEntry
	for i, m := range byOrders {
		if rank, ok := revenueRank[m.ProductName]; ok {
			common = append(common, ComparisonEntry{
				ProductName: m.ProductName,
				OrderRank:   i + 1,
				RevenueRank: rank,
			})
		}
	}

	return &ComparisonReport{
		RunID:           runID,
		Period:          period,
		Fetch:           info,
		ByOrderCount:    byOrders,
		ByRevenue:       byRevenue,
		Common:          common,
		OnlyOrderCount:  len(byOrders) - len(common),
		OnlyRevenue:     len(byRevenue) - len(common),
		DistinctProduct: len(byOrders) + len(byRevenue) - len(common),
	}, nil
}

func (s *Service) fetchPeriod(ctx context.Context, period Period) (string, []kiotviet.Invoice, FetchInfo, error) {
	runID := uuid.NewString()
	from, to := period.Bounds()

	if s.cache != nil {
		if invoices, ok := s.cache.GetInvoices(ctx, from, to); ok {
			return runID, invoices, FetchInfo{
				Status:       FetchComplete,
				InvoiceCount: len(invoices),
				FromCache:    true,
			}, nil
		}
	}

	var progress ProgressFunc
	if s.onProgress != nil {
		progress = func(page, fetched int) {
			s.onProgress(runID, period, page, fetched)
		}
	}

	result := FetchAll(ctx, s.source, from, to, s.pageSize, progress)
	if result.Status == FetchFailed {
		return runID, nil, FetchInfo{}, fmt.Errorf("invoice fetch failed for %s: %w", period.Label(), result.Err)
	}

	info := FetchInfo{
		Status:       result.Status,
		Pages:        result.Pages,
		InvoiceCount: len(result.Invoices),
	}
	if result.Err != nil {
		info.Error = result.Err.Error()
	}

	// Only complete fetches are worth caching.
	if s.cache != nil && result.Status == FetchComplete {
		s.cache.SaveInvoices(ctx, from, to, result.Invoices)
	}

	return runID, result.Invoices, info, nil
}
