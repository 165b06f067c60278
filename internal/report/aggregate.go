package report

import (
	"github.com/shopspring/decimal"

	"kvreport/internal/kiotviet"
)

// UnknownProductID is the bucket key for invoice lines without a product
// reference. All such lines merge into this single bucket; its name falls
// back to UnknownProductName unless the first line carried one.
const UnknownProductID int64 = 0

// UnknownProductName labels the unknown-product bucket.
const UnknownProductName = "Không xác định"

// ProductMetrics accumulates sales figures for one product across a period.
type ProductMetrics struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity float64         `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	InvoiceCount  int             `json:"invoice_count"`
}

// AvgPrice is revenue per unit sold. Zero when nothing was sold.
func (m ProductMetrics) AvgPrice() decimal.Decimal {
	if m.TotalQuantity <= 0 {
		return decimal.Zero
	}
	return m.TotalRevenue.Div(decimal.NewFromFloat(m.TotalQuantity))
}

// AvgQuantityPerOrder is units sold per counted order.
func (m ProductMetrics) AvgQuantityPerOrder() float64 {
	if m.InvoiceCount == 0 {
		return 0
	}
	return m.TotalQuantity / float64(m.InvoiceCount)
}

// RevenuePerOrder is revenue per counted order.
func (m ProductMetrics) RevenuePerOrder() decimal.Decimal {
	if m.InvoiceCount == 0 {
		return decimal.Zero
	}
	return m.TotalRevenue.Div(decimal.NewFromInt(int64(m.InvoiceCount)))
}

// AggregateOptions tunes aggregation behavior.
type AggregateOptions struct {
	// CountDistinctInvoices counts one order per invoice a product appears
	// on. When false (the default), every invoice line increments the
	// order count, so a product listed twice on one invoice counts twice.
	CountDistinctInvoices bool
}

// ProductStats is the insertion-ordered product metrics map produced by
// Aggregate. Insertion order determines ranking tie-breaks and which
// display name wins (first seen).
type ProductStats struct {
	byID  map[int64]*ProductMetrics
	order []int64
}

// Len returns the number of distinct products.
func (s *ProductStats) Len() int {
	return len(s.order)
}

// Get looks up metrics by product id.
func (s *ProductStats) Get(id int64) (ProductMetrics, bool) {
	m, ok := s.byID[id]
	if !ok {
		return ProductMetrics{}, false
	}
	return *m, true
}

// All returns metric copies in first-seen order.
func (s *ProductStats) All() []ProductMetrics {
	out := make([]ProductMetrics, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}

// Aggregate folds the invoice set into per-product metrics. Invoices with
// no detail lines are skipped. Metrics are order-independent; only the
// first-seen name and tie-break order depend on input order.
func Aggregate(invoices []kiotviet.Invoice, opts AggregateOptions) *ProductStats {
	stats := &ProductStats{byID: make(map[int64]*ProductMetrics)}

	for _, inv := range invoices {
		if len(inv.InvoiceDetails) == 0 {
			continue
		}

		var seen map[int64]bool
		if opts.CountDistinctInvoices {
			seen = make(map[int64]bool, len(inv.InvoiceDetails))
		}

		for _, line := range inv.InvoiceDetails {
			id := UnknownProductID
			if line.ProductID != nil {
				id = *line.ProductID
			}

			m, ok := stats.byID[id]
			if !ok {
				name := line.ProductName
				if name == "" {
					name = UnknownProductName
				}
				m = &ProductMetrics{ProductID: id, ProductName: name}
				stats.byID[id] = m
				stats.order = append(stats.order, id)
			}

			m.TotalQuantity += line.Quantity
			m.TotalRevenue = m.TotalRevenue.Add(line.Price.Mul(decimal.NewFromFloat(line.Quantity)))

			if opts.CountDistinctInvoices {
				if !seen[id] {
					seen[id] = true
					m.InvoiceCount++
				}
			} else {
				m.InvoiceCount++
			}
		}
	}

	return stats
}
