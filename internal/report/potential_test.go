package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvreport/internal/kiotviet"
)

// invoicesFor spreads quantity/price over n single-line invoices for one
// product so the invoice count is controlled exactly.
func invoicesFor(id int64, name string, n int, qtyPerInvoice float64, price int64) []kiotviet.Invoice {
	out := make([]kiotviet.Invoice, n)
	for i := range out {
		out[i] = kiotviet.Invoice{
			ID:             int64(1000*id) + int64(i),
			InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(id), name, qtyPerInvoice, price)},
		}
	}
	return out
}

func TestScorePotentialFilters(t *testing.T) {
	var invoices []kiotviet.Invoice
	// Qualifies: 500M revenue, 10 orders, 10M avg price.
	invoices = append(invoices, invoicesFor(1, "Máy bơm công nghiệp", 10, 5, 10_000_000)...)
	// Revenue too low: 40M.
	invoices = append(invoices, invoicesFor(2, "Van nước", 1, 1, 40_000_000)...)
	// Too many orders: 31.
	invoices = append(invoices, invoicesFor(3, "Ống nhựa", 31, 10, 300_000)...)
	// Average price too low: 150k.
	invoices = append(invoices, invoicesFor(4, "Keo dán", 5, 100, 150_000)...)

	stats := Aggregate(invoices, AggregateOptions{})
	scored := ScorePotential(stats, DefaultPotentialConfig())

	require.Len(t, scored, 1)
	assert.Equal(t, "Máy bơm công nghiệp", scored[0].ProductName)
}

func TestScorePotentialScore(t *testing.T) {
	// 500M revenue → 500M/1B * 40 = 20
	// 10M avg price → capped at 1 * 30  = 30
	// 10 orders     → 30 - 10          = 20
	invoices := invoicesFor(1, "Máy bơm công nghiệp", 10, 5, 10_000_000)

	scored := ScorePotential(Aggregate(invoices, AggregateOptions{}), DefaultPotentialConfig())
	require.Len(t, scored, 1)
	assert.InDelta(t, 70.0, scored[0].Score, 0.001)
}

func TestScorePotentialCapsAt100(t *testing.T) {
	// 2B revenue and 20M avg price both exceed their caps; a single order
	// leaves the largest scarcity bonus. 40 + 30 + 29 = 99 is the practical
	// ceiling with the default weights.
	invoices := invoicesFor(1, "Dây chuyền lọc nước", 1, 100, 20_000_000)

	scored := ScorePotential(Aggregate(invoices, AggregateOptions{}), DefaultPotentialConfig())
	require.Len(t, scored, 1)
	assert.InDelta(t, 99.0, scored[0].Score, 0.001)
	assert.LessOrEqual(t, scored[0].Score, 100.0)
}

func TestScorePotentialSortsAndTruncates(t *testing.T) {
	var invoices []kiotviet.Invoice
	invoices = append(invoices, invoicesFor(1, "A", 20, 5, 1_000_000)...) // 100M, 20 orders
	invoices = append(invoices, invoicesFor(2, "B", 5, 5, 8_000_000)...)  // 200M, 5 orders
	invoices = append(invoices, invoicesFor(3, "C", 15, 5, 2_000_000)...) // 150M, 15 orders

	stats := Aggregate(invoices, AggregateOptions{})

	scored := ScorePotential(stats, DefaultPotentialConfig())
	require.Len(t, scored, 3)
	assert.Equal(t, "B", scored[0].ProductName)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}

	cfg := DefaultPotentialConfig()
	cfg.TopN = 1
	top1 := ScorePotential(stats, cfg)
	require.Len(t, top1, 1)
	assert.Equal(t, "B", top1[0].ProductName)
}

func TestScorePotentialEmpty(t *testing.T) {
	scored := ScorePotential(Aggregate(nil, AggregateOptions{}), DefaultPotentialConfig())
	assert.Empty(t, scored)
}
