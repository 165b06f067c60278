package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvreport/internal/kiotviet"
)

func pid(id int64) *int64 { return &id }

func line(id *int64, name string, qty float64, price int64) kiotviet.InvoiceDetail {
	return kiotviet.InvoiceDetail{
		ProductID:   id,
		ProductName: name,
		Quantity:    qty,
		Price:       decimal.NewFromInt(price),
	}
}

func TestAggregateAccumulates(t *testing.T) {
	invoices := []kiotviet.Invoice{
		{ID: 1, InvoiceDetails: []kiotviet.InvoiceDetail{
			line(pid(1), "Ống nhựa PVC", 3, 10),
		}},
		{ID: 2, InvoiceDetails: []kiotviet.InvoiceDetail{
			line(pid(1), "Ống nhựa PVC", 5, 20),
			line(pid(2), "Keo dán ống", 1, 45),
		}},
	}

	stats := Aggregate(invoices, AggregateOptions{})
	require.Equal(t, 2, stats.Len())

	m, ok := stats.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Ống nhựa PVC", m.ProductName)
	assert.Equal(t, 8.0, m.TotalQuantity)
	assert.Equal(t, "130", m.TotalRevenue.String(), "3*10 + 5*20")
	assert.Equal(t, 2, m.InvoiceCount)

	m, ok = stats.Get(2)
	require.True(t, ok)
	assert.Equal(t, 1.0, m.TotalQuantity)
	assert.Equal(t, "45", m.TotalRevenue.String())
	assert.Equal(t, 1, m.InvoiceCount)
}

func TestAggregateFirstSeenNameWins(t *testing.T) {
	invoices := []kiotviet.Invoice{
		{ID: 1, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(7), "Tên cũ", 1, 10)}},
		{ID: 2, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(7), "Tên mới", 1, 10)}},
	}

	stats := Aggregate(invoices, AggregateOptions{})
	m, ok := stats.Get(7)
	require.True(t, ok)
	assert.Equal(t, "Tên cũ", m.ProductName)
}

func TestAggregateUnknownProductBucket(t *testing.T) {
	invoices := []kiotviet.Invoice{
		{ID: 1, InvoiceDetails: []kiotviet.InvoiceDetail{
			line(nil, "", 2, 50),
			line(nil, "Phí vận chuyển", 1, 30),
		}},
	}

	stats := Aggregate(invoices, AggregateOptions{})
	require.Equal(t, 1, stats.Len(), "all nil-product lines share one bucket")

	m, ok := stats.Get(UnknownProductID)
	require.True(t, ok)
	assert.Equal(t, UnknownProductName, m.ProductName)
	assert.Equal(t, 3.0, m.TotalQuantity)
	assert.Equal(t, "130", m.TotalRevenue.String())
}

func TestAggregateSkipsInvoicesWithoutDetails(t *testing.T) {
	invoices := []kiotviet.Invoice{
		{ID: 1},
		{ID: 2, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(1), "A", 1, 10)}},
	}

	stats := Aggregate(invoices, AggregateOptions{})
	assert.Equal(t, 1, stats.Len())
}

func TestAggregateOrderIndependentTotals(t *testing.T) {
	invoices := []kiotviet.Invoice{
		{ID: 1, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(1), "A", 2, 100), line(pid(2), "B", 1, 300)}},
		{ID: 2, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(2), "B", 4, 250)}},
		{ID: 3, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(1), "A", 1.5, 120)}},
	}
	reversed := []kiotviet.Invoice{invoices[2], invoices[1], invoices[0]}

	forward := Aggregate(invoices, AggregateOptions{})
	backward := Aggregate(reversed, AggregateOptions{})

	for _, id := range []int64{1, 2} {
		f, ok := forward.Get(id)
		require.True(t, ok)
		b, ok := backward.Get(id)
		require.True(t, ok)

		assert.Equal(t, f.TotalQuantity, b.TotalQuantity)
		assert.True(t, f.TotalRevenue.Equal(b.TotalRevenue))
		assert.Equal(t, f.InvoiceCount, b.InvoiceCount)
	}
}

func TestAggregateRevenueConservation(t *testing.T) {
	invoices := []kiotviet.Invoice{
		{ID: 1, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(1), "A", 2, 100), line(pid(2), "B", 1, 300)}},
		{ID: 2, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(3), "C", 4, 250), line(nil, "", 1, 30)}},
	}

	lineTotal := decimal.Zero
	for _, inv := range invoices {
		for _, l := range inv.InvoiceDetails {
			lineTotal = lineTotal.Add(l.Price.Mul(decimal.NewFromFloat(l.Quantity)))
		}
	}

	aggTotal := decimal.Zero
	for _, m := range Aggregate(invoices, AggregateOptions{}).All() {
		aggTotal = aggTotal.Add(m.TotalRevenue)
	}

	assert.True(t, lineTotal.Equal(aggTotal), "aggregation must not create or lose revenue")
}

func TestAggregateCountDistinctInvoices(t *testing.T) {
	// Product 1 appears twice on the same invoice.
	invoices := []kiotviet.Invoice{
		{ID: 1, InvoiceDetails: []kiotviet.InvoiceDetail{
			line(pid(1), "A", 1, 10),
			line(pid(1), "A", 2, 10),
		}},
		{ID: 2, InvoiceDetails: []kiotviet.InvoiceDetail{line(pid(1), "A", 1, 10)}},
	}

	perLine, _ := Aggregate(invoices, AggregateOptions{}).Get(1)
	assert.Equal(t, 3, perLine.InvoiceCount)

	distinct, _ := Aggregate(invoices, AggregateOptions{CountDistinctInvoices: true}).Get(1)
	assert.Equal(t, 2, distinct.InvoiceCount)

	// Quantity and revenue are unaffected by the counting mode.
	assert.Equal(t, perLine.TotalQuantity, distinct.TotalQuantity)
	assert.True(t, perLine.TotalRevenue.Equal(distinct.TotalRevenue))
}

func TestProductMetricsDerived(t *testing.T) {
	m := ProductMetrics{
		TotalQuantity: 4,
		TotalRevenue:  decimal.NewFromInt(1000),
		InvoiceCount:  2,
	}
	assert.Equal(t, "250", m.AvgPrice().String())
	assert.Equal(t, 2.0, m.AvgQuantityPerOrder())
	assert.Equal(t, "500", m.RevenuePerOrder().String())

	var zero ProductMetrics
	assert.True(t, zero.AvgPrice().IsZero())
	assert.Equal(t, 0.0, zero.AvgQuantityPerOrder())
	assert.True(t, zero.RevenuePerOrder().IsZero())
}
