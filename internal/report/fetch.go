package report

import (
	"context"
	"time"

	"kvreport/internal/kiotviet"
)

// InvoiceSource is the slice of the KiotViet client the paginator needs.
type InvoiceSource interface {
	GetInvoices(ctx context.Context, from, to time.Time, pageSize, currentItem int) (*kiotviet.InvoicePage, error)
}

// FetchStatus tells the caller how much of the period was actually fetched.
type FetchStatus string

const (
	// FetchComplete means every page of the period was retrieved.
	FetchComplete FetchStatus = "complete"
	// FetchPartial means a transport failure truncated the stream after
	// some pages had been accumulated.
	FetchPartial FetchStatus = "partial"
	// FetchFailed means the very first page could not be retrieved.
	FetchFailed FetchStatus = "failed"
)

// FetchResult carries the accumulated invoices plus an explicit status so
// callers can decide whether a partial report is acceptable.
type FetchResult struct {
	Invoices []kiotviet.Invoice
	Status   FetchStatus
	Pages    int
	Err      error
}

// ProgressFunc receives a signal after each fetched page: the 1-based page
// number and the running invoice total.
type ProgressFunc func(page, fetched int)

// FetchAll walks the paginated invoice listing from offset 0, incrementing
// by pageSize, until a page comes back empty or short. Page order is
// preserved in the returned slice.
func FetchAll(ctx context.Context, src InvoiceSource, from, to time.Time, pageSize int, progress ProgressFunc) FetchResult {
	var all []kiotviet.Invoice
	currentItem := 0
	pages := 0

	for {
		page, err := src.GetInvoices(ctx, from, to, pageSize, currentItem)
		if err != nil {
			status := FetchPartial
			if len(all) == 0 {
				status = FetchFailed
			}
			return FetchResult{Invoices: all, Status: status, Pages: pages, Err: err}
		}

		if len(page.Data) == 0 {
			break
		}

		all = append(all, page.Data...)
		pages++
		if progress != nil {
			progress(pages, len(all))
		}

		if len(page.Data) < pageSize {
			break
		}
		currentItem += pageSize
	}

	return FetchResult{Invoices: all, Status: FetchComplete, Pages: pages}
}
