package kiotviet

import (
	"github.com/shopspring/decimal"
)

// Invoice represents one sales invoice returned by the /invoices endpoint.
type Invoice struct {
	ID             int64           `json:"id"`
	Code           string          `json:"code"`
	PurchaseDate   string          `json:"purchaseDate"`
	Total          decimal.Decimal `json:"total"`
	InvoiceDetails []InvoiceDetail `json:"invoiceDetails"`
}

// InvoiceDetail is one product line on an invoice. ProductID is nullable:
// some lines (fees, manually typed items) carry no product reference.
type InvoiceDetail struct {
	ProductID   *int64          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    float64         `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// InvoicePage is one page of the paginated invoice listing.
type InvoicePage struct {
	Total int       `json:"total"`
	Data  []Invoice `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
