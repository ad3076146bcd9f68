package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
)

// Provider identifies the invoicing service issuing an invoice
type Provider string

const (
	ProviderSmartBill Provider = "smartbill"
	ProviderOblio     Provider = "oblio"
)

// IsValid returns true if the provider is supported
func (p Provider) IsValid() bool {
	switch p {
	case ProviderSmartBill, ProviderOblio:
		return true
	}
	return false
}

// Series returns the two-letter invoice series of the provider
func (p Provider) Series() string {
	if p == ProviderSmartBill {
		return "SB"
	}
	return "OB"
}

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusFailed    InvoiceStatus = "failed"
)

// Invoice is the fiscal document issued for an order. There is at most one per order.
type Invoice struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	UserID    uuid.UUID
	Provider  Provider
	Number    string
	Series    string
	URL       string
	Status    InvoiceStatus
	CreatedAt time.Time
}

// NewIssuedInvoice creates an issued invoice numbered from a sequence value
func NewIssuedInvoice(orderID, userID uuid.UUID, provider Provider, year int, seq int64, now time.Time) (*Invoice, error) {
	if orderID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewValidationError("Invoice order and issuer are required")
	}
	if !provider.IsValid() {
		return nil, InvalidProviderError()
	}
	if seq <= 0 {
		return nil, shared.NewValidationError("Invoice sequence must be positive")
	}
	series := provider.Series()
	number := FormatNumber(series, year, seq)
	return &Invoice{
		ID:        uuid.New(),
		OrderID:   orderID,
		UserID:    userID,
		Provider:  provider,
		Number:    number,
		Series:    series,
		URL:       DocumentURL(number),
		Status:    InvoiceStatusIssued,
		CreatedAt: now,
	}, nil
}

// FormatNumber renders {series}{year}-{seq} with seq zero-padded to four digits
func FormatNumber(series string, year int, seq int64) string {
	return fmt.Sprintf("%s%d-%04d", series, year, seq)
}

// DocumentURL returns the path the invoice PDF is served from
func DocumentURL(number string) string {
	return "/api/invoices/" + number + "/pdf"
}

// InvalidProviderError is returned for providers outside the supported set
func InvalidProviderError() error {
	return shared.NewValidationError("Furnizor facturare invalid: smartbill sau oblio")
}
