package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDuplicateInvoice is returned by Create when the order already has an invoice
var ErrDuplicateInvoice = errors.New("billing: duplicate invoice")

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// Create inserts the invoice; unique violations return ErrDuplicateInvoice
	Create(ctx context.Context, invoice *Invoice) error

	// FindByOrderID returns shared.ErrNotFound when the order has no invoice
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)

	// ExistsForOrder checks whether the order already has an invoice
	ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)

	// ListByStores returns invoices of orders in the given stores, newest first
	ListByStores(ctx context.Context, storeIDs []uuid.UUID) ([]*Invoice, error)
}

// InvoiceSequencer hands out per-tenant, per-provider, per-year invoice numbers.
// Values are strictly increasing and never reused.
type InvoiceSequencer interface {
	Next(ctx context.Context, userID uuid.UUID, provider Provider, year int) (int64, error)
}
