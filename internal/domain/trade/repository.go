package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderQuery scopes an order listing
type OrderQuery struct {
	shared.Filter
	StoreIDs []uuid.UUID
	Status   string
}

// OrderTotals is the aggregate of orders across stores
type OrderTotals struct {
	Count   int64
	Revenue decimal.Decimal
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID returns shared.ErrNotFound when the order does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDs returns the orders with the given ids, keyed by id
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Order, error)

	// List returns one page of orders, newest original date first
	List(ctx context.Context, query OrderQuery) ([]*Order, int64, error)

	// InsertIfAbsent inserts the order unless (store_id, remote_id) already
	// exists. It reports whether a row was written.
	InsertIfAbsent(ctx context.Context, order *Order) (bool, error)

	// Totals sums order totals and counts orders across stores
	Totals(ctx context.Context, storeIDs []uuid.UUID) (OrderTotals, error)
}
