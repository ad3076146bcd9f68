package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
)

// ProductQuery scopes a product listing to a set of stores
type ProductQuery struct {
	shared.Filter
	StoreIDs []uuid.UUID
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID returns shared.ErrNotFound when the product does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List returns one page of products and the total match count, newest first
	List(ctx context.Context, query ProductQuery) ([]*Product, int64, error)

	// InsertIfAbsent inserts the product unless (store_id, remote_id) already
	// exists. It reports whether a row was written.
	InsertIfAbsent(ctx context.Context, product *Product) (bool, error)

	// UpdateStock sets the absolute stock quantity
	UpdateStock(ctx context.Context, id uuid.UUID, quantity int) error

	// CountByStores counts products across stores
	CountByStores(ctx context.Context, storeIDs []uuid.UUID) (int64, error)

	// CountLowStock counts products whose stock is below threshold
	CountLowStock(ctx context.Context, storeIDs []uuid.UUID, threshold int) (int64, error)
}
