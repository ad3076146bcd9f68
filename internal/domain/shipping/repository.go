package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDuplicateAWB is returned by Create when either the order already has an
// AWB or the number is already taken
var ErrDuplicateAWB = errors.New("shipping: duplicate awb")

// ErrStaleAWB is returned by SaveTracking when the AWB was modified after it
// was loaded
var ErrStaleAWB = errors.New("shipping: awb modified concurrently")

// AWBRepository defines the interface for AWB persistence
type AWBRepository interface {
	// Create inserts the AWB; unique violations return ErrDuplicateAWB
	Create(ctx context.Context, awb *AWB) error

	// FindByID returns shared.ErrNotFound when the AWB does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*AWB, error)

	// FindByOrderID returns shared.ErrNotFound when the order has no AWB
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*AWB, error)

	// FindByNumber returns shared.ErrNotFound when no AWB has the number
	FindByNumber(ctx context.Context, number string) (*AWB, error)

	// ExistsByNumber checks whether the number has been issued
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// ExistsForOrder checks whether the order already has an AWB
	ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)

	// SaveTracking persists status and tracking history when the stored
	// version still matches awb.Version, then bumps it. A mismatch returns
	// ErrStaleAWB.
	SaveTracking(ctx context.Context, awb *AWB) error

	// ListByStores returns AWBs of orders in the given stores, newest first
	ListByStores(ctx context.Context, storeIDs []uuid.UUID) ([]*AWB, error)

	// CountByStatus counts AWBs in the given stores with status
	CountByStatus(ctx context.Context, storeIDs []uuid.UUID, status AWBStatus) (int64, error)
}
