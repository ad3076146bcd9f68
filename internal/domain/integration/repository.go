package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	Create(ctx context.Context, store *Store) error
	Update(ctx context.Context, store *Store) error

	// FindByID returns shared.ErrNotFound when the store does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindByUser returns the stores of a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Store, error)

	// IDsByUser returns the ids of every store owned by userID
	IDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// UpdateSyncState writes status and last sync time without touching other columns
	UpdateSyncState(ctx context.Context, id uuid.UUID, status StoreStatus, lastSyncAt *time.Time) error

	// DeleteCascade removes the store together with its products, orders,
	// AWBs, invoices, AI config and logs in one transaction
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// LogQuery scopes a sync log listing
type LogQuery struct {
	StoreIDs []uuid.UUID
	Limit    int
}

const (
	DefaultLogLimit = 100
	MaxLogLimit     = 500
)

// SyncLogRepository defines the interface for audit trail persistence
type SyncLogRepository interface {
	Create(ctx context.Context, log *SyncLog) error

	// List returns the newest entries for the given stores
	List(ctx context.Context, query LogQuery) ([]*SyncLog, error)
}

// AIConfigRepository defines the interface for AI config persistence
type AIConfigRepository interface {
	// FindByStoreID returns shared.ErrNotFound when the store has no config
	FindByStoreID(ctx context.Context, storeID uuid.UUID) (*AIConfig, error)

	// Upsert inserts or replaces the config keyed by store id
	Upsert(ctx context.Context, config *AIConfig) error
}
