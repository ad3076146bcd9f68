package persistence

import (
	"context"

	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSyncLogRepository implements SyncLogRepository using GORM
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Create appends an entry to the audit trail
func (r *GormSyncLogRepository) Create(ctx context.Context, log *integration.SyncLog) error {
	return r.db.WithContext(ctx).Create(models.SyncLogModelFromDomain(log)).Error
}

// List returns the newest entries for the given stores
func (r *GormSyncLogRepository) List(ctx context.Context, query integration.LogQuery) ([]*integration.SyncLog, error) {
	if len(query.StoreIDs) == 0 {
		return []*integration.SyncLog{}, nil
	}
	limit := query.Limit
	if limit <= 0 {
		limit = integration.DefaultLogLimit
	}
	if limit > integration.MaxLogLimit {
		limit = integration.MaxLogLimit
	}

	var rows []models.SyncLogModel
	if err := r.db.WithContext(ctx).
		Where("store_id IN ?", query.StoreIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	logs := make([]*integration.SyncLog, len(rows))
	for i := range rows {
		logs[i] = rows[i].ToDomain()
	}
	return logs, nil
}

// Ensure GormSyncLogRepository implements SyncLogRepository
var _ integration.SyncLogRepository = (*GormSyncLogRepository)(nil)
