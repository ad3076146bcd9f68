package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAIConfigRepository implements AIConfigRepository using GORM
type GormAIConfigRepository struct {
	db *gorm.DB
}

// NewGormAIConfigRepository creates a new GormAIConfigRepository
func NewGormAIConfigRepository(db *gorm.DB) *GormAIConfigRepository {
	return &GormAIConfigRepository{db: db}
}

// FindByStoreID finds the AI config of a store
func (r *GormAIConfigRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*integration.AIConfig, error) {
	var model models.AIConfigModel
	if err := r.db.WithContext(ctx).Where("store_id = ?", storeID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert inserts the config or replaces the mutable columns of the existing one
func (r *GormAIConfigRepository) Upsert(ctx context.Context, config *integration.AIConfig) error {
	model, err := models.AIConfigModelFromDomain(config)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "provider", "model", "settings", "last_analysis_at", "updated_at"}),
	}).Create(model).Error
}

// Ensure GormAIConfigRepository implements AIConfigRepository
var _ integration.AIConfigRepository = (*GormAIConfigRepository)(nil)
