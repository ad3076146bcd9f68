package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Create inserts a new store
func (r *GormStoreRepository) Create(ctx context.Context, store *integration.Store) error {
	return r.db.WithContext(ctx).Create(models.StoreModelFromDomain(store)).Error
}

// Update saves every column of an existing store
func (r *GormStoreRepository) Update(ctx context.Context, store *integration.Store) error {
	model := models.StoreModelFromDomain(store)
	result := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("id = ?", store.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a store by ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser lists a user's stores, newest first
func (r *GormStoreRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*integration.Store, error) {
	var rows []models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	stores := make([]*integration.Store, len(rows))
	for i := range rows {
		stores[i] = rows[i].ToDomain()
	}
	return stores, nil
}

// IDsByUser returns the ids of a user's stores
func (r *GormStoreRepository) IDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	if err := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateSyncState writes status and last sync time only
func (r *GormStoreRepository) UpdateSyncState(ctx context.Context, id uuid.UUID, status integration.StoreStatus, lastSyncAt *time.Time) error {
	updates := map[string]any{"status": status}
	if lastSyncAt != nil {
		updates["last_sync_at"] = *lastSyncAt
	}
	result := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the store and everything derived from it.
// Invoice sequences belong to the user and survive.
func (r *GormStoreRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.OrderModel{}).Select("id").Where("store_id = ?", id)

		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.InvoiceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.AWBModel{}).Error; err != nil {
			return err
		}
		for _, m := range []any{&models.OrderModel{}, &models.ProductModel{}, &models.AIConfigModel{}, &models.SyncLogModel{}} {
			if err := tx.Where("store_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.StoreModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormStoreRepository implements StoreRepository
var _ integration.StoreRepository = (*GormStoreRepository)(nil)
