package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAWBRepository implements AWBRepository using GORM
type GormAWBRepository struct {
	db *gorm.DB
}

// NewGormAWBRepository creates a new GormAWBRepository
func NewGormAWBRepository(db *gorm.DB) *GormAWBRepository {
	return &GormAWBRepository{db: db}
}

// Create inserts the AWB; unique violations on order or number map to ErrDuplicateAWB
func (r *GormAWBRepository) Create(ctx context.Context, awb *shipping.AWB) error {
	if awb.Version == 0 {
		awb.Version = 1
	}
	model, err := models.AWBModelFromDomain(awb)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shipping.ErrDuplicateAWB
		}
		return err
	}
	return nil
}

func (r *GormAWBRepository) findOne(ctx context.Context, query string, arg any) (*shipping.AWB, error) {
	var model models.AWBModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds an AWB by ID
func (r *GormAWBRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.AWB, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByOrderID finds the AWB issued for an order
func (r *GormAWBRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*shipping.AWB, error) {
	return r.findOne(ctx, "order_id = ?", orderID)
}

// FindByNumber finds an AWB by its courier number
func (r *GormAWBRepository) FindByNumber(ctx context.Context, number string) (*shipping.AWB, error) {
	return r.findOne(ctx, "awb_number = ?", number)
}

func (r *GormAWBRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AWBModel{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByNumber checks whether the number has been issued
func (r *GormAWBRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return r.exists(ctx, "awb_number = ?", number)
}

// ExistsForOrder checks whether the order already has an AWB
func (r *GormAWBRepository) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	return r.exists(ctx, "order_id = ?", orderID)
}

// SaveTracking persists status and tracking history with an optimistic
// version check
func (r *GormAWBRepository) SaveTracking(ctx context.Context, awb *shipping.AWB) error {
	model, err := models.AWBModelFromDomain(awb)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.AWBModel{}).
		Where("id = ? AND version = ?", awb.ID, awb.Version).
		Updates(map[string]any{
			"status":           model.Status,
			"tracking_history": model.TrackingHistoryJSON,
			"version":          gorm.Expr("version + 1"),
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, "id = ?", awb.ID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}
		return shipping.ErrStaleAWB
	}
	awb.Version++
	return nil
}

// ListByStores returns AWBs of orders in the given stores, newest first
func (r *GormAWBRepository) ListByStores(ctx context.Context, storeIDs []uuid.UUID) ([]*shipping.AWB, error) {
	if len(storeIDs) == 0 {
		return []*shipping.AWB{}, nil
	}
	var rows []models.AWBModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = awb_generations.order_id").
		Where("orders.store_id IN ?", storeIDs).
		Order("awb_generations.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	awbs := make([]*shipping.AWB, len(rows))
	for i := range rows {
		awbs[i] = rows[i].ToDomain()
	}
	return awbs, nil
}

// CountByStatus counts AWBs in the given stores with status
func (r *GormAWBRepository) CountByStatus(ctx context.Context, storeIDs []uuid.UUID, status shipping.AWBStatus) (int64, error) {
	if len(storeIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AWBModel{}).
		Joins("JOIN orders ON orders.id = awb_generations.order_id").
		Where("orders.store_id IN ? AND awb_generations.status = ?", storeIDs, status).
		Count(&count).Error
	return count, err
}

// Ensure GormAWBRepository implements AWBRepository
var _ shipping.AWBRepository = (*GormAWBRepository)(nil)
