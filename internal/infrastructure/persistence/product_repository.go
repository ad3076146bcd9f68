package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storeRemoteConflict is the natural key of synced rows
var storeRemoteConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "store_id"}, {Name: "remote_id"}},
	DoNothing: true,
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of products in the given stores, newest first
func (r *GormProductRepository) List(ctx context.Context, query catalog.ProductQuery) ([]*catalog.Product, int64, error) {
	if len(query.StoreIDs) == 0 {
		return []*catalog.Product{}, 0, nil
	}
	filter := query.Filter.Normalize()

	q := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("store_id IN ?", query.StoreIDs)
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(sku) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	if err := q.Order("created_at DESC").Order("id").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*catalog.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, total, nil
}

// InsertIfAbsent inserts the product unless the store already has its remote id
func (r *GormProductRepository) InsertIfAbsent(ctx context.Context, product *catalog.Product) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(storeRemoteConflict).
		Create(models.ProductModelFromDomain(product))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStock sets the absolute stock quantity
func (r *GormProductRepository) UpdateStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", id).
		Update("stock_quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStores counts products across stores
func (r *GormProductRepository) CountByStores(ctx context.Context, storeIDs []uuid.UUID) (int64, error) {
	if len(storeIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("store_id IN ?", storeIDs).
		Count(&count).Error
	return count, err
}

// CountLowStock counts products below threshold
func (r *GormProductRepository) CountLowStock(ctx context.Context, storeIDs []uuid.UUID, threshold int) (int64, error) {
	if len(storeIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("store_id IN ? AND stock_quantity < ?", storeIDs, threshold).
		Count(&count).Error
	return count, err
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
