package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads several orders at once, keyed by id
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*trade.Order, error) {
	out := make(map[uuid.UUID]*trade.Order, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = rows[i].ToDomain()
	}
	return out, nil
}

// List returns a page of orders, newest original date first
func (r *GormOrderRepository) List(ctx context.Context, query trade.OrderQuery) ([]*trade.Order, int64, error) {
	if len(query.StoreIDs) == 0 {
		return []*trade.Order{}, 0, nil
	}
	filter := query.Filter.Normalize()

	q := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("store_id IN ?", query.StoreIDs)
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		q = q.Where(`LOWER(order_number) LIKE ? ESCAPE '\' OR LOWER(customer_name) LIKE ? ESCAPE '\' OR LOWER(customer_email) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := q.Order("created_at DESC").Order("id").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*trade.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, total, nil
}

// InsertIfAbsent inserts the order unless the store already has its remote id
func (r *GormOrderRepository) InsertIfAbsent(ctx context.Context, order *trade.Order) (bool, error) {
	model, err := models.OrderModelFromDomain(order)
	if err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Clauses(storeRemoteConflict).Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Totals counts orders and sums their totals across stores
func (r *GormOrderRepository) Totals(ctx context.Context, storeIDs []uuid.UUID) (trade.OrderTotals, error) {
	totals := trade.OrderTotals{Revenue: decimal.Zero}
	if len(storeIDs) == 0 {
		return totals, nil
	}

	var row struct {
		Count   int64
		Revenue decimal.NullDecimal
	}
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("COUNT(*) AS count, SUM(total) AS revenue").
		Where("store_id IN ?", storeIDs).
		Scan(&row).Error; err != nil {
		return totals, err
	}

	totals.Count = row.Count
	if row.Revenue.Valid {
		totals.Revenue = row.Revenue.Decimal.Round(2)
	}
	return totals, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
