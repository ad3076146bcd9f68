package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/billing"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create inserts the invoice; unique violations map to ErrDuplicateInvoice
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	if err := r.db.WithContext(ctx).Create(models.InvoiceModelFromDomain(invoice)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return billing.ErrDuplicateInvoice
		}
		return err
	}
	return nil
}

// FindByOrderID finds the invoice issued for an order
func (r *GormInvoiceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForOrder checks whether the order already has an invoice
func (r *GormInvoiceRepository) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByStores returns invoices of orders in the given stores, newest first
func (r *GormInvoiceRepository) ListByStores(ctx context.Context, storeIDs []uuid.UUID) ([]*billing.Invoice, error) {
	if len(storeIDs) == 0 {
		return []*billing.Invoice{}, nil
	}
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = invoices.order_id").
		Where("orders.store_id IN ?", storeIDs).
		Order("invoices.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	invoices := make([]*billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = rows[i].ToDomain()
	}
	return invoices, nil
}

// GormInvoiceSequencer implements InvoiceSequencer with a counter row per
// (user, provider, year). The row lock taken by the increment serializes
// concurrent callers, so numbers are never handed out twice.
type GormInvoiceSequencer struct {
	db *gorm.DB
}

// NewGormInvoiceSequencer creates a new GormInvoiceSequencer
func NewGormInvoiceSequencer(db *gorm.DB) *GormInvoiceSequencer {
	return &GormInvoiceSequencer{db: db}
}

// Next increments and returns the counter, creating it at 1 on first use
func (s *GormInvoiceSequencer) Next(ctx context.Context, userID uuid.UUID, provider billing.Provider, year int) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := tx.Model(&models.InvoiceSequenceModel{}).
			Where("user_id = ? AND provider = ? AND year = ?", userID, provider, year).
			Session(&gorm.Session{})

		// Two rounds: a concurrent first insert makes ours lose, after which
		// the counter row exists and the increment succeeds.
		for range 2 {
			result := key.Update("last_value", gorm.Expr("last_value + 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				var values []int64
				if err := key.Pluck("last_value", &values).Error; err != nil {
					return err
				}
				if len(values) == 0 {
					return fmt.Errorf("invoice sequence vanished for user %s", userID)
				}
				next = values[0]
				return nil
			}

			err := tx.Transaction(func(sp *gorm.DB) error {
				return sp.Create(&models.InvoiceSequenceModel{
					UserID:    userID,
					Provider:  provider,
					Year:      year,
					LastValue: 1,
				}).Error
			})
			if err == nil {
				next = 1
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
		}
		return fmt.Errorf("invoice sequence contention for user %s", userID)
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Ensure the GORM implementations satisfy the billing interfaces
var (
	_ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
	_ billing.InvoiceSequencer  = (*GormInvoiceSequencer)(nil)
)
