package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/billing"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_order"`
	UserID        uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_user_number,priority:1"`
	Provider      billing.Provider      `gorm:"type:varchar(20);not null"`
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_user_number,priority:2"`
	Series        string                `gorm:"type:varchar(10);not null"`
	URL           string                `gorm:"type:text"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'issued'"`
	CreatedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		ID:        m.ID,
		OrderID:   m.OrderID,
		UserID:    m.UserID,
		Provider:  m.Provider,
		Number:    m.InvoiceNumber,
		Series:    m.Series,
		URL:       m.URL,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

// InvoiceModelFromDomain creates a persistence model from a domain Invoice entity
func InvoiceModelFromDomain(i *billing.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:            i.ID,
		OrderID:       i.OrderID,
		UserID:        i.UserID,
		Provider:      i.Provider,
		InvoiceNumber: i.Number,
		Series:        i.Series,
		URL:           i.URL,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
	}
}

// InvoiceSequenceModel stores the last number handed out per tenant, provider and year.
type InvoiceSequenceModel struct {
	UserID    uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Provider  billing.Provider `gorm:"type:varchar(20);primaryKey"`
	Year      int              `gorm:"primaryKey;autoIncrement:false"`
	LastValue int64            `gorm:"not null;default:0"`
	UpdatedAt time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}
