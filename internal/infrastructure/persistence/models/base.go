package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AllModels lists every persistence model in dependency order.
// SQL migrations are authoritative for PostgreSQL; this list drives
// AutoMigrate for SQLite development databases and tests.
func AllModels() []any {
	return []any{
		&UserModel{},
		&StoreModel{},
		&ProductModel{},
		&OrderModel{},
		&AWBModel{},
		&InvoiceModel{},
		&InvoiceSequenceModel{},
		&SyncLogModel{},
		&AIConfigModel{},
	}
}
