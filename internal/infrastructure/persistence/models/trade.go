package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	StoreID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_orders_store_remote,priority:1;index:idx_orders_store_created,priority:1"`
	RemoteID            string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_orders_store_remote,priority:2"`
	OrderNumber         string          `gorm:"type:varchar(100);not null"`
	Status              string          `gorm:"type:varchar(50);not null"`
	Total               decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Currency            string          `gorm:"type:varchar(3);not null;default:'RON'"`
	CustomerName        string          `gorm:"type:varchar(255)"`
	CustomerEmail       string          `gorm:"type:varchar(255)"`
	CustomerAddressJSON string          `gorm:"type:jsonb;column:customer_address"`
	CreatedAt           time.Time       `gorm:"not null;index:idx_orders_store_created,priority:2"`
	SyncedAt            time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		ID:            m.ID,
		StoreID:       m.StoreID,
		RemoteID:      m.RemoteID,
		OrderNumber:   m.OrderNumber,
		Status:        m.Status,
		Total:         m.Total,
		Currency:      m.Currency,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		CreatedAt:     m.CreatedAt,
		SyncedAt:      m.SyncedAt,
	}
	if m.CustomerAddressJSON != "" {
		var addr trade.Address
		if err := json.Unmarshal([]byte(m.CustomerAddressJSON), &addr); err == nil {
			order.CustomerAddress = addr
		}
	}
	return order
}

// OrderModelFromDomain creates a persistence model from a domain Order entity
func OrderModelFromDomain(o *trade.Order) (*OrderModel, error) {
	addr, err := json.Marshal(o.CustomerAddress)
	if err != nil {
		return nil, err
	}
	return &OrderModel{
		ID:                  o.ID,
		StoreID:             o.StoreID,
		RemoteID:            o.RemoteID,
		OrderNumber:         o.OrderNumber,
		Status:              o.Status,
		Total:               o.Total,
		Currency:            o.Currency,
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		CustomerAddressJSON: string(addr),
		CreatedAt:           o.CreatedAt,
		SyncedAt:            o.SyncedAt,
	}, nil
}
