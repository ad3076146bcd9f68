package models

import (
	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	StoreID       uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_products_store_remote,priority:1"`
	RemoteID      string                `gorm:"type:varchar(255);not null;uniqueIndex:idx_products_store_remote,priority:2"`
	Name          string                `gorm:"type:text;not null"`
	SKU           string                `gorm:"type:varchar(100);column:sku"`
	Price         decimal.Decimal       `gorm:"type:decimal(10,2);not null;default:0"`
	StockQuantity int                   `gorm:"not null;default:0"`
	Status        catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'publish'"`
	ImageURL      string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:    m.BaseModel.ToDomain(),
		StoreID:       m.StoreID,
		RemoteID:      m.RemoteID,
		Name:          m.Name,
		SKU:           m.SKU,
		Price:         m.Price,
		StockQuantity: m.StockQuantity,
		Status:        m.Status,
		ImageURL:      m.ImageURL,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product entity
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		StoreID:       p.StoreID,
		RemoteID:      p.RemoteID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Status:        p.Status,
		ImageURL:      p.ImageURL,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
