package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a product counts as low on stock
const LowStockThreshold = 10

// ProductStatus represents the publication status of a product
type ProductStatus string

const (
	ProductStatusPublish ProductStatus = "publish"
	ProductStatusDraft   ProductStatus = "draft"
	ProductStatusPrivate ProductStatus = "private"
)

// IsValid returns true if the status is known
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusPublish, ProductStatusDraft, ProductStatusPrivate:
		return true
	}
	return false
}

// Product is a store product mirrored from the remote platform
type Product struct {
	shared.BaseEntity
	StoreID       uuid.UUID
	RemoteID      string
	Name          string
	SKU           string
	Price         decimal.Decimal
	StockQuantity int
	Status        ProductStatus
	ImageURL      string
}

// NewProduct creates a product ingested from a store
func NewProduct(storeID uuid.UUID, remoteID, name string) (*Product, error) {
	remoteID = strings.TrimSpace(remoteID)
	name = strings.TrimSpace(name)
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("Product store is required")
	}
	if remoteID == "" {
		return nil, shared.NewValidationError("Product remote id is required")
	}
	if name == "" {
		return nil, shared.NewValidationError("Product name is required")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		RemoteID:   remoteID,
		Name:       name,
		Price:      decimal.Zero,
		Status:     ProductStatusPublish,
	}, nil
}

// SetPrice sets the price, rounded to two decimals
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("Prețul nu poate fi negativ")
	}
	p.Price = price.Round(2)
	return nil
}

// SetStatus sets the publication status; unknown values fall back to publish
func (p *Product) SetStatus(status string) {
	s := ProductStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		s = ProductStatusPublish
	}
	p.Status = s
}

// SetStock replaces the stock quantity. Quantities are absolute, never deltas,
// and negative values are rejected.
func (p *Product) SetStock(quantity int) error {
	if err := ValidateStock(quantity); err != nil {
		return err
	}
	p.StockQuantity = quantity
	p.Touch()
	return nil
}

// IsLowStock reports whether the product is below LowStockThreshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity < LowStockThreshold
}

// ValidateStock checks that a stock quantity can be stored
func ValidateStock(quantity int) error {
	if quantity < 0 {
		return shared.NewValidationError(fmt.Sprintf("Stocul nu poate fi negativ (primit %d)", quantity))
	}
	return nil
}
