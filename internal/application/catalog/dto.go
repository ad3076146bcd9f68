package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductListFilter contains the filter for listing products
type ProductListFilter struct {
	StoreID  *uuid.UUID
	Search   string
	Page     int
	PageSize int
}

// ProductResponse is the client view of a product
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	StoreID       uuid.UUID       `json:"storeId"`
	RemoteID      string          `json:"remoteId"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Status        string          `json:"status"`
	ImageURL      string          `json:"imageUrl"`
	LowStock      bool            `json:"lowStock"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain product to its client view
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		StoreID:       p.StoreID,
		RemoteID:      p.RemoteID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Status:        string(p.Status),
		ImageURL:      p.ImageURL,
		LowStock:      p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
