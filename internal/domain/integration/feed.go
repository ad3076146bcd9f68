package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RemoteProduct is a product as reported by the store platform
type RemoteProduct struct {
	RemoteID      string
	Name          string
	SKU           string
	Price         decimal.Decimal
	StockQuantity int
	Status        string
	ImageURL      string
}

// RemoteAddress is the shipping address attached to a remote order
type RemoteAddress struct {
	Street     string
	City       string
	County     string
	PostalCode string
	Country    string
}

// RemoteOrder is an order as reported by the store platform
type RemoteOrder struct {
	RemoteID        string
	OrderNumber     string
	Status          string
	Total           decimal.Decimal
	Currency        string
	CustomerName    string
	CustomerEmail   string
	CustomerAddress RemoteAddress
	CreatedAt       time.Time
}

// CatalogFeed pulls products and orders from a store platform.
// Remote IDs must be stable across calls so ingestion can skip known rows.
type CatalogFeed interface {
	Products(ctx context.Context, store *Store) ([]RemoteProduct, error)
	Orders(ctx context.Context, store *Store) ([]RemoteOrder, error)
}
