package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when the platform does not report one
const DefaultCurrency = "RON"

// Common order statuses. Platforms may report others; status stays free-form.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusShipped    = "shipped"
	OrderStatusCancelled  = "cancelled"
)

// Address is the customer address snapshot taken when the order was synced
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	County     string `json:"county"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is a store order mirrored from the remote platform.
// It is not modified after ingestion; AWBs and invoices reference it.
type Order struct {
	ID              uuid.UUID
	StoreID         uuid.UUID
	RemoteID        string
	OrderNumber     string
	Status          string
	Total           decimal.Decimal
	Currency        string
	CustomerName    string
	CustomerEmail   string
	CustomerAddress Address
	CreatedAt       time.Time
	SyncedAt        time.Time
}

// OrderInput is the data needed to ingest an order
type OrderInput struct {
	RemoteID        string
	OrderNumber     string
	Status          string
	Total           decimal.Decimal
	Currency        string
	CustomerName    string
	CustomerEmail   string
	CustomerAddress Address
	CreatedAt       time.Time
}

// NewOrder validates input and creates an order for storeID
func NewOrder(storeID uuid.UUID, input OrderInput) (*Order, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("Order store is required")
	}
	remoteID := strings.TrimSpace(input.RemoteID)
	if remoteID == "" {
		return nil, shared.NewValidationError("Order remote id is required")
	}
	number := strings.TrimSpace(input.OrderNumber)
	if number == "" {
		return nil, shared.NewValidationError("Order number is required")
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		return nil, shared.NewValidationError("Order status is required")
	}
	if input.Total.IsNegative() {
		return nil, shared.NewValidationError("Order total cannot be negative")
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	now := time.Now()
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return &Order{
		ID:              uuid.New(),
		StoreID:         storeID,
		RemoteID:        remoteID,
		OrderNumber:     number,
		Status:          status,
		Total:           input.Total.Round(2),
		Currency:        currency,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerAddress: input.CustomerAddress,
		CreatedAt:       createdAt,
		SyncedAt:        now,
	}, nil
}
