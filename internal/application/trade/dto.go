package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/billing"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderListFilter contains the filter for listing orders
type OrderListFilter struct {
	StoreID  *uuid.UUID
	Status   string
	Page     int
	PageSize int
}

// OrderResponse is the client view of an order
type OrderResponse struct {
	ID              uuid.UUID       `json:"id"`
	StoreID         uuid.UUID       `json:"storeId"`
	RemoteID        string          `json:"remoteId"`
	OrderNumber     string          `json:"orderNumber"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	Currency        string          `json:"currency"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerAddress trade.Address   `json:"customerAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	SyncedAt        time.Time       `json:"syncedAt"`
}

// AWBResponse is the client view of a shipping label
type AWBResponse struct {
	ID              uuid.UUID                `json:"id"`
	OrderID         uuid.UUID                `json:"orderId"`
	Courier         string                   `json:"courier"`
	AWBNumber       string                   `json:"awbNumber"`
	Status          string                   `json:"status"`
	PDFURL          string                   `json:"pdfUrl"`
	TrackingHistory []shipping.TrackingEvent `json:"trackingHistory"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// InvoiceResponse is the client view of an invoice
type InvoiceResponse struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"orderId"`
	Provider      string    `json:"provider"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Series        string    `json:"series"`
	URL           string    `json:"url"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderDetail is an order together with its label and invoice, if any
type OrderDetail struct {
	Order   OrderResponse    `json:"order"`
	AWB     *AWBResponse     `json:"awb"`
	Invoice *InvoiceResponse `json:"invoice"`
}

// ToOrderResponse converts a domain order to its client view
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		StoreID:         o.StoreID,
		RemoteID:        o.RemoteID,
		OrderNumber:     o.OrderNumber,
		Status:          o.Status,
		Total:           o.Total,
		Currency:        o.Currency,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		CreatedAt:       o.CreatedAt,
		SyncedAt:        o.SyncedAt,
	}
}

// ToAWBResponse converts a domain AWB to its client view
func ToAWBResponse(a *shipping.AWB) AWBResponse {
	history := a.TrackingHistory
	if history == nil {
		history = []shipping.TrackingEvent{}
	}
	return AWBResponse{
		ID:              a.ID,
		OrderID:         a.OrderID,
		Courier:         string(a.Courier),
		AWBNumber:       a.Number,
		Status:          string(a.Status),
		PDFURL:          a.PDFURL,
		TrackingHistory: history,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToInvoiceResponse converts a domain invoice to its client view
func ToInvoiceResponse(i *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            i.ID,
		OrderID:       i.OrderID,
		Provider:      string(i.Provider),
		InvoiceNumber: i.Number,
		Series:        i.Series,
		URL:           i.URL,
		Status:        string(i.Status),
		CreatedAt:     i.CreatedAt,
	}
}
