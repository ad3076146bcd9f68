package shipping

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
)

// awbDigits is how many trailing digits of the epoch-ms clock go into an AWB number
const awbDigits = 10

// Courier identifies the shipping company issuing the AWB
type Courier string

const (
	CourierFanCourier Courier = "fancourier"
	CourierSameday    Courier = "sameday"
	CourierGLS        Courier = "gls"
)

// IsValid returns true if the courier is supported
func (c Courier) IsValid() bool {
	switch c {
	case CourierFanCourier, CourierSameday, CourierGLS:
		return true
	}
	return false
}

// Prefix returns the tracking number prefix of the courier
func (c Courier) Prefix() string {
	switch c {
	case CourierFanCourier:
		return "FC"
	case CourierSameday:
		return "SD"
	default:
		return "GLS"
	}
}

// AWBStatus represents the delivery state of a shipment
type AWBStatus string

const (
	AWBStatusPending   AWBStatus = "pending"
	AWBStatusGenerated AWBStatus = "generated"
	AWBStatusShipped   AWBStatus = "shipped"
	AWBStatusDelivered AWBStatus = "delivered"
	AWBStatusFailed    AWBStatus = "failed"
)

// IsValid returns true if the status is known
func (s AWBStatus) IsValid() bool {
	switch s {
	case AWBStatusPending, AWBStatusGenerated, AWBStatusShipped, AWBStatusDelivered, AWBStatusFailed:
		return true
	}
	return false
}

// TrackingEvent is one entry of the shipment history
type TrackingEvent struct {
	Status    AWBStatus `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AWB is the shipping label generated for an order. There is at most one per order.
type AWB struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	Courier         Courier
	Number          string
	Status          AWBStatus
	PDFURL          string
	TrackingHistory []TrackingEvent
	// Version guards SaveTracking against lost updates
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAWB creates a generated AWB seeded with its first tracking event
func NewAWB(orderID uuid.UUID, courier Courier, number string, now time.Time) (*AWB, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("AWB order is required")
	}
	if !courier.IsValid() {
		return nil, InvalidCourierError()
	}
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewValidationError("AWB number is required")
	}
	return &AWB{
		ID:      uuid.New(),
		OrderID: orderID,
		Courier: courier,
		Number:  number,
		Status:  AWBStatusGenerated,
		PDFURL:  LabelURL(number),
		TrackingHistory: []TrackingEvent{
			{Status: AWBStatusGenerated, Message: "AWB generat", Timestamp: now},
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AppendEvent adds a tracking event and makes its status current.
// Existing events are never removed or reordered.
func (a *AWB) AppendEvent(status AWBStatus, message string, at time.Time) error {
	if !status.IsValid() {
		return shared.NewValidationError("Status AWB invalid: pending, generated, shipped, delivered sau failed")
	}
	history := make([]TrackingEvent, len(a.TrackingHistory), len(a.TrackingHistory)+1)
	copy(history, a.TrackingHistory)
	a.TrackingHistory = append(history, TrackingEvent{
		Status:    status,
		Message:   strings.TrimSpace(message),
		Timestamp: at,
	})
	a.Status = status
	a.UpdatedAt = at
	return nil
}

// LatestEvent returns the most recent tracking event
func (a *AWB) LatestEvent() (TrackingEvent, bool) {
	if len(a.TrackingHistory) == 0 {
		return TrackingEvent{}, false
	}
	return a.TrackingHistory[len(a.TrackingHistory)-1], true
}

// FormatNumber builds an AWB number from the courier prefix and the last
// ten digits of an epoch-millisecond timestamp.
func FormatNumber(courier Courier, epochMillis int64) string {
	digits := fmt.Sprintf("%0*d", awbDigits, epochMillis)
	return courier.Prefix() + digits[len(digits)-awbDigits:]
}

// LabelURL returns the path the label PDF is served from
func LabelURL(number string) string {
	return "/api/awb/" + number + "/pdf"
}

// InvalidCourierError is returned for couriers outside the supported set
func InvalidCourierError() error {
	return shared.NewValidationError("Curier invalid: fancourier, sameday sau gls")
}
