package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shipping"
)

// AWBModel is the persistence model for the AWB domain entity.
type AWBModel struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primary_key"`
	OrderID             uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_awb_generations_order"`
	Courier             shipping.Courier   `gorm:"type:varchar(20);not null"`
	AWBNumber           string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_awb_generations_number"`
	Status              shipping.AWBStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PDFURL              string             `gorm:"type:text;column:pdf_url"`
	TrackingHistoryJSON string             `gorm:"type:jsonb;column:tracking_history"`
	Version             int                `gorm:"not null;default:1"`
	CreatedAt           time.Time          `gorm:"not null"`
	UpdatedAt           time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AWBModel) TableName() string {
	return "awb_generations"
}

// ToDomain converts the persistence model to a domain AWB entity
func (m *AWBModel) ToDomain() *shipping.AWB {
	awb := &shipping.AWB{
		ID:              m.ID,
		OrderID:         m.OrderID,
		Courier:         m.Courier,
		Number:          m.AWBNumber,
		Status:          m.Status,
		PDFURL:          m.PDFURL,
		TrackingHistory: make([]shipping.TrackingEvent, 0),
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.TrackingHistoryJSON != "" {
		var history []shipping.TrackingEvent
		if err := json.Unmarshal([]byte(m.TrackingHistoryJSON), &history); err == nil {
			awb.TrackingHistory = history
		}
	}
	return awb
}

// AWBModelFromDomain creates a persistence model from a domain AWB entity
func AWBModelFromDomain(a *shipping.AWB) (*AWBModel, error) {
	history := a.TrackingHistory
	if history == nil {
		history = []shipping.TrackingEvent{}
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}
	return &AWBModel{
		ID:                  a.ID,
		OrderID:             a.OrderID,
		Courier:             a.Courier,
		AWBNumber:           a.Number,
		Status:              a.Status,
		PDFURL:              a.PDFURL,
		TrackingHistoryJSON: string(raw),
		Version:             a.Version,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}, nil
}
