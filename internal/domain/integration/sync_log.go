package integration

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
)

// LogStatus is the outcome recorded by a sync log entry
type LogStatus string

const (
	LogStatusSuccess LogStatus = "success"
	LogStatusFailed  LogStatus = "failed"
	LogStatusWarning LogStatus = "warning"
)

// IsValid returns true if the status is known
func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusSuccess, LogStatusFailed, LogStatusWarning:
		return true
	}
	return false
}

// Entities and actions written to the audit trail
const (
	LogEntityStore   = "store"
	LogEntitySync    = "sync"
	LogEntityProduct = "product"
	LogEntityOrder   = "order"
	LogEntityStock   = "stock"
	LogEntityAWB     = "awb"
	LogEntityInvoice = "invoice"
	LogEntityAI      = "ai"

	LogActionCreate   = "create"
	LogActionUpdate   = "update"
	LogActionStart    = "start"
	LogActionSync     = "sync"
	LogActionComplete = "complete"
	LogActionGenerate = "generate"
)

// SyncLog is an append-only audit trail entry. It is never updated or deleted
// except together with its store.
type SyncLog struct {
	ID        uuid.UUID
	StoreID   *uuid.UUID
	Entity    string
	Action    string
	Status    LogStatus
	Message   string
	CreatedAt time.Time
}

// NewSyncLog creates an audit entry. storeID may be nil for account-level events.
func NewSyncLog(storeID *uuid.UUID, entity, action string, status LogStatus, message string) (*SyncLog, error) {
	entity = strings.TrimSpace(entity)
	action = strings.TrimSpace(action)
	if entity == "" || action == "" {
		return nil, shared.NewValidationError("Log entity and action are required")
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("Invalid log status")
	}
	return &SyncLog{
		ID:        uuid.New(),
		StoreID:   storeID,
		Entity:    entity,
		Action:    action,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now(),
	}, nil
}
