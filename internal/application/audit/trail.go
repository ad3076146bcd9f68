// Package audit writes the sync log entries that fulfillment steps leave behind.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/integration"
	"go.uber.org/zap"
)

// Trail appends entries to the sync log
type Trail struct {
	logs   integration.SyncLogRepository
	logger *zap.Logger
}

// NewTrail creates a new audit trail
func NewTrail(logs integration.SyncLogRepository, logger *zap.Logger) *Trail {
	return &Trail{logs: logs, logger: logger}
}

// Record writes one entry for storeID. Failures are logged and returned.
func (t *Trail) Record(ctx context.Context, storeID uuid.UUID, entity, action string, status integration.LogStatus, message string) error {
	entry, err := integration.NewSyncLog(&storeID, entity, action, status, message)
	if err != nil {
		return err
	}
	if err := t.logs.Create(ctx, entry); err != nil {
		t.logger.Warn("Failed to write sync log",
			zap.String("store_id", storeID.String()),
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Error(err))
		return fmt.Errorf("failed to write sync log: %w", err)
	}
	return nil
}

// Success is Record with status success
func (t *Trail) Success(ctx context.Context, storeID uuid.UUID, entity, action, message string) error {
	return t.Record(ctx, storeID, entity, action, integration.LogStatusSuccess, message)
}

// Failure is Record with status failed
func (t *Trail) Failure(ctx context.Context, storeID uuid.UUID, entity, action, message string) error {
	return t.Record(ctx, storeID, entity, action, integration.LogStatusFailed, message)
}
