package integration

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/integration"
)

// LogService lists the audit trail of a user's stores
type LogService struct {
	logs     integration.SyncLogRepository
	resolver *tenancy.Resolver
}

// NewLogService creates a new log service
func NewLogService(logs integration.SyncLogRepository, resolver *tenancy.Resolver) *LogService {
	return &LogService{logs: logs, resolver: resolver}
}

// List returns the newest entries across the user's stores, or one store when
// filter.StoreID is set. A store the user does not own yields an empty list.
func (s *LogService) List(ctx context.Context, userID uuid.UUID, filter LogFilter) ([]LogResponse, error) {
	storeIDs, err := s.resolver.OwnedStoreIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if filter.StoreID != nil {
		storeIDs = intersect(storeIDs, *filter.StoreID)
	}

	entries, err := s.logs.List(ctx, integration.LogQuery{StoreIDs: storeIDs, Limit: filter.Limit})
	if err != nil {
		return nil, err
	}
	out := make([]LogResponse, len(entries))
	for i, e := range entries {
		out[i] = ToLogResponse(e)
	}
	return out, nil
}

func intersect(owned []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, o := range owned {
		if o == id {
			return []uuid.UUID{id}
		}
	}
	return nil
}
