package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/audit"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/infrastructure/scheduler"
	"github.com/shopops/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// MsgSyncStarted is returned once a sync job has been queued
const MsgSyncStarted = "Sincronizare pornită"

// SyncJobs is the part of the sync scheduler the store service drives
type SyncJobs interface {
	Submit(storeID, userID uuid.UUID) (scheduler.StoreSyncJob, error)
	Cancel(storeID uuid.UUID) bool
	LatestForStore(storeID uuid.UUID) (scheduler.StoreSyncJob, bool)
}

// SyncLockKey is the lock held while a store is syncing
func SyncLockKey(storeID uuid.UUID) string {
	return "store-sync:" + storeID.String()
}

// StoreService manages connected stores and starts their syncs
type StoreService struct {
	stores   integration.StoreRepository
	resolver *tenancy.Resolver
	trail    *audit.Trail
	locks    shared.LockStore
	jobs     SyncJobs
	lockTTL  time.Duration
	logger   *zap.Logger
}

// NewStoreService creates a new store service
func NewStoreService(
	stores integration.StoreRepository,
	resolver *tenancy.Resolver,
	trail *audit.Trail,
	locks shared.LockStore,
	jobs SyncJobs,
	lockTTL time.Duration,
	logger *zap.Logger,
) *StoreService {
	return &StoreService{
		stores:   stores,
		resolver: resolver,
		trail:    trail,
		locks:    locks,
		jobs:     jobs,
		lockTTL:  lockTTL,
		logger:   logger,
	}
}

// Connect validates and stores a new store connection
func (s *StoreService) Connect(ctx context.Context, userID uuid.UUID, input ConnectStoreInput) (*StoreResponse, error) {
	store, err := integration.NewStore(userID, integration.StoreInput{
		Name: input.Name,
		Type: parseStoreType(input.Type),
		URL:  input.URL,
		Credentials: integration.Credentials{
			APIKey:      input.APIKey,
			APISecret:   input.APISecret,
			AccessToken: input.AccessToken,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.stores.Create(ctx, store); err != nil {
		s.logger.Error("Failed to create store", zap.Error(err))
		return nil, err
	}

	_ = s.trail.Success(ctx, store.ID, integration.LogEntityStore, integration.LogActionCreate,
		fmt.Sprintf("Magazin %s conectat cu succes", store.Name))

	s.logger.Info("Store connected",
		zap.String("store_id", store.ID.String()),
		zap.String("type", store.Type.String()))

	resp := ToStoreResponse(store)
	return &resp, nil
}

// List returns the user's stores, newest first
func (s *StoreService) List(ctx context.Context, userID uuid.UUID) ([]StoreResponse, error) {
	stores, err := s.stores.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToStoreResponses(stores), nil
}

// Get returns one of the user's stores
func (s *StoreService) Get(ctx context.Context, userID, storeID uuid.UUID) (*StoreResponse, error) {
	store, err := s.resolver.Store(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	resp := ToStoreResponse(store)
	return &resp, nil
}

// Update applies a partial update to one of the user's stores
func (s *StoreService) Update(ctx context.Context, userID, storeID uuid.UUID, input UpdateStoreInput) (*StoreResponse, error) {
	store, err := s.resolver.Store(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	update := integration.StoreUpdate{
		Name:        input.Name,
		URL:         input.URL,
		APIKey:      input.APIKey,
		APISecret:   input.APISecret,
		AccessToken: input.AccessToken,
	}
	if input.Type != nil {
		t := parseStoreType(*input.Type)
		update.Type = &t
	}
	if input.Status != nil {
		st := integration.StoreStatus(strings.ToLower(strings.TrimSpace(*input.Status)))
		update.Status = &st
	}
	if err := store.Apply(update); err != nil {
		return nil, err
	}

	if err := s.stores.Update(ctx, store); err != nil {
		s.logger.Error("Failed to update store", zap.String("store_id", storeID.String()), zap.Error(err))
		return nil, err
	}

	_ = s.trail.Success(ctx, store.ID, integration.LogEntityStore, integration.LogActionUpdate,
		fmt.Sprintf("Magazin %s actualizat", store.Name))

	resp := ToStoreResponse(store)
	return &resp, nil
}

// Delete cancels any running sync and removes the store with everything derived from it
func (s *StoreService) Delete(ctx context.Context, userID, storeID uuid.UUID) error {
	store, err := s.resolver.Store(ctx, userID, storeID)
	if err != nil {
		return err
	}

	if s.jobs.Cancel(store.ID) {
		s.logger.Info("Cancelled running sync before store deletion", zap.String("store_id", store.ID.String()))
	}

	if err := s.stores.DeleteCascade(ctx, store.ID); err != nil {
		s.logger.Error("Failed to delete store", zap.String("store_id", store.ID.String()), zap.Error(err))
		return err
	}

	s.logger.Info("Store deleted", zap.String("store_id", store.ID.String()))
	return nil
}

// Sync takes the store's sync lock and queues a background sync job.
// The lock is released by the job when it ends.
func (s *StoreService) Sync(ctx context.Context, userID, storeID uuid.UUID) (*SyncStarted, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "store", "sync",
		telemetry.SpanAttrUserID, userID,
		telemetry.SpanAttrStoreID, storeID)
	defer span.End()

	store, err := s.resolver.Store(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	key := SyncLockKey(store.ID)
	acquired, err := s.locks.Acquire(ctx, key, s.lockTTL)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to acquire sync lock", zap.String("store_id", store.ID.String()), zap.Error(err))
		return nil, shared.ErrServiceUnavailable
	}
	if !acquired {
		return nil, shared.ErrSyncInProgress
	}

	if err := s.trail.Success(ctx, store.ID, integration.LogEntitySync, integration.LogActionStart,
		fmt.Sprintf("Sincronizare inițiată pentru %s", store.Name)); err != nil {
		s.releaseLock(ctx, key)
		return nil, err
	}

	job, err := s.jobs.Submit(store.ID, userID)
	if err != nil {
		s.releaseLock(ctx, key)
		if errors.Is(err, scheduler.ErrJobAlreadyActive) {
			return nil, shared.ErrSyncInProgress
		}
		telemetry.RecordError(span, err)
		s.logger.Warn("Sync job rejected", zap.String("store_id", store.ID.String()), zap.Error(err))
		return nil, shared.ErrServiceUnavailable
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrSyncJobID, job.ID)
	s.logger.Info("Store sync queued",
		zap.String("store_id", store.ID.String()),
		zap.String("job_id", job.ID.String()))

	return &SyncStarted{Message: MsgSyncStarted, JobID: job.ID}, nil
}

// SyncStatus returns the latest sync job of the store, or nil if it never synced
// since the process started
func (s *StoreService) SyncStatus(ctx context.Context, userID, storeID uuid.UUID) (*scheduler.StoreSyncJob, error) {
	store, err := s.resolver.Store(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	job, ok := s.jobs.LatestForStore(store.ID)
	if !ok {
		return nil, nil
	}
	return &job, nil
}

func (s *StoreService) releaseLock(ctx context.Context, key string) {
	if err := s.locks.Release(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn("Failed to release sync lock", zap.String("key", key), zap.Error(err))
	}
}

func parseStoreType(raw string) integration.StoreType {
	return integration.StoreType(strings.ToLower(strings.TrimSpace(raw)))
}
