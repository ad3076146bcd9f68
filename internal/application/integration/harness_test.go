package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/audit"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/infrastructure/cache"
	"github.com/shopops/backend/internal/infrastructure/scheduler"
	"github.com/shopops/backend/internal/testutil/fixtures"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// harness wires the store service to a real scheduler, runner and SQLite schema
type harness struct {
	env      *fixtures.Env
	locks    *cache.InMemoryLockStore
	trail    *audit.Trail
	resolver *tenancy.Resolver
	runner   *SyncRunner
	sched    *scheduler.StoreSyncScheduler
	stores   *StoreService
}

func newHarness(t *testing.T, delay time.Duration) *harness {
	t.Helper()
	env := fixtures.NewEnv(t)
	logger := zap.NewNop()

	locks := cache.NewInMemoryLockStore()
	t.Cleanup(func() { _ = locks.Close() })

	trail := audit.NewTrail(env.Logs, logger)
	resolver := tenancy.NewResolver(env.Stores, env.Orders, env.Products, env.AWBs)
	runner := NewSyncRunner(env.Stores, env.Products, env.Orders, NewDemoFeed(1), trail, locks, logger,
		WithSimulatedDelay(delay))

	sched, err := scheduler.NewStoreSyncScheduler(scheduler.Config{
		Workers:     2,
		QueueSize:   10,
		JobTimeout:  10 * time.Second,
		HistorySize: 10,
	}, runner, logger)
	require.NoError(t, err)
	require.NoError(t, sched.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = sched.Stop(ctx)
	})

	return &harness{
		env:      env,
		locks:    locks,
		trail:    trail,
		resolver: resolver,
		runner:   runner,
		sched:    sched,
		stores:   NewStoreService(env.Stores, resolver, trail, locks, sched, time.Minute, logger),
	}
}

// waitForJob blocks until the store's latest job reaches a terminal status
func (h *harness) waitForJob(t *testing.T, storeID uuid.UUID) scheduler.StoreSyncJob {
	t.Helper()
	var job scheduler.StoreSyncJob
	require.Eventually(t, func() bool {
		var ok bool
		job, ok = h.sched.LatestForStore(storeID)
		return ok && job.Status.IsTerminal()
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

func (h *harness) countProducts(t *testing.T, storeID uuid.UUID) int64 {
	t.Helper()
	n, err := h.env.Products.CountByStores(context.Background(), []uuid.UUID{storeID})
	require.NoError(t, err)
	return n
}

func (h *harness) countOrders(t *testing.T, storeID uuid.UUID) int64 {
	t.Helper()
	totals, err := h.env.Orders.Totals(context.Background(), []uuid.UUID{storeID})
	require.NoError(t, err)
	return totals.Count
}
