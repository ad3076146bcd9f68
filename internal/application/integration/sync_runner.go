package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/audit"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopops/backend/internal/infrastructure/scheduler"
	"github.com/shopops/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// IngestRecorder receives the number of rows each sync inserted
type IngestRecorder interface {
	RecordIngested(products, orders int)
}

// SyncRunnerOption configures a SyncRunner
type SyncRunnerOption func(*SyncRunner)

// WithIngestRecorder reports ingestion counts to r
func WithIngestRecorder(r IngestRecorder) SyncRunnerOption {
	return func(s *SyncRunner) {
		s.recorder = r
	}
}

// WithSimulatedDelay sets the pause taken before ingestion
func WithSimulatedDelay(d time.Duration) SyncRunnerOption {
	return func(s *SyncRunner) {
		s.delay = d
	}
}

// SyncRunner executes store sync jobs: it pulls the store feed, inserts
// unseen products and orders, and records the outcome on the store and in
// the sync log. It always releases the store's sync lock when done.
type SyncRunner struct {
	stores   integration.StoreRepository
	products catalog.ProductRepository
	orders   trade.OrderRepository
	feed     integration.CatalogFeed
	trail    *audit.Trail
	locks    shared.LockStore
	recorder IngestRecorder
	delay    time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSyncRunner creates a new sync runner
func NewSyncRunner(
	stores integration.StoreRepository,
	products catalog.ProductRepository,
	orders trade.OrderRepository,
	feed integration.CatalogFeed,
	trail *audit.Trail,
	locks shared.LockStore,
	logger *zap.Logger,
	opts ...SyncRunnerOption,
) *SyncRunner {
	r := &SyncRunner{
		stores:   stores,
		products: products,
		orders:   orders,
		feed:     feed,
		trail:    trail,
		locks:    locks,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute implements scheduler.StoreSyncExecutor.
// It is also called for jobs cancelled before they started, with ctx already done.
func (r *SyncRunner) Execute(ctx context.Context, job scheduler.StoreSyncJob) (scheduler.StoreSyncResult, error) {
	// bookkeeping must survive cancellation and timeouts
	bg := context.WithoutCancel(ctx)
	defer r.releaseLock(bg, job.StoreID)

	ctx, span := telemetry.StartServiceSpan(ctx, "sync", "execute",
		telemetry.SpanAttrStoreID, job.StoreID,
		telemetry.SpanAttrSyncJobID, job.ID)
	defer span.End()

	log := r.logger.With(
		zap.String("job_id", job.ID.String()),
		zap.String("store_id", job.StoreID.String()))

	result, err := r.run(ctx, job.StoreID)
	if err != nil {
		telemetry.RecordError(span, err)
		r.recordFailure(bg, job.StoreID, err, log)
		return result, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrIngestCount, result.Products+result.Orders)
	log.Info("Store sync completed",
		zap.Int("products_inserted", result.Products),
		zap.Int("orders_inserted", result.Orders))
	return result, nil
}

func (r *SyncRunner) run(ctx context.Context, storeID uuid.UUID) (scheduler.StoreSyncResult, error) {
	var result scheduler.StoreSyncResult

	if err := ctx.Err(); err != nil {
		return result, err
	}

	store, err := r.stores.FindByID(ctx, storeID)
	if err != nil {
		return result, fmt.Errorf("load store: %w", err)
	}

	if err := r.wait(ctx); err != nil {
		return result, err
	}

	remoteProducts, err := r.feed.Products(ctx, store)
	if err != nil {
		return result, fmt.Errorf("fetch products: %w", err)
	}
	result.Products, err = r.ingestProducts(ctx, store.ID, remoteProducts)
	if err != nil {
		return result, err
	}
	if err := r.trail.Success(ctx, store.ID, integration.LogEntityProduct, integration.LogActionSync,
		fmt.Sprintf("Sincronizate %d produse din %s", len(remoteProducts), store.Type)); err != nil {
		return result, err
	}

	remoteOrders, err := r.feed.Orders(ctx, store)
	if err != nil {
		return result, fmt.Errorf("fetch orders: %w", err)
	}
	result.Orders, err = r.ingestOrders(ctx, store.ID, remoteOrders)
	if err != nil {
		return result, err
	}
	if err := r.trail.Success(ctx, store.ID, integration.LogEntityOrder, integration.LogActionSync,
		fmt.Sprintf("Sincronizate %d comenzi noi", result.Orders)); err != nil {
		return result, err
	}

	now := r.now()
	if err := r.stores.UpdateSyncState(ctx, store.ID, integration.StoreStatusActive, &now); err != nil {
		return result, fmt.Errorf("update sync state: %w", err)
	}

	if r.recorder != nil {
		r.recorder.RecordIngested(result.Products, result.Orders)
	}
	return result, nil
}

// wait pauses for the configured delay, returning early if ctx ends
func (r *SyncRunner) wait(ctx context.Context) error {
	if r.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *SyncRunner) ingestProducts(ctx context.Context, storeID uuid.UUID, remote []integration.RemoteProduct) (int, error) {
	inserted := 0
	for _, rp := range remote {
		product, err := catalog.NewProduct(storeID, rp.RemoteID, rp.Name)
		if err != nil {
			return inserted, err
		}
		product.SKU = rp.SKU
		product.ImageURL = rp.ImageURL
		product.SetStatus(rp.Status)
		if err := product.SetPrice(rp.Price); err != nil {
			return inserted, err
		}
		if err := product.SetStock(rp.StockQuantity); err != nil {
			return inserted, err
		}

		ok, err := r.products.InsertIfAbsent(ctx, product)
		if err != nil {
			return inserted, fmt.Errorf("insert product %s: %w", rp.RemoteID, err)
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

func (r *SyncRunner) ingestOrders(ctx context.Context, storeID uuid.UUID, remote []integration.RemoteOrder) (int, error) {
	inserted := 0
	for _, ro := range remote {
		order, err := trade.NewOrder(storeID, trade.OrderInput{
			RemoteID:      ro.RemoteID,
			OrderNumber:   ro.OrderNumber,
			Status:        ro.Status,
			Total:         ro.Total,
			Currency:      ro.Currency,
			CustomerName:  ro.CustomerName,
			CustomerEmail: ro.CustomerEmail,
			CustomerAddress: trade.Address{
				Street:     ro.CustomerAddress.Street,
				City:       ro.CustomerAddress.City,
				County:     ro.CustomerAddress.County,
				PostalCode: ro.CustomerAddress.PostalCode,
				Country:    ro.CustomerAddress.Country,
			},
			CreatedAt: ro.CreatedAt,
		})
		if err != nil {
			return inserted, err
		}

		ok, err := r.orders.InsertIfAbsent(ctx, order)
		if err != nil {
			return inserted, fmt.Errorf("insert order %s: %w", ro.RemoteID, err)
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

func (r *SyncRunner) recordFailure(ctx context.Context, storeID uuid.UUID, cause error, log *zap.Logger) {
	log.Error("Store sync failed", zap.Error(cause))

	if err := r.stores.UpdateSyncState(ctx, storeID, integration.StoreStatusError, nil); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// store deleted while syncing; nothing left to annotate
			return
		}
		log.Warn("Failed to flag store after sync failure", zap.Error(err))
	}

	_ = r.trail.Failure(ctx, storeID, integration.LogEntitySync, integration.LogActionComplete,
		fmt.Sprintf("Sincronizare eșuată: %v", cause))
}

func (r *SyncRunner) releaseLock(ctx context.Context, storeID uuid.UUID) {
	if err := r.locks.Release(ctx, SyncLockKey(storeID)); err != nil {
		r.logger.Warn("Failed to release sync lock",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
	}
}

// Ensure SyncRunner implements StoreSyncExecutor
var _ scheduler.StoreSyncExecutor = (*SyncRunner)(nil)
