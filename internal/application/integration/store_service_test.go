package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/infrastructure/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectInput() ConnectStoreInput {
	return ConnectStoreInput{
		Name:      "Demo",
		Type:      "WooCommerce",
		URL:       "https://demo.example.ro/",
		APIKey:    "ck_live",
		APISecret: "cs_live",
	}
}

func TestStoreService_Connect(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	user := h.env.User(t, "ana@example.ro")

	store, err := h.stores.Connect(ctx, user.ID, connectInput())
	require.NoError(t, err)
	assert.Equal(t, "active", store.Status)
	assert.Equal(t, "woocommerce", store.Type)
	assert.Equal(t, "https://demo.example.ro", store.URL)
	assert.True(t, store.HasAPIKey)
	assert.True(t, store.HasAPISecret)
	assert.False(t, store.HasAccessToken)
	assert.Nil(t, store.LastSyncAt)

	assert.Equal(t, []string{"Magazin Demo conectat cu succes"}, h.env.LogMessages(t, store.ID))

	t.Run("rejects unknown platform", func(t *testing.T) {
		input := connectInput()
		input.Type = "ebay"
		_, err := h.stores.Connect(ctx, user.ID, input)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects bad url", func(t *testing.T) {
		input := connectInput()
		input.URL = "demo.example.ro"
		_, err := h.stores.Connect(ctx, user.ID, input)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestStoreService_ListGetUpdate(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	alice := h.env.User(t, "alice@example.ro")
	bob := h.env.User(t, "bob@example.ro")

	created, err := h.stores.Connect(ctx, alice.ID, connectInput())
	require.NoError(t, err)

	list, err := h.stores.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = h.stores.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = h.stores.Get(ctx, bob.ID, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	name := "Renamed"
	status := "inactive"
	updated, err := h.stores.Update(ctx, alice.ID, created.ID, UpdateStoreInput{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "inactive", updated.Status)
	assert.True(t, updated.HasAPIKey, "credentials kept")

	got, err := h.stores.Get(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	badType := "ebay"
	_, err = h.stores.Update(ctx, alice.ID, created.ID, UpdateStoreInput{Type: &badType})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = h.stores.Update(ctx, bob.ID, created.ID, UpdateStoreInput{Name: &name})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStoreService_Sync(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	user, store := h.env.Tenant(t, "ana@example.ro", "demo")

	status, err := h.stores.SyncStatus(ctx, user.ID, store.ID)
	require.NoError(t, err)
	assert.Nil(t, status)

	started, err := h.stores.Sync(ctx, user.ID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgSyncStarted, started.Message)
	assert.NotEqual(t, uuid.Nil, started.JobID)

	job := h.waitForJob(t, store.ID)
	assert.Equal(t, scheduler.JobStatusSuccess, job.Status)
	assert.Equal(t, started.JobID, job.ID)
	assert.Equal(t, 8, job.ProductsSynced)
	assert.Equal(t, 8, job.OrdersSynced)

	assert.EqualValues(t, 8, h.countProducts(t, store.ID))
	assert.EqualValues(t, 8, h.countOrders(t, store.ID))

	synced, err := h.env.Stores.FindByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.StoreStatusActive, synced.Status)
	assert.NotNil(t, synced.LastSyncAt)

	messages := h.env.LogMessages(t, store.ID)
	assert.Contains(t, messages, "Sincronizare inițiată pentru demo")
	assert.Contains(t, messages, "Sincronizate 8 produse din woocommerce")
	assert.Contains(t, messages, "Sincronizate 8 comenzi noi")

	status, err = h.stores.SyncStatus(ctx, user.ID, store.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, scheduler.JobStatusSuccess, status.Status)

	t.Run("second sync inserts nothing new", func(t *testing.T) {
		_, err := h.stores.Sync(ctx, user.ID, store.ID)
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			job, ok := h.sched.LatestForStore(store.ID)
			return ok && job.ID != started.JobID && job.Status.IsTerminal()
		}, 5*time.Second, 10*time.Millisecond)

		assert.EqualValues(t, 8, h.countProducts(t, store.ID))
		assert.EqualValues(t, 8, h.countOrders(t, store.ID))
		assert.Contains(t, h.env.LogMessages(t, store.ID), "Sincronizate 0 comenzi noi")
	})

	assert.Equal(t, 0, h.locks.Size(), "lock released after the job")
}

func TestStoreService_SyncRejectsOverlap(t *testing.T) {
	h := newHarness(t, 500*time.Millisecond)
	ctx := context.Background()
	user, store := h.env.Tenant(t, "ana@example.ro", "demo")

	_, err := h.stores.Sync(ctx, user.ID, store.ID)
	require.NoError(t, err)

	_, err = h.stores.Sync(ctx, user.ID, store.ID)
	require.ErrorIs(t, err, shared.ErrSyncInProgress)
	assert.Equal(t, "Sincronizare deja în curs", err.Error())

	h.waitForJob(t, store.ID)
	_, err = h.stores.Sync(ctx, user.ID, store.ID)
	assert.NoError(t, err, "store can sync again once the job ended")
}

func TestStoreService_SyncForeignStore(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	_, store := h.env.Tenant(t, "alice@example.ro", "alice")
	bob := h.env.User(t, "bob@example.ro")

	_, err := h.stores.Sync(ctx, bob.ID, store.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, h.env.LogMessages(t, store.ID))

	_, err = h.stores.SyncStatus(ctx, bob.ID, store.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStoreService_SyncSchedulerStopped(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	user, store := h.env.Tenant(t, "ana@example.ro", "demo")

	require.NoError(t, h.sched.Stop(ctx))

	_, err := h.stores.Sync(ctx, user.ID, store.ID)
	assert.ErrorIs(t, err, shared.ErrServiceUnavailable)

	acquired, err := h.locks.Acquire(ctx, SyncLockKey(store.ID), time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "lock released when the job could not be queued")
}

func TestStoreService_DeleteCancelsSyncAndCascades(t *testing.T) {
	h := newHarness(t, 3*time.Second)
	ctx := context.Background()
	alice, store := h.env.Tenant(t, "alice@example.ro", "alice")
	bob := h.env.User(t, "bob@example.ro")
	h.env.Order(t, store.ID, "ORD-1", "10.00")
	h.env.Product(t, store.ID, "SKU-1", 5)

	_, err := h.stores.Sync(ctx, alice.ID, store.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, h.stores.Delete(ctx, bob.ID, store.ID), shared.ErrNotFound)

	require.NoError(t, h.stores.Delete(ctx, alice.ID, store.ID))

	job := h.waitForJob(t, store.ID)
	assert.Equal(t, scheduler.JobStatusCancelled, job.Status)

	_, err = h.env.Stores.FindByID(ctx, store.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Zero(t, h.countProducts(t, store.ID))
	assert.Zero(t, h.countOrders(t, store.ID))
	assert.Equal(t, 0, h.locks.Size())

	_, err = h.stores.Get(ctx, alice.ID, store.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
