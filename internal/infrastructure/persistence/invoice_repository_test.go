package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/billing"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormInvoiceSequencer(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	seq := NewGormInvoiceSequencer(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	t.Run("sequential per user, provider and year", func(t *testing.T) {
		for want := int64(1); want <= 3; want++ {
			got, err := seq.Next(ctx, alice, billing.ProviderSmartBill, 2026)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}

		got, err := seq.Next(ctx, alice, billing.ProviderOblio, 2026)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got, "providers have separate counters")

		got, err = seq.Next(ctx, alice, billing.ProviderSmartBill, 2027)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got, "a new year restarts the counter")

		got, err = seq.Next(ctx, bob, billing.ProviderSmartBill, 2026)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got, "users do not share counters")
	})

	t.Run("concurrent callers never share a number", func(t *testing.T) {
		const workers = 10
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[int64]bool)
		)
		user := uuid.New()
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := seq.Next(ctx, user, billing.ProviderOblio, 2026)
				assert.NoError(t, err)
				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, workers)
		for n := int64(1); n <= workers; n++ {
			assert.True(t, seen[n], "missing %d", n)
		}
	})
}

func TestGormInvoiceRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.ro")
	store := seedStore(t, db, owner.ID, "magazin")
	order := seedOrder(t, db, store.ID, "900")

	inv, err := billing.NewIssuedInvoice(order.ID, owner.ID, billing.ProviderSmartBill, 2026, 1, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inv))
	assert.Equal(t, "SB2026-0001", inv.Number)

	t.Run("one invoice per order", func(t *testing.T) {
		dup, err := billing.NewIssuedInvoice(order.ID, owner.ID, billing.ProviderSmartBill, 2026, 2, time.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), billing.ErrDuplicateInvoice)
	})

	t.Run("lookups", func(t *testing.T) {
		found, err := repo.FindByOrderID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, inv.Number, found.Number)

		exists, err := repo.ExistsForOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = repo.FindByOrderID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		list, err := repo.ListByStores(ctx, []uuid.UUID{store.ID})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
