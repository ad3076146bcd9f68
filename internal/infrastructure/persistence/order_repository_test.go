package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopops/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.ro")
	store := seedStore(t, db, owner.ID, "magazin")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	older := newOrder(t, store.ID, "1001", "199.99", base)
	newer := newOrder(t, store.ID, "1002", "149.50", base.Add(2*time.Hour))
	for _, o := range []*trade.Order{older, newer} {
		ok, err := repo.InsertIfAbsent(ctx, o)
		require.NoError(t, err)
		require.True(t, ok)
	}

	t.Run("re-ingesting the same remote id is skipped", func(t *testing.T) {
		ok, err := repo.InsertIfAbsent(ctx, newOrder(t, store.ID, "1001", "1.00", base))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list orders newest original date first", func(t *testing.T) {
		items, total, err := repo.List(ctx, trade.OrderQuery{StoreIDs: []uuid.UUID{store.ID}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 2)
		assert.Equal(t, newer.ID, items[0].ID)
		assert.Equal(t, "București", items[0].CustomerAddress.City)
	})

	t.Run("search text is matched literally", func(t *testing.T) {
		for _, search := range []string{"%", "_", "ion_"} {
			_, total, err := repo.List(ctx, trade.OrderQuery{
				Filter:   shared.Filter{Search: search},
				StoreIDs: []uuid.UUID{store.ID},
			})
			require.NoError(t, err)
			assert.Zero(t, total, search)
		}

		items, total, err := repo.List(ctx, trade.OrderQuery{
			Filter:   shared.Filter{Search: "POPESCU"},
			StoreIDs: []uuid.UUID{store.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		items, total, err := repo.List(ctx, trade.OrderQuery{
			Filter:   shared.Filter{Page: 2, PageSize: 1},
			StoreIDs: []uuid.UUID{store.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 1)
		assert.Equal(t, older.ID, items[0].ID)
	})

	t.Run("totals", func(t *testing.T) {
		totals, err := repo.Totals(ctx, []uuid.UUID{store.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), totals.Count)
		assert.Equal(t, "349.49", totals.Revenue.StringFixed(2))

		empty, err := repo.Totals(ctx, []uuid.UUID{uuid.New()})
		require.NoError(t, err)
		assert.Zero(t, empty.Count)
		assert.True(t, empty.Revenue.IsZero())
	})

	t.Run("find by ids", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, []uuid.UUID{older.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, "#1001", found[older.ID].OrderNumber)
	})
}
