package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_InsertIfAbsent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.ro")
	store := seedStore(t, db, owner.ID, "magazin")

	ingest := func() int {
		inserted := 0
		for _, remoteID := range []string{"101", "102", "103", "104", "105", "106", "107", "108"} {
			ok, err := repo.InsertIfAbsent(ctx, newProduct(t, store.ID, remoteID, 20))
			require.NoError(t, err)
			if ok {
				inserted++
			}
		}
		return inserted
	}

	assert.Equal(t, 8, ingest())
	assert.Equal(t, 0, ingest(), "second ingestion must not duplicate")

	total, err := repo.CountByStores(ctx, []uuid.UUID{store.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)

	// Same remote id in another store is a different product
	otherStore := seedStore(t, db, owner.ID, "altul")
	ok, err := repo.InsertIfAbsent(ctx, newProduct(t, otherStore.ID, "101", 1))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGormProductRepository_ListAndStock(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.ro")
	mine := seedStore(t, db, owner.ID, "mine")
	intruder := seedUser(t, db, "intruder@example.ro")
	theirs := seedStore(t, db, intruder.ID, "theirs")

	low := newProduct(t, mine.ID, "1", 3)
	low.Name = "Tricou Bumbac"
	for _, p := range []*catalog.Product{low, newProduct(t, mine.ID, "2", 50), newProduct(t, theirs.ID, "3", 0)} {
		_, err := repo.InsertIfAbsent(ctx, p)
		require.NoError(t, err)
	}

	t.Run("list is scoped to the given stores", func(t *testing.T) {
		items, total, err := repo.List(ctx, catalog.ProductQuery{StoreIDs: []uuid.UUID{mine.ID}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
		for _, p := range items {
			assert.Equal(t, mine.ID, p.StoreID)
		}
	})

	t.Run("search matches name or sku", func(t *testing.T) {
		items, total, err := repo.List(ctx, catalog.ProductQuery{
			Filter:   shared.Filter{Search: "tricou"},
			StoreIDs: []uuid.UUID{mine.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, low.ID, items[0].ID)
	})

	t.Run("wildcards in search are literal", func(t *testing.T) {
		promo := newProduct(t, mine.ID, "4", 10)
		promo.Name = "Șosete 50% reducere"
		promo.SKU = "SOS_50"
		_, err := repo.InsertIfAbsent(ctx, promo)
		require.NoError(t, err)

		for _, search := range []string{"%", "_", "50%"} {
			items, total, err := repo.List(ctx, catalog.ProductQuery{
				Filter:   shared.Filter{Search: search},
				StoreIDs: []uuid.UUID{mine.ID},
			})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total, search)
			require.Len(t, items, 1)
			assert.Equal(t, promo.ID, items[0].ID)
		}

		_, total, err := repo.List(ctx, catalog.ProductQuery{
			Filter:   shared.Filter{Search: `\`},
			StoreIDs: []uuid.UUID{mine.ID},
		})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("no stores yields nothing", func(t *testing.T) {
		items, total, err := repo.List(ctx, catalog.ProductQuery{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("low stock count", func(t *testing.T) {
		n, err := repo.CountLowStock(ctx, []uuid.UUID{mine.ID}, catalog.LowStockThreshold)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("update stock sets absolute quantity", func(t *testing.T) {
		require.NoError(t, repo.UpdateStock(ctx, low.ID, 42))
		found, err := repo.FindByID(ctx, low.ID)
		require.NoError(t, err)
		assert.Equal(t, 42, found.StockQuantity)
		assert.True(t, found.Price.Equal(low.Price))

		assert.ErrorIs(t, repo.UpdateStock(ctx, uuid.New(), 1), shared.ErrNotFound)
	})
}
