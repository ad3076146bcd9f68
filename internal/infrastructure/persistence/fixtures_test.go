package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopops/backend/internal/domain/identity"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "secret123", identity.Profile{FirstName: "Ana"})
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func seedStore(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *integration.Store {
	t.Helper()
	store, err := integration.NewStore(userID, integration.StoreInput{
		Name: name,
		Type: integration.StoreTypeWooCommerce,
		URL:  "https://" + name + ".example.ro",
	})
	require.NoError(t, err)
	require.NoError(t, NewGormStoreRepository(db).Create(context.Background(), store))
	return store
}

func newProduct(t *testing.T, storeID uuid.UUID, remoteID string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(storeID, remoteID, "Produs "+remoteID)
	require.NoError(t, err)
	p.SKU = "SKU-" + remoteID
	require.NoError(t, p.SetPrice(decimal.RequireFromString("99.99")))
	require.NoError(t, p.SetStock(stock))
	return p
}

func newOrder(t *testing.T, storeID uuid.UUID, remoteID string, total string, createdAt time.Time) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(storeID, trade.OrderInput{
		RemoteID:      remoteID,
		OrderNumber:   fmt.Sprintf("#%s", remoteID),
		Status:        trade.OrderStatusProcessing,
		Total:         decimal.RequireFromString(total),
		CustomerName:  "Ion Popescu",
		CustomerEmail: "ion@example.ro",
		CustomerAddress: trade.Address{
			Street: "Str. Victoriei 10",
			City:   "București",
		},
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return o
}

func seedOrder(t *testing.T, db *gorm.DB, storeID uuid.UUID, remoteID string) *trade.Order {
	t.Helper()
	o := newOrder(t, storeID, remoteID, "150.00", time.Now())
	inserted, err := NewGormOrderRepository(db).InsertIfAbsent(context.Background(), o)
	require.NoError(t, err)
	require.True(t, inserted)
	return o
}
