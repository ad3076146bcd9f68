// Package fixtures builds SQLite-backed repositories and seeds tenants,
// stores and orders for service and handler tests.
package fixtures

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
	"github.com/shopops/backend/internal/infrastructure/persistence"
	"github.com/shopops/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Env bundles an in-memory database with every repository
type Env struct {
	DB        *gorm.DB
	Users     *persistence.GormUserRepository
	Stores    *persistence.GormStoreRepository
	Products  *persistence.GormProductRepository
	Orders    *persistence.GormOrderRepository
	AWBs      *persistence.GormAWBRepository
	Invoices  *persistence.GormInvoiceRepository
	Sequencer *persistence.GormInvoiceSequencer
	Logs      *persistence.GormSyncLogRepository
	AIConfigs *persistence.GormAIConfigRepository
}

// NewEnv opens a fresh schema for the test
func NewEnv(t *testing.T) *Env {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return &Env{
		DB:        db,
		Users:     persistence.NewGormUserRepository(db),
		Stores:    persistence.NewGormStoreRepository(db),
		Products:  persistence.NewGormProductRepository(db),
		Orders:    persistence.NewGormOrderRepository(db),
		AWBs:      persistence.NewGormAWBRepository(db),
		Invoices:  persistence.NewGormInvoiceRepository(db),
		Sequencer: persistence.NewGormInvoiceSequencer(db),
		Logs:      persistence.NewGormSyncLogRepository(db),
		AIConfigs: persistence.NewGormAIConfigRepository(db),
	}
}

// User seeds an account with password "secret123"
func (e *Env) User(t *testing.T, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "secret123", identity.Profile{FirstName: "Ana", LastName: "Pop"})
	require.NoError(t, err)
	require.NoError(t, e.Users.Create(context.Background(), user))
	return user
}

// Store seeds an active WooCommerce store owned by userID
func (e *Env) Store(t *testing.T, userID uuid.UUID, name string) *integration.Store {
	t.Helper()
	store, err := integration.NewStore(userID, integration.StoreInput{
		Name: name,
		Type: integration.StoreTypeWooCommerce,
		URL:  "https://" + name + ".example.ro",
	})
	require.NoError(t, err)
	require.NoError(t, e.Stores.Create(context.Background(), store))
	return store
}

// Product seeds a product with the given stock
func (e *Env) Product(t *testing.T, storeID uuid.UUID, sku string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(storeID, "remote-"+sku, "Produs "+sku)
	require.NoError(t, err)
	p.SKU = sku
	require.NoError(t, p.SetPrice(decimal.RequireFromString("99.99")))
	require.NoError(t, p.SetStock(stock))
	inserted, err := e.Products.InsertIfAbsent(context.Background(), p)
	require.NoError(t, err)
	require.True(t, inserted)
	return p
}

// Order seeds a processing order with the given total
func (e *Env) Order(t *testing.T, storeID uuid.UUID, remoteID, total string) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(storeID, trade.OrderInput{
		RemoteID:      remoteID,
		OrderNumber:   fmt.Sprintf("#%s", remoteID),
		Status:        trade.OrderStatusProcessing,
		Total:         decimal.RequireFromString(total),
		CustomerName:  "Ion Popescu",
		CustomerEmail: "ion.popescu@email.com",
		CustomerAddress: trade.Address{
			Street:  "Str. Exemplu nr. 1",
			City:    "București",
			Country: "România",
		},
		CreatedAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	inserted, err := e.Orders.InsertIfAbsent(context.Background(), o)
	require.NoError(t, err)
	require.True(t, inserted)
	return o
}

// Tenant seeds a user owning one store
func (e *Env) Tenant(t *testing.T, email, storeName string) (*identity.User, *integration.Store) {
	t.Helper()
	user := e.User(t, email)
	return user, e.Store(t, user.ID, storeName)
}

// LogMessages returns the messages logged for storeID, newest first
func (e *Env) LogMessages(t *testing.T, storeID uuid.UUID) []string {
	t.Helper()
	logs, err := e.Logs.List(context.Background(), integration.LogQuery{StoreIDs: []uuid.UUID{storeID}})
	require.NoError(t, err)
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Message)
	}
	return out
}
