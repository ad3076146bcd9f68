package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/domain/trade"
	"github.com/shopops/backend/internal/testutil/fixtures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDashboardService(env *fixtures.Env) *DashboardService {
	resolver := tenancy.NewResolver(env.Stores, env.Orders, env.Products, env.AWBs)
	return NewDashboardService(resolver, env.Orders, env.Products, env.AWBs, zap.NewNop())
}

func TestDashboardService_Stats(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	alice, s1 := env.Tenant(t, "alice@example.ro", "one")
	s2 := env.Store(t, alice.ID, "two")
	_, bobStore := env.Tenant(t, "bob@example.ro", "bob")

	o1 := env.Order(t, s1.ID, "ORD-1000", "100.50")
	env.Order(t, s2.ID, "ORD-1001", "49.50")
	o3 := env.Order(t, s2.ID, "ORD-1002", "0.99")
	env.Order(t, bobStore.ID, "ORD-2000", "999.00")

	env.Product(t, s1.ID, "TSH-001", 50)
	env.Product(t, s1.ID, "MUG-001", 3)
	env.Product(t, s2.ID, "CAP-001", 9)
	env.Product(t, s2.ID, "BAG-001", 10)
	env.Product(t, bobStore.ID, "LOW-001", 0)

	now := time.Now()
	generated, err := shipping.NewAWB(o1.ID, shipping.CourierGLS, "GLS0000000001", now)
	require.NoError(t, err)
	require.NoError(t, env.AWBs.Create(ctx, generated))
	shipped, err := shipping.NewAWB(o3.ID, shipping.CourierGLS, "GLS0000000002", now)
	require.NoError(t, err)
	require.NoError(t, shipped.AppendEvent(shipping.AWBStatusShipped, "Predat", now))
	require.NoError(t, env.AWBs.Create(ctx, shipped))

	stats, err := newTestDashboardService(env).Stats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{
		TotalRevenue:     "150.99 RON",
		TotalOrders:      3,
		ProductsCount:    4,
		LowStockCount:    2,
		PendingShipments: 1,
		StoresCount:      2,
	}, stats)
}

func TestDashboardService_Stats_Empty(t *testing.T) {
	env := fixtures.NewEnv(t)
	user := env.User(t, "new@example.ro")

	stats, err := newTestDashboardService(env).Stats(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00 RON", stats.TotalRevenue)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.StoresCount)
}

func TestFormatRevenue(t *testing.T) {
	assert.Equal(t, "1234.50 RON", FormatRevenue(trade.OrderTotals{Revenue: decimal.RequireFromString("1234.5")}))
	assert.Equal(t, "0.00 RON", FormatRevenue(trade.OrderTotals{}))
}
