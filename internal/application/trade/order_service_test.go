package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/billing"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService(env *fixtures.Env) *OrderService {
	resolver := tenancy.NewResolver(env.Stores, env.Orders, env.Products, env.AWBs)
	return NewOrderService(env.Orders, env.AWBs, env.Invoices, resolver)
}

func TestOrderService_List(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	alice, s1 := env.Tenant(t, "alice@example.ro", "one")
	s2 := env.Store(t, alice.ID, "two")
	bob, bobStore := env.Tenant(t, "bob@example.ro", "bob")

	env.Order(t, s1.ID, "ORD-1000", "100.00")
	env.Order(t, s2.ID, "ORD-1001", "200.00")
	env.Order(t, bobStore.ID, "ORD-2000", "300.00")
	svc := newTestOrderService(env)

	page, err := svc.List(ctx, alice.ID, OrderListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = svc.List(ctx, alice.ID, OrderListFilter{StoreID: &s2.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "#ORD-1001", page.Items[0].OrderNumber)

	page, err = svc.List(ctx, alice.ID, OrderListFilter{Status: "shipped"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = svc.List(ctx, bob.ID, OrderListFilter{StoreID: &s1.ID})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_Get(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	alice, store := env.Tenant(t, "alice@example.ro", "alice")
	bob := env.User(t, "bob@example.ro")
	order := env.Order(t, store.ID, "ORD-1000", "150.00")
	svc := newTestOrderService(env)

	detail, err := svc.Get(ctx, alice.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, detail.Order.ID)
	assert.Nil(t, detail.AWB)
	assert.Nil(t, detail.Invoice)

	now := time.Now()
	awb, err := shipping.NewAWB(order.ID, shipping.CourierGLS, "GLS1234567890", now)
	require.NoError(t, err)
	require.NoError(t, env.AWBs.Create(ctx, awb))
	invoice, err := billing.NewIssuedInvoice(order.ID, alice.ID, billing.ProviderOblio, now.Year(), 1, now)
	require.NoError(t, err)
	require.NoError(t, env.Invoices.Create(ctx, invoice))

	detail, err = svc.Get(ctx, alice.ID, order.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.AWB)
	require.NotNil(t, detail.Invoice)
	assert.Equal(t, "GLS1234567890", detail.AWB.AWBNumber)
	assert.Len(t, detail.AWB.TrackingHistory, 1)
	assert.Equal(t, "OB", detail.Invoice.Series)

	_, err = svc.Get(ctx, bob.ID, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = svc.Get(ctx, alice.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
