package tenancy_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(env *fixtures.Env) *tenancy.Resolver {
	return tenancy.NewResolver(env.Stores, env.Orders, env.Products, env.AWBs)
}

func assertNotFound(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, message, err.Error())
}

func TestResolver_Store(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	alice, aliceStore := env.Tenant(t, "alice@example.ro", "alice")
	bob, _ := env.Tenant(t, "bob@example.ro", "bob")
	r := newResolver(env)

	store, err := r.Store(ctx, alice.ID, aliceStore.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceStore.ID, store.ID)

	_, err = r.Store(ctx, bob.ID, aliceStore.ID)
	assertNotFound(t, err, tenancy.MsgStoreNotFound)

	_, err = r.Store(ctx, alice.ID, uuid.New())
	assertNotFound(t, err, tenancy.MsgStoreNotFound)

	owns, err := r.OwnsStore(ctx, bob.ID, aliceStore.ID)
	require.NoError(t, err)
	assert.False(t, owns)
}

func TestResolver_OwnedStoreIDs(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	alice, s1 := env.Tenant(t, "alice@example.ro", "one")
	s2 := env.Store(t, alice.ID, "two")
	env.Tenant(t, "bob@example.ro", "bob")

	ids, err := newResolver(env).OwnedStoreIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{s1.ID, s2.ID}, ids)

	ids, err = newResolver(env).OwnedStoreIDs(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestResolver_OrderAndProduct(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	alice, store := env.Tenant(t, "alice@example.ro", "alice")
	bob, _ := env.Tenant(t, "bob@example.ro", "bob")
	order := env.Order(t, store.ID, "ORD-1000", "120.00")
	product := env.Product(t, store.ID, "TPW-001", 4)
	r := newResolver(env)

	got, gotStore, err := r.Order(ctx, alice.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, store.ID, gotStore.ID)

	_, _, err = r.Order(ctx, bob.ID, order.ID)
	assertNotFound(t, err, tenancy.MsgOrderNotFound)
	_, _, err = r.Order(ctx, alice.ID, uuid.New())
	assertNotFound(t, err, tenancy.MsgOrderNotFound)

	p, _, err := r.Product(ctx, alice.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "TPW-001", p.SKU)

	_, _, err = r.Product(ctx, bob.ID, product.ID)
	assertNotFound(t, err, tenancy.MsgProductNotFound)
}

func TestResolver_AWB(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	alice, store := env.Tenant(t, "alice@example.ro", "alice")
	bob, _ := env.Tenant(t, "bob@example.ro", "bob")
	order := env.Order(t, store.ID, "ORD-1000", "120.00")

	awb, err := shipping.NewAWB(order.ID, shipping.CourierSameday, "SD1234567890", time.Now())
	require.NoError(t, err)
	require.NoError(t, env.AWBs.Create(ctx, awb))
	r := newResolver(env)

	got, gotOrder, err := r.AWB(ctx, alice.ID, awb.ID)
	require.NoError(t, err)
	assert.Equal(t, awb.Number, got.Number)
	assert.Equal(t, order.ID, gotOrder.ID)

	got, _, err = r.AWBByNumber(ctx, alice.ID, "SD1234567890")
	require.NoError(t, err)
	assert.Equal(t, awb.ID, got.ID)

	_, _, err = r.AWB(ctx, bob.ID, awb.ID)
	assertNotFound(t, err, tenancy.MsgAWBNotFound)
	_, _, err = r.AWBByNumber(ctx, bob.ID, "SD1234567890")
	assertNotFound(t, err, tenancy.MsgAWBNotFound)
	_, _, err = r.AWBByNumber(ctx, alice.ID, "SD0000000000")
	assertNotFound(t, err, tenancy.MsgAWBNotFound)
}
