package integration

import (
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoStore(t *testing.T, storeType integration.StoreType) *integration.Store {
	t.Helper()
	store, err := integration.NewStore(uuid.New(), integration.StoreInput{
		Name: "Demo",
		Type: storeType,
		URL:  "https://demo.example.ro",
	})
	require.NoError(t, err)
	return store
}

func TestDemoFeed_Products(t *testing.T) {
	feed := NewDemoFeed(42)
	products, err := feed.Products(context.Background(), demoStore(t, integration.StoreTypeShopify))
	require.NoError(t, err)
	require.Len(t, products, 8)

	first := products[0]
	assert.Equal(t, "shopify-TPW-001", first.RemoteID)
	assert.Equal(t, "Tricou Premium Alb", first.Name)
	assert.True(t, decimal.RequireFromString("89.99").Equal(first.Price))
	assert.Equal(t, 150, first.StockQuantity)

	last := products[7]
	assert.Equal(t, "OS-008", last.SKU)
	assert.Equal(t, "draft", last.Status)
	assert.Equal(t, 0, last.StockQuantity)
}

func TestDemoFeed_Orders(t *testing.T) {
	feed := NewDemoFeed(7)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	feed.now = func() time.Time { return now }

	orders, err := feed.Orders(context.Background(), demoStore(t, integration.StoreTypeWooCommerce))
	require.NoError(t, err)
	require.Len(t, orders, 8)

	emailPattern := regexp.MustCompile(`^[a-z]+\.[a-z]+@email\.com$`)
	for i, o := range orders {
		assert.Equal(t, "ORD-"+strconv.Itoa(1000+i), o.RemoteID)
		assert.Equal(t, "#"+strconv.Itoa(1000+i), o.OrderNumber)
		assert.Contains(t, demoStatuses, o.Status)
		assert.Contains(t, demoCustomers, o.CustomerName)
		assert.Regexp(t, emailPattern, o.CustomerEmail)
		assert.True(t, o.Total.GreaterThanOrEqual(decimal.NewFromInt(50)), o.Total.String())
		assert.True(t, o.Total.LessThanOrEqual(decimal.NewFromInt(550)), o.Total.String())
		assert.Equal(t, "RON", o.Currency)
		assert.Equal(t, "01000"+strconv.Itoa(i), o.CustomerAddress.PostalCode)
		assert.False(t, o.CreatedAt.After(now))
		assert.False(t, o.CreatedAt.Before(now.Add(-7*24*time.Hour)))
	}
}

func TestCustomerEmail(t *testing.T) {
	assert.Equal(t, "andrei.gheorghe@email.com", customerEmail("Andrei Gheorghe"))
}
