package integration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopspring/decimal"
)

// demoProduct is one row of the fixed demo catalog
type demoProduct struct {
	name   string
	sku    string
	price  string
	stock  int
	status string
}

var demoCatalog = []demoProduct{
	{"Tricou Premium Alb", "TPW-001", "89.99", 150, "publish"},
	{"Bluză Casual Navy", "BCN-002", "149.99", 75, "publish"},
	{"Pantaloni Slim Fit", "PSF-003", "199.99", 45, "publish"},
	{"Jachetă Piele Neagră", "JPN-004", "599.99", 12, "publish"},
	{"Sneakers Urban", "SU-005", "349.99", 8, "publish"},
	{"Geantă Piele", "GP-006", "449.99", 3, "publish"},
	{"Ceas Automatic", "CA-007", "1299.99", 5, "publish"},
	{"Ochelari Soare", "OS-008", "249.99", 0, "draft"},
}

var (
	demoCustomers = []string{"Ion Popescu", "Maria Ionescu", "Andrei Gheorghe", "Elena Radu", "Mihai Dobre"}
	demoStatuses  = []string{"pending", "processing", "completed", "shipped"}
)

const demoOrderCount = 8

// DemoFeed simulates a store platform with a fixed catalog and randomized
// orders. Remote ids are stable, so repeated syncs only insert once.
type DemoFeed struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewDemoFeed creates a demo feed. A zero seed picks a random one.
func NewDemoFeed(seed uint64) *DemoFeed {
	return &DemoFeed{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
}

// Products returns the demo catalog with remote ids scoped to the store platform
func (f *DemoFeed) Products(_ context.Context, store *integration.Store) ([]integration.RemoteProduct, error) {
	products := make([]integration.RemoteProduct, 0, len(demoCatalog))
	for _, p := range demoCatalog {
		products = append(products, integration.RemoteProduct{
			RemoteID:      fmt.Sprintf("%s-%s", store.Type, p.sku),
			Name:          p.name,
			SKU:           p.sku,
			Price:         decimal.RequireFromString(p.price),
			StockQuantity: p.stock,
			Status:        p.status,
			ImageURL:      "/images/products/" + strings.ToLower(p.sku) + ".jpg",
		})
	}
	return products, nil
}

// Orders returns eight orders with randomized status, customer, total and date
func (f *DemoFeed) Orders(_ context.Context, _ *integration.Store) ([]integration.RemoteOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	orders := make([]integration.RemoteOrder, 0, demoOrderCount)
	for i := 0; i < demoOrderCount; i++ {
		customer := f.faker.RandomString(demoCustomers)
		total := decimal.NewFromFloat(f.faker.Float64Range(50, 550)).Round(2)
		age := time.Duration(f.faker.Number(0, int(7*24*time.Hour/time.Second))) * time.Second

		orders = append(orders, integration.RemoteOrder{
			RemoteID:      fmt.Sprintf("ORD-%d", 1000+i),
			OrderNumber:   fmt.Sprintf("#%d", 1000+i),
			Status:        f.faker.RandomString(demoStatuses),
			Total:         total,
			Currency:      "RON",
			CustomerName:  customer,
			CustomerEmail: customerEmail(customer),
			CustomerAddress: integration.RemoteAddress{
				Street:     fmt.Sprintf("Str. Exemplu nr. %d", i+1),
				City:       "București",
				County:     "București",
				PostalCode: fmt.Sprintf("01000%d", i),
				Country:    "România",
			},
			CreatedAt: now.Add(-age),
		})
	}
	return orders, nil
}

// customerEmail derives "ion.popescu@email.com" from "Ion Popescu"
func customerEmail(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@email.com"
}

// Ensure DemoFeed implements CatalogFeed
var _ integration.CatalogFeed = (*DemoFeed)(nil)
