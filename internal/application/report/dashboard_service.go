// Package report aggregates the per-user dashboard.
package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// DashboardStats is the aggregate view across every store of a user
type DashboardStats struct {
	TotalRevenue     string `json:"totalRevenue"`
	TotalOrders      int64  `json:"totalOrders"`
	ProductsCount    int64  `json:"productsCount"`
	LowStockCount    int64  `json:"lowStockCount"`
	PendingShipments int64  `json:"pendingShipments"`
	StoresCount      int    `json:"storesCount"`
}

// DashboardService computes dashboard stats on every call
type DashboardService struct {
	resolver *tenancy.Resolver
	orders   trade.OrderRepository
	products catalog.ProductRepository
	awbs     shipping.AWBRepository
	logger   *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	resolver *tenancy.Resolver,
	orders trade.OrderRepository,
	products catalog.ProductRepository,
	awbs shipping.AWBRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		resolver: resolver,
		orders:   orders,
		products: products,
		awbs:     awbs,
		logger:   logger,
	}
}

// Stats aggregates orders, revenue, catalog and shipments of the user's stores
func (s *DashboardService) Stats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	storeIDs, err := s.resolver.OwnedStoreIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals, err := s.orders.Totals(ctx, storeIDs)
	if err != nil {
		s.logger.Error("Failed to aggregate orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	products, err := s.products.CountByStores(ctx, storeIDs)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock(ctx, storeIDs, catalog.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	pending, err := s.awbs.CountByStatus(ctx, storeIDs, shipping.AWBStatusGenerated)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalRevenue:     FormatRevenue(totals),
		TotalOrders:      totals.Count,
		ProductsCount:    products,
		LowStockCount:    lowStock,
		PendingShipments: pending,
		StoresCount:      len(storeIDs),
	}, nil
}

// FormatRevenue renders the revenue with two decimals and the RON suffix
func FormatRevenue(totals trade.OrderTotals) string {
	return totals.Revenue.StringFixed(2) + " RON"
}
