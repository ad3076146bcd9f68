package trade

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/billing"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/domain/trade"
)

// OrderService is the read side of synchronized orders
type OrderService struct {
	orders   trade.OrderRepository
	awbs     shipping.AWBRepository
	invoices billing.InvoiceRepository
	resolver *tenancy.Resolver
}

// NewOrderService creates a new order service
func NewOrderService(
	orders trade.OrderRepository,
	awbs shipping.AWBRepository,
	invoices billing.InvoiceRepository,
	resolver *tenancy.Resolver,
) *OrderService {
	return &OrderService{
		orders:   orders,
		awbs:     awbs,
		invoices: invoices,
		resolver: resolver,
	}
}

// List returns one page of the user's orders, newest original date first
func (s *OrderService) List(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (shared.Paginated[OrderResponse], error) {
	page := shared.Filter{Page: filter.Page, PageSize: filter.PageSize}.Normalize()

	var storeIDs []uuid.UUID
	if filter.StoreID != nil {
		store, err := s.resolver.Store(ctx, userID, *filter.StoreID)
		if err != nil {
			return shared.Paginated[OrderResponse]{}, err
		}
		storeIDs = []uuid.UUID{store.ID}
	} else {
		ids, err := s.resolver.OwnedStoreIDs(ctx, userID)
		if err != nil {
			return shared.Paginated[OrderResponse]{}, err
		}
		storeIDs = ids
	}

	orders, total, err := s.orders.List(ctx, trade.OrderQuery{
		Filter:   page,
		StoreIDs: storeIDs,
		Status:   strings.TrimSpace(filter.Status),
	})
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	items := make([]OrderResponse, len(orders))
	for i, o := range orders {
		items[i] = ToOrderResponse(o)
	}
	return shared.NewPaginated(items, total, page.Page, page.PageSize), nil
}

// Get returns one order with its AWB and invoice
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDetail, error) {
	order, _, err := s.resolver.Order(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{Order: ToOrderResponse(order)}

	awb, err := s.awbs.FindByOrderID(ctx, order.ID)
	switch {
	case err == nil:
		resp := ToAWBResponse(awb)
		detail.AWB = &resp
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	invoice, err := s.invoices.FindByOrderID(ctx, order.ID)
	switch {
	case err == nil:
		resp := ToInvoiceResponse(invoice)
		detail.Invoice = &resp
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	return detail, nil
}
