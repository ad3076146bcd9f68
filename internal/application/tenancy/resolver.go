// Package tenancy resolves records on behalf of a user and hides everything
// the user does not own.
//
// Every gate fails with a NOT_FOUND domain error both when the record is
// absent and when it belongs to another user, so callers cannot probe for
// foreign ids.
package tenancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shipping"
	"github.com/shopops/backend/internal/domain/trade"
)

// Not-found messages returned by the gates
const (
	MsgStoreNotFound   = "Magazin negăsit"
	MsgOrderNotFound   = "Comandă negăsită"
	MsgProductNotFound = "Produs negăsit"
	MsgAWBNotFound     = "AWB negăsit"
)

// Resolver gates access to stores and everything hanging off them
type Resolver struct {
	stores   integration.StoreRepository
	orders   trade.OrderRepository
	products catalog.ProductRepository
	awbs     shipping.AWBRepository
}

// NewResolver creates a new ownership resolver
func NewResolver(
	stores integration.StoreRepository,
	orders trade.OrderRepository,
	products catalog.ProductRepository,
	awbs shipping.AWBRepository,
) *Resolver {
	return &Resolver{
		stores:   stores,
		orders:   orders,
		products: products,
		awbs:     awbs,
	}
}

// OwnedStoreIDs returns the ids of every store the user owns
func (r *Resolver) OwnedStoreIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.stores.IDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owned stores: %w", err)
	}
	return ids, nil
}

// OwnsStore reports whether storeID is among the user's stores
func (r *Resolver) OwnsStore(ctx context.Context, userID, storeID uuid.UUID) (bool, error) {
	_, err := r.Store(ctx, userID, storeID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Store returns the store if the user owns it
func (r *Resolver) Store(ctx context.Context, userID, storeID uuid.UUID) (*integration.Store, error) {
	store, err := r.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, notFound(err, MsgStoreNotFound)
	}
	if !store.OwnedBy(userID) {
		return nil, shared.NewNotFoundError(MsgStoreNotFound)
	}
	return store, nil
}

// Order returns the order and its store if the user owns the store
func (r *Resolver) Order(ctx context.Context, userID, orderID uuid.UUID) (*trade.Order, *integration.Store, error) {
	order, err := r.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, notFound(err, MsgOrderNotFound)
	}
	store, err := r.Store(ctx, userID, order.StoreID)
	if err != nil {
		return nil, nil, notFound(err, MsgOrderNotFound)
	}
	return order, store, nil
}

// Product returns the product and its store if the user owns the store
func (r *Resolver) Product(ctx context.Context, userID, productID uuid.UUID) (*catalog.Product, *integration.Store, error) {
	product, err := r.products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, notFound(err, MsgProductNotFound)
	}
	store, err := r.Store(ctx, userID, product.StoreID)
	if err != nil {
		return nil, nil, notFound(err, MsgProductNotFound)
	}
	return product, store, nil
}

// AWB returns the AWB and its order if the user owns the order's store
func (r *Resolver) AWB(ctx context.Context, userID, awbID uuid.UUID) (*shipping.AWB, *trade.Order, error) {
	awb, err := r.awbs.FindByID(ctx, awbID)
	if err != nil {
		return nil, nil, notFound(err, MsgAWBNotFound)
	}
	return r.awbOrder(ctx, userID, awb)
}

// AWBByNumber is AWB keyed by tracking number
func (r *Resolver) AWBByNumber(ctx context.Context, userID uuid.UUID, number string) (*shipping.AWB, *trade.Order, error) {
	awb, err := r.awbs.FindByNumber(ctx, number)
	if err != nil {
		return nil, nil, notFound(err, MsgAWBNotFound)
	}
	return r.awbOrder(ctx, userID, awb)
}

func (r *Resolver) awbOrder(ctx context.Context, userID uuid.UUID, awb *shipping.AWB) (*shipping.AWB, *trade.Order, error) {
	order, _, err := r.Order(ctx, userID, awb.OrderID)
	if err != nil {
		return nil, nil, notFound(err, MsgAWBNotFound)
	}
	return awb, order, nil
}

// notFound rewrites not-found errors with the gate's message and passes
// anything else through
func notFound(err error, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(message)
	}
	return err
}
