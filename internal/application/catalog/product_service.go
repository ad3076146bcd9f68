package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/audit"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/catalog"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService lists products and edits their stock
type ProductService struct {
	products catalog.ProductRepository
	resolver *tenancy.Resolver
	trail    *audit.Trail
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	products catalog.ProductRepository,
	resolver *tenancy.Resolver,
	trail *audit.Trail,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products: products,
		resolver: resolver,
		trail:    trail,
		logger:   logger,
	}
}

// List returns one page of the user's products, newest first.
// A store filter naming a store the user does not own yields NOT_FOUND.
func (s *ProductService) List(ctx context.Context, userID uuid.UUID, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	page := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, Search: filter.Search}.Normalize()

	storeIDs, err := scope(ctx, s.resolver, userID, filter.StoreID)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	products, total, err := s.products.List(ctx, catalog.ProductQuery{Filter: page, StoreIDs: storeIDs})
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = ToProductResponse(p)
	}
	return shared.NewPaginated(items, total, page.Page, page.PageSize), nil
}

// SetStock replaces a product's stock quantity. Negative quantities are rejected.
func (s *ProductService) SetStock(ctx context.Context, userID, productID uuid.UUID, quantity int) (*ProductResponse, error) {
	if err := catalog.ValidateStock(quantity); err != nil {
		return nil, err
	}

	product, store, err := s.resolver.Product(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.SetStock(quantity); err != nil {
		return nil, err
	}

	if err := s.products.UpdateStock(ctx, product.ID, quantity); err != nil {
		s.logger.Error("Failed to update stock", zap.String("product_id", product.ID.String()), zap.Error(err))
		return nil, err
	}

	_ = s.trail.Success(ctx, store.ID, integration.LogEntityStock, integration.LogActionUpdate,
		fmt.Sprintf("Stoc actualizat pentru %s: %d", product.SKU, quantity))

	resp := ToProductResponse(product)
	return &resp, nil
}

// scope returns the store ids a listing may read
func scope(ctx context.Context, resolver *tenancy.Resolver, userID uuid.UUID, storeID *uuid.UUID) ([]uuid.UUID, error) {
	if storeID == nil {
		return resolver.OwnedStoreIDs(ctx, userID)
	}
	store, err := resolver.Store(ctx, userID, *storeID)
	if err != nil {
		return nil, err
	}
	return []uuid.UUID{store.ID}, nil
}
