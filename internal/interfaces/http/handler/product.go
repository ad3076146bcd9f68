package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/catalog"
)

// ProductListQuery holds the query parameters of GET /products
type ProductListQuery struct {
	StoreID  string `form:"storeId"`
	Search   string `form:"search" binding:"max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// SetStockRequest is the body of PUT /products/:id/stock
type SetStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns one page of the caller's products
func (h *ProductHandler) List(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var q ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleValidation(c, err)
		return
	}
	storeID, ok := h.optionalUUID(c, q.StoreID)
	if !ok {
		return
	}

	page, err := h.productService.List(c.Request.Context(), userID, catalog.ProductListFilter{
		StoreID:  storeID,
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// SetStock overwrites the stock quantity of an owned product
func (h *ProductHandler) SetStock(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req SetStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.SetStock(c.Request.Context(), userID, productID, *req.Stock)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// optionalUUID parses an optional ID filter; an empty value means no filter
func (h *BaseHandler) optionalUUID(c *gin.Context, raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, msgInvalidID)
		return nil, false
	}
	return &id, true
}
