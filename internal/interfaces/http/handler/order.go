package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/application/trade"
)

// OrderListQuery holds the query parameters of GET /orders
type OrderListQuery struct {
	StoreID  string `form:"storeId"`
	Status   string `form:"status" binding:"max=50"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *trade.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *trade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns one page of the caller's orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var q OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleValidation(c, err)
		return
	}
	storeID, ok := h.optionalUUID(c, q.StoreID)
	if !ok {
		return
	}

	page, err := h.orderService.List(c.Request.Context(), userID, trade.OrderListFilter{
		StoreID:  storeID,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns an order with its AWB and invoice
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.orderService.Get(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}
