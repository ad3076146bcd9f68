package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/application/billing"
)

// GenerateInvoiceRequest is the body of POST /orders/:id/invoice
type GenerateInvoiceRequest struct {
	Provider string `json:"provider" binding:"required,max=50"`
}

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billing.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *billing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate issues the invoice of an order
func (h *InvoiceHandler) Generate(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req GenerateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), userID, orderID, req.Provider)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List returns the caller's invoices with their orders
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}
