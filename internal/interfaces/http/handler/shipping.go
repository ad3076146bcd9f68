package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/application/shipping"
)

// GenerateAWBRequest is the body of POST /orders/:id/awb
type GenerateAWBRequest struct {
	Courier string `json:"courier" binding:"required,max=50"`
}

// UpdateAWBStatusRequest is the body of POST /awb/:id/update-status
type UpdateAWBStatusRequest struct {
	Status  string `json:"status" binding:"required,max=50"`
	Message string `json:"message" binding:"max=500"`
}

// ShippingHandler handles AWB and shipment endpoints
type ShippingHandler struct {
	BaseHandler
	awbService *shipping.AWBService
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(awbService *shipping.AWBService) *ShippingHandler {
	return &ShippingHandler{awbService: awbService}
}

// GenerateAWB issues the shipping label of an order
func (h *ShippingHandler) GenerateAWB(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req GenerateAWBRequest
	if !h.bindJSON(c, &req) {
		return
	}

	awb, err := h.awbService.Generate(c.Request.Context(), userID, orderID, req.Courier)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, awb)
}

// ListShipments returns the caller's AWBs with their orders
func (h *ShippingHandler) ListShipments(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	shipments, err := h.awbService.ListShipments(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipments)
}

// Track looks an AWB up by its number. The :id segment carries the number
// since it shares the /awb/:id prefix with the status route.
func (h *ShippingHandler) Track(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	shipment, err := h.awbService.Track(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// UpdateStatus appends a tracking event to an AWB
func (h *ShippingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	awbID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateAWBStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	awb, err := h.awbService.UpdateStatus(c.Request.Context(), userID, awbID, req.Status, req.Message)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, awb)
}
