package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/application/integration"
)

// ConnectStoreRequest is the body of POST /stores
type ConnectStoreRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"omitempty,max=50"`
	URL         string `json:"url" binding:"required,url,max=500"`
	APIKey      string `json:"apiKey"`
	APISecret   string `json:"apiSecret"`
	AccessToken string `json:"accessToken"`
}

// UpdateStoreRequest is the body of PUT /stores/:id. Omitted fields stay unchanged.
type UpdateStoreRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type" binding:"omitempty,max=50"`
	URL         *string `json:"url" binding:"omitempty,url,max=500"`
	APIKey      *string `json:"apiKey"`
	APISecret   *string `json:"apiSecret"`
	AccessToken *string `json:"accessToken"`
	Status      *string `json:"status" binding:"omitempty,max=50"`
}

// StoreHandler handles store connection and sync endpoints
type StoreHandler struct {
	BaseHandler
	storeService *integration.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *integration.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// List returns the caller's stores
func (h *StoreHandler) List(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	stores, err := h.storeService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stores)
}

// Get returns one owned store
func (h *StoreHandler) Get(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.Get(c.Request.Context(), userID, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Connect registers a new store for the caller
func (h *StoreHandler) Connect(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req ConnectStoreRequest
	if !h.bindJSON(c, &req) {
		return
	}

	store, err := h.storeService.Connect(c.Request.Context(), userID, integration.ConnectStoreInput{
		Name:        req.Name,
		Type:        req.Type,
		URL:         req.URL,
		APIKey:      req.APIKey,
		APISecret:   req.APISecret,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, store)
}

// Update applies a partial update to an owned store
func (h *StoreHandler) Update(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateStoreRequest
	if !h.bindJSON(c, &req) {
		return
	}

	store, err := h.storeService.Update(c.Request.Context(), userID, storeID, integration.UpdateStoreInput{
		Name:        req.Name,
		Type:        req.Type,
		URL:         req.URL,
		APIKey:      req.APIKey,
		APISecret:   req.APISecret,
		AccessToken: req.AccessToken,
		Status:      req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Delete removes an owned store together with its products, orders and logs
func (h *StoreHandler) Delete(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.storeService.Delete(c.Request.Context(), userID, storeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sync queues a background sync and returns immediately
func (h *StoreHandler) Sync(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	started, err := h.storeService.Sync(c.Request.Context(), userID, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, started)
}

// SyncStatus returns the latest sync job of the store, or null
func (h *StoreHandler) SyncStatus(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	job, err := h.storeService.SyncStatus(c.Request.Context(), userID, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if job == nil {
		h.Success(c, nil)
		return
	}
	h.Success(c, job)
}
