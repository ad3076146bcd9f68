package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/application/integration"
	"github.com/shopops/backend/internal/application/report"
)

// LogQuery holds the query parameters of GET /logs
type LogQuery struct {
	StoreID string `form:"storeId"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// AIConfigRequest is the body of POST /ai/config/:storeId
type AIConfigRequest struct {
	Enabled  bool           `json:"enabled"`
	Provider string         `json:"provider" binding:"max=50"`
	Model    string         `json:"model" binding:"max=100"`
	Settings map[string]any `json:"settings"`
}

// InsightHandler serves the dashboard, the activity log and AI settings
type InsightHandler struct {
	BaseHandler
	dashboard *report.DashboardService
	logs      *integration.LogService
	aiConfigs *integration.AIConfigService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(
	dashboard *report.DashboardService,
	logs *integration.LogService,
	aiConfigs *integration.AIConfigService,
) *InsightHandler {
	return &InsightHandler{
		dashboard: dashboard,
		logs:      logs,
		aiConfigs: aiConfigs,
	}
}

// DashboardStats returns aggregates over the caller's stores
func (h *InsightHandler) DashboardStats(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	stats, err := h.dashboard.Stats(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Logs returns the caller's activity log, newest first
func (h *InsightHandler) Logs(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var q LogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleValidation(c, err)
		return
	}
	storeID, ok := h.optionalUUID(c, q.StoreID)
	if !ok {
		return
	}

	logs, err := h.logs.List(c.Request.Context(), userID, integration.LogFilter{StoreID: storeID, Limit: q.Limit})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}

// GetAIConfig returns the store's AI settings, or null when none were saved
func (h *InsightHandler) GetAIConfig(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.pathUUID(c, "storeId")
	if !ok {
		return
	}

	cfg, err := h.aiConfigs.Get(c.Request.Context(), userID, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if cfg == nil {
		h.Success(c, nil)
		return
	}
	h.Success(c, cfg)
}

// SaveAIConfig creates or replaces the store's AI settings
func (h *InsightHandler) SaveAIConfig(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.pathUUID(c, "storeId")
	if !ok {
		return
	}
	var req AIConfigRequest
	if !h.bindJSON(c, &req) {
		return
	}

	cfg, err := h.aiConfigs.Upsert(c.Request.Context(), userID, storeID, integration.AIConfigInput{
		Enabled:  req.Enabled,
		Provider: req.Provider,
		Model:    req.Model,
		Settings: req.Settings,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}
