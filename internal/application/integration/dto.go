package integration

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/integration"
)

// ConnectStoreInput contains the input for connecting a store
type ConnectStoreInput struct {
	Name        string
	Type        string
	URL         string
	APIKey      string
	APISecret   string
	AccessToken string
}

// UpdateStoreInput carries a partial store update; nil fields are left unchanged
type UpdateStoreInput struct {
	Name        *string
	Type        *string
	URL         *string
	APIKey      *string
	APISecret   *string
	AccessToken *string
	Status      *string
}

// StoreResponse is the client view of a store. Credentials are reduced to presence flags.
type StoreResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"userId"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	URL            string     `json:"url"`
	Status         string     `json:"status"`
	HasAPIKey      bool       `json:"hasApiKey"`
	HasAPISecret   bool       `json:"hasApiSecret"`
	HasAccessToken bool       `json:"hasAccessToken"`
	LastSyncAt     *time.Time `json:"lastSyncAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// SyncStarted is returned when a sync job has been queued
type SyncStarted struct {
	Message string    `json:"message"`
	JobID   uuid.UUID `json:"jobId"`
}

// LogResponse is the client view of a sync log entry
type LogResponse struct {
	ID        uuid.UUID  `json:"id"`
	StoreID   *uuid.UUID `json:"storeId"`
	Entity    string     `json:"entity"`
	Action    string     `json:"action"`
	Status    string     `json:"status"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}

// LogFilter scopes a log listing
type LogFilter struct {
	StoreID *uuid.UUID
	Limit   int
}

// AIConfigInput contains the input for an AI config upsert
type AIConfigInput struct {
	Enabled  bool
	Provider string
	Model    string
	Settings map[string]any
}

// AIConfigResponse is the client view of an AI config
type AIConfigResponse struct {
	ID             uuid.UUID      `json:"id"`
	StoreID        uuid.UUID      `json:"storeId"`
	Enabled        bool           `json:"enabled"`
	Provider       string         `json:"provider"`
	Model          string         `json:"model"`
	Settings       map[string]any `json:"settings"`
	LastAnalysisAt *time.Time     `json:"lastAnalysisAt"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// ToStoreResponse converts a domain store to its client view
func ToStoreResponse(s *integration.Store) StoreResponse {
	return StoreResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		Name:           s.Name,
		Type:           s.Type.String(),
		URL:            s.URL,
		Status:         string(s.Status),
		HasAPIKey:      s.Credentials.APIKey != "",
		HasAPISecret:   s.Credentials.APISecret != "",
		HasAccessToken: s.Credentials.AccessToken != "",
		LastSyncAt:     s.LastSyncAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ToStoreResponses converts a slice of domain stores
func ToStoreResponses(stores []*integration.Store) []StoreResponse {
	out := make([]StoreResponse, len(stores))
	for i, s := range stores {
		out[i] = ToStoreResponse(s)
	}
	return out
}

// ToLogResponse converts a domain log entry to its client view
func ToLogResponse(l *integration.SyncLog) LogResponse {
	return LogResponse{
		ID:        l.ID,
		StoreID:   l.StoreID,
		Entity:    l.Entity,
		Action:    l.Action,
		Status:    string(l.Status),
		Message:   l.Message,
		CreatedAt: l.CreatedAt,
	}
}

// ToAIConfigResponse converts a domain AI config to its client view
func ToAIConfigResponse(c *integration.AIConfig) AIConfigResponse {
	settings := c.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	return AIConfigResponse{
		ID:             c.ID,
		StoreID:        c.StoreID,
		Enabled:        c.Enabled,
		Provider:       c.Provider,
		Model:          c.Model,
		Settings:       settings,
		LastAnalysisAt: c.LastAnalysisAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
