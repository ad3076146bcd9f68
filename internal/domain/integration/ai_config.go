package integration

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
)

const (
	DefaultAIProvider = "openai"
	DefaultAIModel    = "gpt-4o"
)

// AIConfig holds the assistant settings of one store
type AIConfig struct {
	shared.BaseEntity
	StoreID        uuid.UUID
	Enabled        bool
	Provider       string
	Model          string
	Settings       map[string]any
	LastAnalysisAt *time.Time
}

// AIConfigInput is the data accepted by an upsert
type AIConfigInput struct {
	Enabled  bool
	Provider string
	Model    string
	Settings map[string]any
}

// NewAIConfig creates a disabled configuration with the default provider and model
func NewAIConfig(storeID uuid.UUID) *AIConfig {
	return &AIConfig{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		Provider:   DefaultAIProvider,
		Model:      DefaultAIModel,
		Settings:   map[string]any{},
	}
}

// Apply overwrites the configuration with input. Settings are kept when input omits them.
func (c *AIConfig) Apply(input AIConfigInput) error {
	provider := strings.TrimSpace(input.Provider)
	model := strings.TrimSpace(input.Model)
	if provider == "" || len(provider) > 50 {
		return shared.NewValidationError("Provider AI invalid")
	}
	if model == "" || len(model) > 100 {
		return shared.NewValidationError("Model AI invalid")
	}
	c.Enabled = input.Enabled
	c.Provider = provider
	c.Model = model
	if input.Settings != nil {
		c.Settings = input.Settings
	}
	c.Touch()
	return nil
}
