package integration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/application/audit"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/domain/integration"
	"github.com/shopops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AIConfigService reads and writes per-store assistant settings
type AIConfigService struct {
	configs  integration.AIConfigRepository
	resolver *tenancy.Resolver
	trail    *audit.Trail
	logger   *zap.Logger
}

// NewAIConfigService creates a new AI config service
func NewAIConfigService(
	configs integration.AIConfigRepository,
	resolver *tenancy.Resolver,
	trail *audit.Trail,
	logger *zap.Logger,
) *AIConfigService {
	return &AIConfigService{
		configs:  configs,
		resolver: resolver,
		trail:    trail,
		logger:   logger,
	}
}

// Get returns the store's config, or nil when none was saved
func (s *AIConfigService) Get(ctx context.Context, userID, storeID uuid.UUID) (*AIConfigResponse, error) {
	if _, err := s.resolver.Store(ctx, userID, storeID); err != nil {
		return nil, err
	}
	cfg, err := s.configs.FindByStoreID(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := ToAIConfigResponse(cfg)
	return &resp, nil
}

// Upsert creates or replaces the store's config
func (s *AIConfigService) Upsert(ctx context.Context, userID, storeID uuid.UUID, input AIConfigInput) (*AIConfigResponse, error) {
	store, err := s.resolver.Store(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configs.FindByStoreID(ctx, store.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cfg = integration.NewAIConfig(store.ID)
	}

	if err := cfg.Apply(integration.AIConfigInput{
		Enabled:  input.Enabled,
		Provider: input.Provider,
		Model:    input.Model,
		Settings: input.Settings,
	}); err != nil {
		return nil, err
	}

	if err := s.configs.Upsert(ctx, cfg); err != nil {
		s.logger.Error("Failed to save AI config", zap.String("store_id", store.ID.String()), zap.Error(err))
		return nil, err
	}

	_ = s.trail.Success(ctx, store.ID, integration.LogEntityAI, integration.LogActionUpdate,
		"Configurație AI actualizată: "+cfg.Provider+"/"+cfg.Model)

	resp := ToAIConfigResponse(cfg)
	return &resp, nil
}
