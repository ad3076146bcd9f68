package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/integration"
)

// StoreModel is the persistence model for the Store domain entity.
type StoreModel struct {
	BaseModel
	UserID      uuid.UUID               `gorm:"type:uuid;not null;index:idx_stores_user"`
	Name        string                  `gorm:"type:varchar(255);not null"`
	Type        integration.StoreType   `gorm:"type:varchar(20);not null"`
	URL         string                  `gorm:"type:text;not null"`
	APIKey      string                  `gorm:"type:text"`
	APISecret   string                  `gorm:"type:text"`
	AccessToken string                  `gorm:"type:text"`
	Status      integration.StoreStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastSyncAt  *time.Time
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store entity
func (m *StoreModel) ToDomain() *integration.Store {
	return &integration.Store{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Name:       m.Name,
		Type:       m.Type,
		URL:        m.URL,
		Credentials: integration.Credentials{
			APIKey:      m.APIKey,
			APISecret:   m.APISecret,
			AccessToken: m.AccessToken,
		},
		Status:     m.Status,
		LastSyncAt: m.LastSyncAt,
	}
}

// StoreModelFromDomain creates a persistence model from a domain Store entity
func StoreModelFromDomain(s *integration.Store) *StoreModel {
	m := &StoreModel{
		UserID:      s.UserID,
		Name:        s.Name,
		Type:        s.Type,
		URL:         s.URL,
		APIKey:      s.Credentials.APIKey,
		APISecret:   s.Credentials.APISecret,
		AccessToken: s.Credentials.AccessToken,
		Status:      s.Status,
		LastSyncAt:  s.LastSyncAt,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// SyncLogModel is the persistence model for the SyncLog audit entry.
type SyncLogModel struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key"`
	StoreID   *uuid.UUID            `gorm:"type:uuid;index:idx_sync_logs_store_created,priority:1"`
	Entity    string                `gorm:"type:varchar(50);not null"`
	Action    string                `gorm:"type:varchar(50);not null"`
	Status    integration.LogStatus `gorm:"type:varchar(20);not null"`
	Message   string                `gorm:"type:text"`
	CreatedAt time.Time             `gorm:"not null;index:idx_sync_logs_store_created,priority:2"`
}

// TableName returns the table name for GORM
func (SyncLogModel) TableName() string {
	return "sync_logs"
}

// ToDomain converts the persistence model to a domain SyncLog
func (m *SyncLogModel) ToDomain() *integration.SyncLog {
	return &integration.SyncLog{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Entity:    m.Entity,
		Action:    m.Action,
		Status:    m.Status,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

// SyncLogModelFromDomain creates a persistence model from a domain SyncLog
func SyncLogModelFromDomain(l *integration.SyncLog) *SyncLogModel {
	return &SyncLogModel{
		ID:        l.ID,
		StoreID:   l.StoreID,
		Entity:    l.Entity,
		Action:    l.Action,
		Status:    l.Status,
		Message:   l.Message,
		CreatedAt: l.CreatedAt,
	}
}

// AIConfigModel is the persistence model for the AIConfig domain entity.
type AIConfigModel struct {
	BaseModel
	StoreID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ai_configs_store"`
	Enabled        bool      `gorm:"not null;default:false"`
	Provider       string    `gorm:"type:varchar(50);not null;default:'openai'"`
	Model          string    `gorm:"type:varchar(100);not null;default:'gpt-4o'"`
	SettingsJSON   string    `gorm:"type:jsonb;column:settings"`
	LastAnalysisAt *time.Time
}

// TableName returns the table name for GORM
func (AIConfigModel) TableName() string {
	return "ai_configs"
}

// ToDomain converts the persistence model to a domain AIConfig entity
func (m *AIConfigModel) ToDomain() *integration.AIConfig {
	cfg := &integration.AIConfig{
		BaseEntity:     m.BaseModel.ToDomain(),
		StoreID:        m.StoreID,
		Enabled:        m.Enabled,
		Provider:       m.Provider,
		Model:          m.Model,
		Settings:       map[string]any{},
		LastAnalysisAt: m.LastAnalysisAt,
	}
	if m.SettingsJSON != "" {
		var settings map[string]any
		if err := json.Unmarshal([]byte(m.SettingsJSON), &settings); err == nil && settings != nil {
			cfg.Settings = settings
		}
	}
	return cfg
}

// AIConfigModelFromDomain creates a persistence model from a domain AIConfig entity
func AIConfigModelFromDomain(c *integration.AIConfig) (*AIConfigModel, error) {
	settings := c.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	m := &AIConfigModel{
		StoreID:        c.StoreID,
		Enabled:        c.Enabled,
		Provider:       c.Provider,
		Model:          c.Model,
		SettingsJSON:   string(raw),
		LastAnalysisAt: c.LastAnalysisAt,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m, nil
}
