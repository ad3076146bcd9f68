package integration

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopops/backend/internal/domain/shared"
)

// ErrStoreInvalidOwner is returned when a store is created without an owner
var ErrStoreInvalidOwner = errors.New("integration: invalid store owner")

const (
	maxStoreNameLength  = 255
	maxCredentialLength = 512
)

// StoreType represents the e-commerce platform behind a store
type StoreType string

const (
	StoreTypeWooCommerce StoreType = "woocommerce"
	StoreTypeShopify     StoreType = "shopify"
	StoreTypeMagento     StoreType = "magento"
	StoreTypePrestaShop  StoreType = "prestashop"
)

// IsValid returns true if the store type is supported
func (t StoreType) IsValid() bool {
	switch t {
	case StoreTypeWooCommerce, StoreTypeShopify, StoreTypeMagento, StoreTypePrestaShop:
		return true
	}
	return false
}

// String returns the string representation
func (t StoreType) String() string {
	return string(t)
}

// StoreStatus represents the connection status of a store
type StoreStatus string

const (
	StoreStatusActive   StoreStatus = "active"
	StoreStatusInactive StoreStatus = "inactive"
	StoreStatusError    StoreStatus = "error"
)

// IsValid returns true if the status is known
func (s StoreStatus) IsValid() bool {
	switch s {
	case StoreStatusActive, StoreStatusInactive, StoreStatusError:
		return true
	}
	return false
}

// Credentials holds the platform API credentials of a store
type Credentials struct {
	APIKey      string
	APISecret   string
	AccessToken string
}

// Store is a connected online shop. It belongs to exactly one user.
type Store struct {
	shared.BaseEntity
	UserID      uuid.UUID
	Name        string
	Type        StoreType
	URL         string
	Credentials Credentials
	Status      StoreStatus
	LastSyncAt  *time.Time
}

// StoreInput is the data needed to connect a store
type StoreInput struct {
	Name        string
	Type        StoreType
	URL         string
	Credentials Credentials
}

// StoreUpdate carries a partial store update; nil fields are left unchanged
type StoreUpdate struct {
	Name        *string
	Type        *StoreType
	URL         *string
	APIKey      *string
	APISecret   *string
	AccessToken *string
	Status      *StoreStatus
}

// NewStore validates input and creates an active store owned by userID
func NewStore(userID uuid.UUID, input StoreInput) (*Store, error) {
	if userID == uuid.Nil {
		return nil, ErrStoreInvalidOwner
	}

	store := &Store{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Status:     StoreStatusActive,
	}

	name, err := validateStoreName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, invalidStoreType()
	}
	storeURL, err := validateStoreURL(input.URL)
	if err != nil {
		return nil, err
	}
	creds, err := validateCredentials(input.Credentials)
	if err != nil {
		return nil, err
	}

	store.Name = name
	store.Type = input.Type
	store.URL = storeURL
	store.Credentials = creds
	return store, nil
}

// Apply applies a partial update after validating every provided field
func (s *Store) Apply(update StoreUpdate) error {
	next := *s

	if update.Name != nil {
		name, err := validateStoreName(*update.Name)
		if err != nil {
			return err
		}
		next.Name = name
	}
	if update.Type != nil {
		if !update.Type.IsValid() {
			return invalidStoreType()
		}
		next.Type = *update.Type
	}
	if update.URL != nil {
		storeURL, err := validateStoreURL(*update.URL)
		if err != nil {
			return err
		}
		next.URL = storeURL
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return shared.NewValidationError("Status invalid: active, inactive sau error")
		}
		next.Status = *update.Status
	}

	creds := next.Credentials
	if update.APIKey != nil {
		creds.APIKey = *update.APIKey
	}
	if update.APISecret != nil {
		creds.APISecret = *update.APISecret
	}
	if update.AccessToken != nil {
		creds.AccessToken = *update.AccessToken
	}
	creds, err := validateCredentials(creds)
	if err != nil {
		return err
	}
	next.Credentials = creds

	*s = next
	s.Touch()
	return nil
}

// OwnedBy reports whether the store belongs to userID
func (s *Store) OwnedBy(userID uuid.UUID) bool {
	return s.UserID == userID
}

// MarkSynced records a successful sync
func (s *Store) MarkSynced(at time.Time) {
	s.LastSyncAt = &at
	s.Status = StoreStatusActive
	s.Touch()
}

// MarkFailed flags the store after a failed sync. LastSyncAt is left stale.
func (s *Store) MarkFailed() {
	s.Status = StoreStatusError
	s.Touch()
}

func invalidStoreType() error {
	return shared.NewValidationError("Tip magazin invalid: woocommerce, shopify, magento sau prestashop")
}

func validateStoreName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewValidationError("Numele magazinului este obligatoriu")
	}
	if len(name) > maxStoreNameLength {
		return "", shared.NewValidationError("Numele magazinului nu poate depăși 255 de caractere")
	}
	return name, nil
}

func validateStoreURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", shared.NewValidationError("URL invalid: trebuie să înceapă cu http:// sau https://")
	}
	return strings.TrimRight(raw, "/"), nil
}

func validateCredentials(c Credentials) (Credentials, error) {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.APISecret = strings.TrimSpace(c.APISecret)
	c.AccessToken = strings.TrimSpace(c.AccessToken)
	if len(c.APIKey) > maxCredentialLength || len(c.APISecret) > maxCredentialLength || len(c.AccessToken) > maxCredentialLength {
		return c, shared.NewValidationError("Credențialele nu pot depăși 512 caractere")
	}
	return c, nil
}
