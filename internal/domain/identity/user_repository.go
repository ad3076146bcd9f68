package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository persists accounts. Emails are stored normalized and are
// unique; the unique index is the only duplicate check.
type UserRepository interface {
	// Create yields shared.ErrAlreadyExists when the email is taken
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// RecordLogin stamps last_login_at without touching updated_at
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
