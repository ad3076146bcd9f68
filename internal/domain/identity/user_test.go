package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/shopops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("ion@example.com", "secret1", Profile{FirstName: "Ion", LastName: "Popescu"})

		require.NoError(t, err)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		assert.True(t, strings.HasPrefix(user.PasswordHash, "$2a$12$"))
		assert.Equal(t, "Ion Popescu", user.FullName())
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("normalizes email", func(t *testing.T) {
		user, err := NewUser("  Ion@Example.COM ", "secret1", Profile{})

		require.NoError(t, err)
		assert.Equal(t, "ion@example.com", user.Email)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "secret1", Profile{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_EMAIL", domainErr.Code)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("ion@example.com", "123", Profile{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})

	t.Run("rejects oversized company", func(t *testing.T) {
		_, err := NewUser("ion@example.com", "secret1", Profile{Company: strings.Repeat("x", 201)})

		assert.Error(t, err)
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser("maria@example.com", "parola123", Profile{})
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("parola123"))
	assert.False(t, user.VerifyPassword("parola124"))
	assert.False(t, user.VerifyPassword(""))
}

func TestUser_RecordLogin(t *testing.T) {
	user, err := NewUser("ion@example.com", "secret1", Profile{})
	require.NoError(t, err)
	updated := user.UpdatedAt

	bucharest := time.FixedZone("EET", 2*3600)
	user.RecordLogin(time.Date(2026, 5, 1, 10, 0, 0, 0, bucharest))

	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, time.UTC, user.LastLoginAt.Location())
	assert.Equal(t, 8, user.LastLoginAt.Hour())
	assert.Equal(t, updated, user.UpdatedAt)
}
