package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopops/backend/internal/infrastructure/auth"
	"github.com/shopops/backend/internal/infrastructure/config"
	"github.com/shopops/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Expiration: time.Hour,
		Issuer:     "shopops-test",
	})
}

func newTestToken(t *testing.T, jwtService *auth.JWTService) (*auth.SessionToken, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, "ana@example.ro")
	require.NoError(t, err)
	return token, userID
}

// failingBlacklist simulates an unreachable Redis
type failingBlacklist struct{}

func (failingBlacklist) AddToBlacklist(context.Context, string, time.Duration) error {
	return errors.New("redis down")
}

func (failingBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func newJWTRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetJWTUserID(c)})
	})
	return router
}

func serve(router *gin.Engine, decorate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware_BearerToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, userID := newTestToken(t, jwtService)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService, nil))
	router.GET("/test", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, userID.String(), GetJWTUserID(c))
		c.Status(http.StatusOK)
	})

	rec := serve(router, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token.Token) })
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_SessionCookie(t *testing.T) {
	jwtService := newTestJWTService()
	token, userID := newTestToken(t, jwtService)
	router := newJWTRouter(JWTMiddlewareConfig{JWTService: jwtService})

	rec := serve(router, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: DefaultSessionCookie, Value: token.Token})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService()
	router := newJWTRouter(JWTMiddlewareConfig{JWTService: jwtService})

	tests := []struct {
		name     string
		decorate func(*http.Request)
	}{
		{"missing token", nil},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }},
		{"empty bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.jwt") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.decorate)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), dto.ErrCodeUnauthorized)
		})
	}

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewJWTService(config.JWTConfig{
			Secret:     "another-secret-key-at-least-32-chars",
			Expiration: time.Hour,
		})
		token, _ := newTestToken(t, other)
		rec := serve(router, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token.Token) })
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestJWTAuthMiddleware_Blacklist(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := newTestToken(t, jwtService)
	bearer := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token.Token) }

	t.Run("revoked token is rejected", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), token.JTI, time.Hour))
		router := newJWTRouter(JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: blacklist})

		rec := serve(router, bearer)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), dto.ErrCodeTokenInvalid)
	})

	t.Run("blacklist outage fails open", func(t *testing.T) {
		router := newJWTRouter(JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: failingBlacklist{}})

		rec := serve(router, bearer)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestJWTAuthMiddleware_Optional(t *testing.T) {
	jwtService := newTestJWTService()
	token, userID := newTestToken(t, jwtService)
	blacklist := auth.NewInMemoryTokenBlacklist()
	router := newJWTRouter(JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: blacklist, Optional: true})

	rec := serve(router, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":""}`, rec.Body.String())

	rec = serve(router, func(r *http.Request) { r.Header.Set("Authorization", "Bearer broken") })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":""}`, rec.Body.String())

	rec = serve(router, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token.Token) })
	assert.JSONEq(t, `{"user":"`+userID.String()+`"}`, rec.Body.String())

	require.NoError(t, blacklist.AddToBlacklist(context.Background(), token.JTI, time.Hour))
	rec = serve(router, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token.Token) })
	assert.JSONEq(t, `{"user":""}`, rec.Body.String())
}
