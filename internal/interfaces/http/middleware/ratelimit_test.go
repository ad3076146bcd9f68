package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenLimiter(rps float64, burst int) (*RateLimiter, *time.Time) {
	limiter := NewRateLimiter(rps, burst)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows burst then blocks", func(t *testing.T) {
		limiter, _ := frozenLimiter(1, 3)

		for i := 0; i < 3; i++ {
			ok, _ := limiter.Allow("client")
			assert.True(t, ok, "request %d should be allowed", i+1)
		}
		ok, remaining := limiter.Allow("client")
		assert.False(t, ok)
		assert.Zero(t, remaining)
	})

	t.Run("separate buckets per client", func(t *testing.T) {
		limiter, _ := frozenLimiter(1, 1)

		ok, _ := limiter.Allow("a")
		assert.True(t, ok)
		ok, _ = limiter.Allow("a")
		assert.False(t, ok)

		ok, _ = limiter.Allow("b")
		assert.True(t, ok)
	})

	t.Run("refills over time", func(t *testing.T) {
		limiter, now := frozenLimiter(2, 1)

		ok, _ := limiter.Allow("c")
		assert.True(t, ok)
		ok, _ = limiter.Allow("c")
		assert.False(t, ok)

		*now = now.Add(time.Second)
		ok, _ = limiter.Allow("c")
		assert.True(t, ok)
	})

	t.Run("evicts idle clients", func(t *testing.T) {
		limiter, now := frozenLimiter(1, 1)
		limiter.Allow("old")
		*now = now.Add(limiter.idleTTL + time.Minute)
		limiter.Allow("new")

		assert.Equal(t, 1, limiter.Size())
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		limiter, _ := frozenLimiter(1, 100)
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := limiter.Allow("shared"); ok {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, _ := frozenLimiter(1, 2)

	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/api/orders", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	w := do()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	w = do()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeRateLimited, resp.Error.Code)
}
