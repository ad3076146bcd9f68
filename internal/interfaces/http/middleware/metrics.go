package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/infrastructure/telemetry"
)

// HTTPMetrics records request count, latency and concurrency per matched
// route. Requests for skipPaths (probes, the scrape endpoint) are not
// counted. A nil recorder yields a pass-through middleware.
func HTTPMetrics(metrics *telemetry.Metrics, skipPaths ...string) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) { c.Next() }
	}

	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		done := metrics.RequestStarted()
		defer done()

		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
