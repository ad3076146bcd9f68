package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/infrastructure/config"
	"github.com/shopops/backend/internal/infrastructure/logger"
	"github.com/shopops/backend/internal/infrastructure/telemetry"
	"github.com/shopops/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig selects the global middleware stack
type EngineConfig struct {
	HTTP        config.HTTPConfig
	Production  bool
	Tracing     middleware.TracingConfig
	Metrics     *telemetry.Metrics // nil disables /metrics and request metrics
	MetricsPath string
}

// NewEngine builds a gin engine with the global middleware chain. Order
// matters: the request ID must exist before recovery, tracing and the access
// log read it.
func NewEngine(cfg EngineConfig, log *zap.Logger, health gin.HandlerFunc) (*gin.Engine, error) {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	if cfg.Tracing.Enabled {
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(logger.GinMiddleware(log))
	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	if cfg.Metrics != nil {
		engine.Use(middleware.HTTPMetrics(cfg.Metrics, "/health", metricsPath))
	}

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.Production
	engine.Use(middleware.SecureWithConfig(security))

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(cors))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)))
	}

	engine.GET("/health", health)
	if cfg.Metrics != nil {
		engine.GET(metricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	return engine, nil
}
