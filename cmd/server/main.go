package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopops/backend/internal/application/audit"
	"github.com/shopops/backend/internal/application/billing"
	"github.com/shopops/backend/internal/application/catalog"
	"github.com/shopops/backend/internal/application/identity"
	"github.com/shopops/backend/internal/application/integration"
	"github.com/shopops/backend/internal/application/report"
	"github.com/shopops/backend/internal/application/shipping"
	"github.com/shopops/backend/internal/application/tenancy"
	"github.com/shopops/backend/internal/application/trade"
	"github.com/shopops/backend/internal/infrastructure/auth"
	"github.com/shopops/backend/internal/infrastructure/cache"
	"github.com/shopops/backend/internal/infrastructure/config"
	"github.com/shopops/backend/internal/infrastructure/logger"
	"github.com/shopops/backend/internal/infrastructure/persistence"
	"github.com/shopops/backend/internal/infrastructure/scheduler"
	"github.com/shopops/backend/internal/infrastructure/telemetry"
	"github.com/shopops/backend/internal/interfaces/http/handler"
	"github.com/shopops/backend/internal/interfaces/http/middleware"
	"github.com/shopops/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cfg.Log.Output,
		Service:  cfg.App.Name,
		Version:  version,
		Sampling: cfg.App.IsProduction(),
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ShopOps backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log,
		telemetry.WithServiceVersion(version),
		telemetry.WithEnvironment(cfg.App.Env))
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold),
		logger.WithParameterizedQueries(cfg.App.IsProduction()))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", db.Driver()))

	dbSystem := "postgresql"
	if db.Driver() == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Database.SlowThreshold,
		DBSystem:        dbSystem,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	cacheFactory := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	)
	redisClient, err := cacheFactory.Connect(ctx)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	locks := cacheFactory.CreateLockStore(redisClient)
	blacklist := newTokenBlacklist(redisClient)

	// Recorders stay untyped nil when metrics are off
	var (
		metrics        *telemetry.Metrics
		ingestRecorder integration.IngestRecorder
		awbRecorder    shipping.GenerationRecorder
		issueRecorder  billing.IssueRecorder
		schedOpts      []scheduler.Option
	)
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics(cfg.Metrics.Namespace)
		ingestRecorder = metrics
		awbRecorder = metrics
		issueRecorder = metrics
		schedOpts = append(schedOpts, scheduler.WithObserver(metrics))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	awbRepo := persistence.NewGormAWBRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	sequencer := persistence.NewGormInvoiceSequencer(db.DB)
	logRepo := persistence.NewGormSyncLogRepository(db.DB)
	aiConfigRepo := persistence.NewGormAIConfigRepository(db.DB)

	trail := audit.NewTrail(logRepo, log)
	resolver := tenancy.NewResolver(storeRepo, orderRepo, productRepo, awbRepo)

	runnerOpts := []integration.SyncRunnerOption{integration.WithSimulatedDelay(cfg.Sync.SimulatedDelay)}
	if ingestRecorder != nil {
		runnerOpts = append(runnerOpts, integration.WithIngestRecorder(ingestRecorder))
	}
	runner := integration.NewSyncRunner(storeRepo, productRepo, orderRepo, integration.NewDemoFeed(0),
		trail, locks, log, runnerOpts...)

	syncScheduler, err := scheduler.NewStoreSyncScheduler(scheduler.Config{
		Workers:     cfg.Sync.Workers,
		QueueSize:   cfg.Sync.QueueSize,
		JobTimeout:  cfg.Sync.JobTimeout,
		HistorySize: cfg.Sync.HistorySize,
	}, runner, log, schedOpts...)
	if err != nil {
		log.Fatal("Failed to create sync scheduler", zap.Error(err))
	}
	if err := syncScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start sync scheduler", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(identity.NewAuthService(userRepo, jwtService, blacklist, log), cfg.Cookie),
		Store: handler.NewStoreHandler(integration.NewStoreService(storeRepo, resolver, trail, locks,
			syncScheduler, cfg.Sync.LockTTL(), log)),
		Product:  handler.NewProductHandler(catalog.NewProductService(productRepo, resolver, trail, log)),
		Order:    handler.NewOrderHandler(trade.NewOrderService(orderRepo, awbRepo, invoiceRepo, resolver)),
		Shipping: handler.NewShippingHandler(shipping.NewAWBService(awbRepo, orderRepo, resolver, trail, awbRecorder, log)),
		Invoice: handler.NewInvoiceHandler(billing.NewInvoiceService(invoiceRepo, sequencer, orderRepo, resolver,
			trail, issueRecorder, log)),
		Insight: handler.NewInsightHandler(
			report.NewDashboardService(resolver, orderRepo, productRepo, awbRepo, log),
			integration.NewLogService(logRepo, resolver),
			integration.NewAIConfigService(aiConfigRepo, resolver, trail, log),
		),
		System: handler.NewSystemHandler(cfg.App.Name, version, db),
	}

	middleware.SetupValidator()

	tracing := middleware.DefaultTracingConfig()
	tracing.Enabled = cfg.Telemetry.Enabled
	if cfg.Telemetry.ServiceName != "" {
		tracing.ServiceName = cfg.Telemetry.ServiceName
	}
	tracing.SkipPaths = []string{"/health", cfg.Metrics.Path}

	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:        cfg.HTTP,
		Production:  cfg.App.IsProduction(),
		Tracing:     tracing,
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
	}, log, handlers.System.Health)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	r := router.NewRouter(engine)
	router.RegisterAPI(r, handlers, router.Session{
		Required: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			CookieName:     cfg.Cookie.Name,
			Logger:         log,
		}),
		Optional: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			CookieName:     cfg.Cookie.Name,
			Optional:       true,
			Logger:         log,
		}),
	})
	if err := r.Setup(); err != nil {
		log.Fatal("Invalid route table", zap.Error(err))
	}
	log.Debug("Routes mounted", zap.Int("count", len(r.Routes())))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = shutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := syncScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Sync scheduler did not stop cleanly", zap.Error(err))
	}
	if err := locks.Close(); err != nil {
		log.Error("Error closing lock store", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer", zap.Error(err))
	}

	log.Info("Server exited")
}

func newTokenBlacklist(client *redis.Client) auth.TokenBlacklist {
	if client != nil {
		return auth.NewRedisTokenBlacklist(client, auth.DefaultRevokedKeyPrefix)
	}
	return auth.NewInMemoryTokenBlacklist()
}
