package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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
	"github.com/shopops/backend/internal/infrastructure/scheduler"
	"github.com/shopops/backend/internal/interfaces/http/middleware"
	"github.com/shopops/backend/internal/testutil"
	"github.com/shopops/backend/internal/testutil/fixtures"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testApp mounts every handler on a bare engine. The caller is taken from
// the X-Test-User header instead of a session token.
type testApp struct {
	env    *fixtures.Env
	engine *gin.Engine
	jwt    *auth.JWTService
	sched  *scheduler.StoreSyncScheduler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	env := fixtures.NewEnv(t)
	log := zap.NewNop()

	locks := cache.NewInMemoryLockStore()
	t.Cleanup(func() { _ = locks.Close() })

	trail := audit.NewTrail(env.Logs, log)
	resolver := tenancy.NewResolver(env.Stores, env.Orders, env.Products, env.AWBs)
	runner := integration.NewSyncRunner(env.Stores, env.Products, env.Orders, integration.NewDemoFeed(1),
		trail, locks, log)
	sched, err := scheduler.NewStoreSyncScheduler(scheduler.Config{
		Workers:     1,
		QueueSize:   10,
		JobTimeout:  10 * time.Second,
		HistorySize: 10,
	}, runner, log)
	require.NoError(t, err)
	require.NoError(t, sched.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = sched.Stop(ctx)
	})

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-at-least-32-chars",
		Expiration: time.Hour,
		Issuer:     "shopops-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authHandler := NewAuthHandler(identity.NewAuthService(env.Users, jwtService, blacklist, log), config.CookieConfig{})
	storeHandler := NewStoreHandler(integration.NewStoreService(env.Stores, resolver, trail, locks, sched, time.Minute, log))
	productHandler := NewProductHandler(catalog.NewProductService(env.Products, resolver, trail, log))
	orderHandler := NewOrderHandler(trade.NewOrderService(env.Orders, env.AWBs, env.Invoices, resolver))
	shippingHandler := NewShippingHandler(shipping.NewAWBService(env.AWBs, env.Orders, resolver, trail, nil, log))
	invoiceHandler := NewInvoiceHandler(billing.NewInvoiceService(env.Invoices, env.Sequencer, env.Orders, resolver, trail, nil, log))
	insightHandler := NewInsightHandler(
		report.NewDashboardService(resolver, env.Orders, env.Products, env.AWBs, log),
		integration.NewLogService(env.Logs, resolver),
		integration.NewAIConfigService(env.AIConfigs, resolver, trail, log),
	)

	engine := gin.New()
	api := engine.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	session := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Optional:       true,
	})
	authGroup.POST("/logout", session, authHandler.Logout)
	authGroup.GET("/user", session, authHandler.CurrentUser)

	protected := api.Group("", testUser)
	protected.GET("/stores", storeHandler.List)
	protected.POST("/stores", storeHandler.Connect)
	protected.GET("/stores/:id", storeHandler.Get)
	protected.PUT("/stores/:id", storeHandler.Update)
	protected.DELETE("/stores/:id", storeHandler.Delete)
	protected.POST("/stores/:id/sync", storeHandler.Sync)
	protected.GET("/stores/:id/sync/status", storeHandler.SyncStatus)
	protected.GET("/products", productHandler.List)
	protected.PUT("/products/:id/stock", productHandler.SetStock)
	protected.GET("/orders", orderHandler.List)
	protected.GET("/orders/:id", orderHandler.Get)
	protected.POST("/orders/:id/awb", shippingHandler.GenerateAWB)
	protected.POST("/orders/:id/invoice", invoiceHandler.Generate)
	protected.GET("/shipments", shippingHandler.ListShipments)
	protected.GET("/awb/:id/track", shippingHandler.Track)
	protected.POST("/awb/:id/update-status", shippingHandler.UpdateStatus)
	protected.GET("/invoices", invoiceHandler.List)
	protected.GET("/logs", insightHandler.Logs)
	protected.GET("/dashboard/stats", insightHandler.DashboardStats)
	protected.GET("/ai/config/:storeId", insightHandler.GetAIConfig)
	protected.POST("/ai/config/:storeId", insightHandler.SaveAIConfig)

	return &testApp{env: env, engine: engine, jwt: jwtService, sched: sched}
}

const testUserHeader = "X-Test-User"

func testUser(c *gin.Context) {
	if id := c.GetHeader(testUserHeader); id != "" {
		c.Set(middleware.JWTUserIDKey, id)
	}
	c.Next()
}

// as performs a request on behalf of userID
func (a *testApp) as(t *testing.T, userID uuid.UUID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Do(t, a.engine, testutil.Request{
		Method:  method,
		Path:    path,
		Body:    body,
		Headers: map[string]string{testUserHeader: userID.String()},
	})
}

func (a *testApp) anonymous(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Do(t, a.engine, testutil.Request{Method: method, Path: path})
}
