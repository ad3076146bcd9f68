package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/interfaces/http/handler"
)

// Handlers holds every HTTP handler mounted under the API prefix
type Handlers struct {
	Auth     *handler.AuthHandler
	Store    *handler.StoreHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Shipping *handler.ShippingHandler
	Invoice  *handler.InvoiceHandler
	Insight  *handler.InsightHandler
	System   *handler.SystemHandler
}

// Session holds the two flavours of session middleware: Required rejects
// anonymous requests with 401, Optional lets them through unauthenticated.
type Session struct {
	Required gin.HandlerFunc
	Optional gin.HandlerFunc
}

// RegisterAPI registers every domain group on r
func RegisterAPI(r *Router, h Handlers, session Session) {
	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", h.Auth.Register)
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/logout", session.Optional, h.Auth.Logout)
	authRoutes.GET("/user", session.Optional, h.Auth.CurrentUser)

	storeRoutes := NewDomainGroup("stores", "/stores").Use(session.Required)
	storeRoutes.GET("", h.Store.List)
	storeRoutes.POST("", h.Store.Connect)
	storeRoutes.GET("/:id", h.Store.Get)
	storeRoutes.PUT("/:id", h.Store.Update)
	storeRoutes.DELETE("/:id", h.Store.Delete)
	storeRoutes.POST("/:id/sync", h.Store.Sync)
	storeRoutes.GET("/:id/sync/status", h.Store.SyncStatus)

	productRoutes := NewDomainGroup("products", "/products").Use(session.Required)
	productRoutes.GET("", h.Product.List)
	productRoutes.PUT("/:id/stock", h.Product.SetStock)

	orderRoutes := NewDomainGroup("orders", "/orders").Use(session.Required)
	orderRoutes.GET("", h.Order.List)
	orderRoutes.GET("/:id", h.Order.Get)
	orderRoutes.POST("/:id/awb", h.Shipping.GenerateAWB)
	orderRoutes.POST("/:id/invoice", h.Invoice.Generate)

	shipmentRoutes := NewDomainGroup("shipments", "/shipments").Use(session.Required)
	shipmentRoutes.GET("", h.Shipping.ListShipments)

	awbRoutes := NewDomainGroup("awb", "/awb").Use(session.Required)
	awbRoutes.GET("/:id/track", h.Shipping.Track)
	awbRoutes.POST("/:id/update-status", h.Shipping.UpdateStatus)

	invoiceRoutes := NewDomainGroup("invoices", "/invoices").Use(session.Required)
	invoiceRoutes.GET("", h.Invoice.List)

	insightRoutes := NewDomainGroup("insight", "").Use(session.Required)
	insightRoutes.GET("/dashboard/stats", h.Insight.DashboardStats)
	insightRoutes.GET("/logs", h.Insight.Logs)
	insightRoutes.GET("/ai/config/:storeId", h.Insight.GetAIConfig)
	insightRoutes.POST("/ai/config/:storeId", h.Insight.SaveAIConfig)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.GetSystemInfo)
	systemRoutes.GET("/ping", h.System.Ping)

	r.Register(authRoutes).
		Register(storeRoutes).
		Register(productRoutes).
		Register(orderRoutes).
		Register(shipmentRoutes).
		Register(awbRoutes).
		Register(invoiceRoutes).
		Register(insightRoutes).
		Register(systemRoutes)
}
