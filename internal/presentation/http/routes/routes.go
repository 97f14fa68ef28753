package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/smartinr/ventapos-api/internal/config"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/presentation/http/handler"
	"github.com/smartinr/ventapos-api/internal/presentation/http/middleware"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Catalog     *handler.CatalogHandler
	Customer    *handler.CustomerHandler
	Pos         *handler.PosHandler
	CashSession *handler.CashSessionHandler
	Sale        *handler.SaleHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rlCfg := middleware.DefaultRateLimiterConfig()
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			rlCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
			rlCfg.BurstSize = deps.Cfg.RateLimit.Requests
		}
		rateLimiter := middleware.NewUserRateLimiter(rlCfg)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google/url", h.Auth.GoogleAuthURL)
		auth.GET("/google/callback", h.Auth.GoogleRedirect)
		auth.POST("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)

	// Catalog
	registerProductRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerCustomerRoutes(protected, h)

	// Point of sale
	registerPosRoutes(protected, h)
	registerOpenTicketRoutes(protected, h)

	// Cash sessions
	registerCashSessionRoutes(protected, h)

	// Sales
	registerSaleRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/barcode/:code", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", h.Catalog.CreateCategory)
		categories.PUT("/:id", h.Catalog.UpdateCategory)
		categories.DELETE("/:id", h.Catalog.DeleteCategory)
	}

	groups := protected.Group("/modifier-groups")
	{
		groups.GET("", h.Catalog.ListModifierGroups)
		groups.POST("", h.Catalog.CreateModifierGroup)
		groups.PUT("/:id", h.Catalog.UpdateModifierGroup)
		groups.DELETE("/:id", h.Catalog.DeleteModifierGroup)
	}

	taxes := protected.Group("/taxes")
	{
		taxes.GET("", h.Catalog.ListTaxRules)
		taxes.POST("", h.Catalog.CreateTaxRule)
		taxes.PUT("/:id", h.Catalog.UpdateTaxRule)
		taxes.DELETE("/:id", h.Catalog.DeleteTaxRule)
	}

	methods := protected.Group("/payment-methods")
	{
		methods.GET("", h.Catalog.ListPaymentMethods)
		methods.POST("", h.Catalog.CreatePaymentMethod)
		methods.PUT("/:id", h.Catalog.UpdatePaymentMethod)
		methods.DELETE("/:id", h.Catalog.DeletePaymentMethod)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerPosRoutes(protected *gin.RouterGroup, h *Handlers) {
	pos := protected.Group("/pos")
	{
		pos.GET("/ticket", h.Pos.GetTicket)
		pos.POST("/ticket/items", h.Pos.AddItem)
		pos.POST("/ticket/items/barcode", h.Pos.AddItemByBarcode)
		pos.PATCH("/ticket/items/:lineId", h.Pos.UpdateQuantity)
		pos.DELETE("/ticket/items/:lineId", h.Pos.RemoveItem)
		pos.POST("/ticket/clear", h.Pos.ClearTicket)
		pos.POST("/ticket/customer", h.Pos.SetCustomer)
		pos.POST("/ticket/suspend", h.Pos.Suspend)
		pos.POST("/ticket/load/:id", h.Pos.LoadSuspended)
		pos.POST("/ticket/split", h.Pos.Split)
		pos.POST("/ticket/merge", h.Pos.Merge)
		pos.POST("/checkout", h.Pos.Checkout)
	}
}

func registerOpenTicketRoutes(protected *gin.RouterGroup, h *Handlers) {
	tickets := protected.Group("/open-tickets")
	{
		tickets.GET("", h.Pos.ListSuspended)
		tickets.DELETE("/:id", h.Pos.DiscardSuspended)
	}
}

func registerCashSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	sessions := protected.Group("/cash-sessions")
	{
		sessions.GET("", h.CashSession.History)
		sessions.GET("/active", h.CashSession.Active)
		sessions.GET("/open", h.CashSession.ListOpen)
		sessions.POST("/open", h.CashSession.Open)
		sessions.POST("/close", h.CashSession.Close)
		sessions.GET("/:id/sales", h.Sale.ListBySession)
		// Closing another cashier's session needs an elevated role
		sessions.POST("/:id/close",
			middleware.RequireRole(entity.RoleOwner, entity.RoleAdmin),
			h.CashSession.CloseByID)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt/:id", h.Printer.PrintReceipt)
		printerGroup.POST("/close-report/:id", h.Printer.PrintCloseReport)
	}
}
