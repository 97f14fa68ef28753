package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/smartinr/ventapos-api/internal/application/service"
	"github.com/smartinr/ventapos-api/internal/config"
	"github.com/smartinr/ventapos-api/internal/infrastructure/database"
	"github.com/smartinr/ventapos-api/internal/infrastructure/repository"
	"github.com/smartinr/ventapos-api/internal/presentation/http/handler"
	"github.com/smartinr/ventapos-api/internal/presentation/http/routes"
	"github.com/smartinr/ventapos-api/pkg/oauth"
	"github.com/smartinr/ventapos-api/pkg/printer"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	modifierGroupRepo := repository.NewModifierGroupRepository(db)
	taxRuleRepo := repository.NewTaxRuleRepository(db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	suspendedTicketRepo := repository.NewSuspendedTicketRepository(db)
	cashSessionRepo := repository.NewCashSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, modifierGroupRepo, taxRuleRepo, paymentMethodRepo, customerRepo)
	ticketRegistry := service.NewTicketRegistry()
	posService := service.NewPosService(
		ticketRegistry,
		productRepo,
		taxRuleRepo,
		paymentMethodRepo,
		customerRepo,
		suspendedTicketRepo,
		cashSessionRepo,
		saleRepo,
		cfg.POS.StockEnforced,
	)
	cashSessionService := service.NewCashSessionService(cashSessionRepo)
	saleService := service.NewSaleService(saleRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, cashSessionService, userRepo, cfg)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(catalogService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Customer:    handler.NewCustomerHandler(catalogService),
		Pos:         handler.NewPosHandler(posService),
		CashSession: handler.NewCashSessionHandler(cashSessionService),
		Sale:        handler.NewSaleHandler(saleService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
