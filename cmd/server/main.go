package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"proforma-backend/internal/auth"
	"proforma-backend/internal/cache"
	"proforma-backend/internal/config"
	"proforma-backend/internal/database"
	"proforma-backend/internal/db"
	"proforma-backend/internal/email"
	"proforma-backend/internal/handlers"
	"proforma-backend/internal/health"
	h "proforma-backend/internal/http"
	"proforma-backend/internal/middleware"
	"proforma-backend/internal/monitoring"
	"proforma-backend/internal/repositories"
	"proforma-backend/internal/services"
	"proforma-backend/internal/storage"
	"proforma-backend/migrations"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	pool := db.Connect(cfg)
	defer pool.Close()

	// Run database migrations
	migrator := database.NewMigratorWithFS(pool, migrations.FS)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - degrades gracefully)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable, continuing without caching: %v", err)
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	companyRepo := repositories.NewCompanyRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	quotationRepo := repositories.NewQuotationRepository(pool)

	// Use SMTP for production, fallback to mock delivery if no host configured
	var emailProvider email.EmailProvider
	if cfg.SMTP.Host != "" {
		log.Println("Using SMTP for quotation delivery")
		emailProvider = email.NewSMTPEmailService(cfg)
	} else {
		log.Println("WARNING: SMTP host not set, using mock email (messages will only print to logs)")
		emailProvider = email.NewMockEmailService()
	}

	// PDF archive bucket is optional as well
	archiver := storage.NewPdfArchiver(cfg)
	if archiver.Enabled() {
		log.Println("[Storage] PDF archive bucket enabled")
	}

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	companyService := services.NewCompanyService(companyRepo)
	customerService := services.NewCustomerService(customerRepo)
	productService := services.NewProductService(productRepo)
	quotationService := services.NewQuotationService(quotationRepo, emailProvider)
	pdfService := services.NewPdfService(quotationRepo, archiver, cfg.Storage.PdfDir)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	quotationHandler := handlers.NewQuotationHandler(quotationService, pdfService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(authHandler, userHandler, companyHandler, customerHandler, productHandler, quotationHandler, healthHandler, authMiddleware)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start the monitoring dashboard on its own port
	monitoringServer := monitoring.NewMonitoringServer(pool, cfg.Monitoring.Port)
	go monitoringServer.Start()

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
