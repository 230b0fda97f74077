package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	customerapp "github.com/phoneshop/backend/internal/application/customer"
	financeapp "github.com/phoneshop/backend/internal/application/finance"
	inventoryapp "github.com/phoneshop/backend/internal/application/inventory"
	investorapp "github.com/phoneshop/backend/internal/application/investor"
	partnerapp "github.com/phoneshop/backend/internal/application/partner"
	salesapp "github.com/phoneshop/backend/internal/application/sales"
	"github.com/phoneshop/backend/internal/infrastructure/cache"
	"github.com/phoneshop/backend/internal/infrastructure/config"
	"github.com/phoneshop/backend/internal/infrastructure/logger"
	"github.com/phoneshop/backend/internal/infrastructure/persistence"
	"github.com/phoneshop/backend/internal/interfaces/http/handler"
	"github.com/phoneshop/backend/internal/interfaces/http/middleware"
	"github.com/phoneshop/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//	@title			Phone Shop Ledger API
//	@version		1.0
//	@description	Installment sales ledger for a phone shop: inventory, customers, financed sales and partner capital.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting phone shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	phoneRepo := persistence.NewGormPhoneRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	partnerTxRepo := persistence.NewGormPartnerTransactionRepository(db.DB)
	partnerHistoryRepo := persistence.NewGormPartnerHistoryRepository(db.DB)
	investorRepo := persistence.NewGormInvestorRepository(db.DB)
	investorTxRepo := persistence.NewGormInvestorTransactionRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	installmentRepo := persistence.NewGormInstallmentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	txManager := persistence.NewGormTransactionManager(db)

	// Report summaries are cached in Redis when available. The service
	// degrades to recomputing on every request if Redis is down.
	var summaryCache financeapp.SummaryCache
	redisCache, err := cache.NewRedisSummaryCache(cfg.Redis, cache.WithSummaryCacheLogger(log))
	if err != nil {
		log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
	} else {
		summaryCache = redisCache
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	// Initialize application services
	defaultRate := decimal.NewFromFloat(cfg.Ledger.DefaultMonthlyRate)
	phoneService := inventoryapp.NewPhoneService(phoneRepo, saleRepo)
	customerService := customerapp.NewCustomerService(customerRepo, saleRepo)
	partnerService := partnerapp.NewPartnerService(partnerRepo, partnerTxRepo, partnerHistoryRepo, txManager)
	investorService := investorapp.NewInvestorService(investorRepo, investorTxRepo, txManager)
	saleService := salesapp.NewSaleService(
		saleRepo,
		installmentRepo,
		phoneRepo,
		customerRepo,
		partnerRepo,
		partnerHistoryRepo,
		txManager,
		defaultRate,
	)
	expenseService := financeapp.NewExpenseService(expenseRepo)
	reportService := financeapp.NewReportService(reportRepo, expenseRepo, summaryCache, cfg.Ledger.ReportCacheTTL, log)

	// Gin setup
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	middleware.SetupValidator()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware chain: request ID, panic recovery, request logging,
	// security headers, CORS, body size limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db))
	engine.GET("/ready", readyHandler(db))

	// Initialize handlers
	phoneHandler := handler.NewPhoneHandler(phoneService)
	customerHandler := handler.NewCustomerHandler(customerService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	investorHandler := handler.NewInvestorHandler(investorService)
	saleHandler := handler.NewSaleHandler(saleService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler()

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/phones", phoneHandler.Create)
	inventoryRoutes.GET("/phones", phoneHandler.List)
	inventoryRoutes.GET("/phones/:id", phoneHandler.GetByID)
	inventoryRoutes.PUT("/phones/:id", phoneHandler.Update)
	inventoryRoutes.DELETE("/phones/:id", phoneHandler.Delete)

	customerRoutes := router.NewDomainGroup("customer", "/customers")
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.GetByID)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", customerHandler.Delete)

	partnerRoutes := router.NewDomainGroup("partner", "/partners")
	partnerRoutes.POST("", partnerHandler.Create)
	partnerRoutes.GET("", partnerHandler.List)
	partnerRoutes.GET("/:id", partnerHandler.GetByID)
	partnerRoutes.PUT("/:id", partnerHandler.Update)
	partnerRoutes.DELETE("/:id", partnerHandler.Delete)
	partnerRoutes.POST("/:id/balance", partnerHandler.AdjustBalance)
	partnerRoutes.GET("/:id/transactions", partnerHandler.ListTransactions)
	partnerRoutes.GET("/:id/history", partnerHandler.ListHistory)

	partnerTxRoutes := router.NewDomainGroup("partner-transactions", "/partner-transactions")
	partnerTxRoutes.GET("", partnerHandler.ListAllTransactions)
	partnerTxRoutes.POST("/:id/reverse", partnerHandler.ReverseTransaction)

	investorRoutes := router.NewDomainGroup("investor", "/investors")
	investorRoutes.POST("", investorHandler.Create)
	investorRoutes.GET("", investorHandler.List)
	investorRoutes.GET("/:id", investorHandler.GetByID)
	investorRoutes.PUT("/:id", investorHandler.Update)
	investorRoutes.DELETE("/:id", investorHandler.Deactivate)
	investorRoutes.POST("/:id/capital", investorHandler.AdjustCapital)
	investorRoutes.POST("/:id/profit-payment", investorHandler.RecordProfitPayment)
	investorRoutes.GET("/:id/transactions", investorHandler.ListTransactions)

	investorTxRoutes := router.NewDomainGroup("investor-transactions", "/investor-transactions")
	investorTxRoutes.GET("", investorHandler.ListAllTransactions)

	saleRoutes := router.NewDomainGroup("sales", "/sales")
	saleRoutes.POST("", saleHandler.Create)
	saleRoutes.POST("/preview", saleHandler.Preview)
	saleRoutes.GET("", saleHandler.List)
	saleRoutes.GET("/installments", saleHandler.ListAllInstallments)
	saleRoutes.GET("/installments/overdue", saleHandler.ListOverdue)
	saleRoutes.POST("/installments/overdue/sweep", saleHandler.SweepOverdue)
	saleRoutes.GET("/:id", saleHandler.GetByID)
	saleRoutes.GET("/:id/installments", saleHandler.ListInstallments)
	saleRoutes.DELETE("/:id", saleHandler.Delete)
	saleRoutes.POST("/:id/default", saleHandler.MarkDefaulted)
	saleRoutes.POST("/:id/installments/:installment_id/pay", saleHandler.PayInstallment)

	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/expenses", expenseHandler.Create)
	financeRoutes.GET("/expenses", expenseHandler.List)
	financeRoutes.GET("/expenses/:id", expenseHandler.GetByID)
	financeRoutes.PUT("/expenses/:id", expenseHandler.Update)
	financeRoutes.DELETE("/expenses/:id", expenseHandler.Delete)

	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/summary", reportHandler.Summary)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(inventoryRoutes).
		Register(customerRoutes).
		Register(partnerRoutes).
		Register(partnerTxRoutes).
		Register(investorRoutes).
		Register(investorTxRoutes).
		Register(saleRoutes).
		Register(financeRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	r.Setup()

	// Daily sweep flags installments that slipped past their due date plus
	// the configured grace period.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go overdueSweep(sweepCtx, saleService, cfg.Ledger.OverdueGraceDays, log)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// overdueSweep periodically marks pending installments overdue once they are
// past due by more than the grace period.
func overdueSweep(ctx context.Context, saleService *salesapp.SaleService, graceDays int, log *zap.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	run := func() {
		asOf := time.Now().AddDate(0, 0, -graceDays)
		count, err := saleService.MarkOverdueInstallments(ctx, asOf)
		if err != nil {
			log.Error("Overdue sweep failed", zap.Error(err))
			return
		}
		if count > 0 {
			log.Info("Overdue sweep complete", zap.Int64("flagged", count))
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			body["pool"] = stats
		}
		c.JSON(http.StatusOK, body)
	}
}

// readyHandler reports whether the service can take traffic. It only
// checks the database; Redis is optional and never blocks readiness.
func readyHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
