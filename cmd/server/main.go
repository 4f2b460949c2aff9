package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/mampirjaya/backoffice/docs"
	catalogapp "github.com/mampirjaya/backoffice/internal/application/catalog"
	partnerapp "github.com/mampirjaya/backoffice/internal/application/partner"
	tradeapp "github.com/mampirjaya/backoffice/internal/application/trade"
	"github.com/mampirjaya/backoffice/internal/infrastructure/cache"
	"github.com/mampirjaya/backoffice/internal/infrastructure/config"
	"github.com/mampirjaya/backoffice/internal/infrastructure/logger"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence"
	"github.com/mampirjaya/backoffice/internal/infrastructure/telemetry"
	"github.com/mampirjaya/backoffice/internal/interfaces/http/handler"
	"github.com/mampirjaya/backoffice/internal/interfaces/http/middleware"
	"github.com/mampirjaya/backoffice/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// lowStockThreshold is the stock level at or below which a product counts as low
const lowStockThreshold = 10

//	@title			Back-office API
//	@version		1.0
//	@description	Sales, purchases, sales orders and stock for a building-materials store.
//	@description	Creating a sale or purchase moves stock and issues a document number atomically.

//	@contact.name	Mampir Jaya
//	@contact.url	https://github.com/mampirjaya/backoffice

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})

	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, telemetry.FromConfig(cfg.Telemetry, version), log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log = tel.Logs.Attach(log, cfg.Telemetry.ServiceName)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting backoffice",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(log),
		persistence.WithSlowQueryThreshold(cfg.Telemetry.DBSlowQueryThresh),
		persistence.WithPlugin(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			DBName:  cfg.Database.DBName,
		})),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	meter := tel.Meter.Meter("backoffice")
	if sqlDB, err := db.DB.DB(); err == nil {
		if err := telemetry.RegisterDBPoolMetrics(meter, func() sql.DBStats { return sqlDB.Stats() }); err != nil {
			log.Warn("Failed to register connection pool metrics", zap.Error(err))
		}
	}

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)

	orderService := tradeapp.NewOrderService(persistence.NewGormTransactionScope(db.DB), log)
	orderService.SetAllocationRetries(cfg.Orders.AllocationRetries)
	if orderMetrics, err := telemetry.NewOrderMetrics(meter, log); err != nil {
		log.Warn("Failed to create order metrics", zap.Error(err))
	} else {
		orderService.SetMetrics(orderMetrics)
	}
	if err := telemetry.RegisterLowStockGauge(meter, productRepo, lowStockThreshold, log); err != nil {
		log.Warn("Failed to register low stock gauge", zap.Error(err))
	}
	orderQueries := tradeapp.NewOrderQueryService(persistence.NewGormDocumentReadModel(db.DB))

	engine, err := newEngine(cfg, log, meter)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	r := router.NewRouter(engine)
	router.RegisterAPI(r, router.Handlers{
		Sales:       handler.NewSaleHandler(orderService, orderQueries),
		Purchases:   handler.NewPurchaseHandler(orderService, orderQueries),
		SalesOrders: handler.NewSalesOrderHandler(orderService, orderQueries),
		Products:    handler.NewProductHandler(catalogapp.NewProductService(productRepo)),
		Partners:    handler.NewPartnerHandler(partnerapp.NewPartnerService(customerRepo, supplierRepo)),
		System:      handler.NewSystemHandler(db, version),
	}, middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  idempotencyStore,
		TTL:    cfg.Orders.IdempotencyTTL,
		Logger: log,
	}))
	r.Setup()

	// Swagger documentation endpoint
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newEngine builds the gin engine with the global middleware chain
func newEngine(cfg *config.Config, log *zap.Logger, meter metric.Meter) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		return nil, err
	}

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

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
		httpMetrics,
		middleware.Profiling(cfg.Telemetry.ProfilingEnabled, "/api/v1/health"),
		middleware.CORSWithConfig(cors),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	return engine, nil
}
