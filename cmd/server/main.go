package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/nasmila140/property-lease-management-system/internal/application/identity"
	ledgerapp "github.com/nasmila140/property-lease-management-system/internal/application/ledger"
	propertyapp "github.com/nasmila140/property-lease-management-system/internal/application/property"
	tenantapp "github.com/nasmila140/property-lease-management-system/internal/application/tenant"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/auth"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/cache"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/config"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/event"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/logger"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/persistence"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/scheduler"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/telemetry"
	"github.com/nasmila140/property-lease-management-system/internal/interfaces/http/handler"
	"github.com/nasmila140/property-lease-management-system/internal/interfaces/http/middleware"
	"github.com/nasmila140/property-lease-management-system/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.NewFromAppConfig(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Property Lease Ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry providers. With telemetry disabled these are no-ops.
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.TracingConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database connection with the zap-backed gorm logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Repositories
	billRepo := persistence.NewGormBillingPeriodRepository(db.DB)
	paymentRepo := persistence.NewGormPropertyPaymentRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	activityRepo := persistence.NewGormLoginActivityRepository(db.DB)

	// Token blacklist: Redis when reachable, in-memory fallback otherwise.
	// The in-memory store loses revocations on restart.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled", zap.String("host", cfg.Redis.Host))
	}

	// Dashboard summary cache: same Redis-or-memory split as the blacklist
	var summaryCache cache.Store
	redisCache, err := cache.NewRedisStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory summary cache", zap.Error(err))
		summaryCache = cache.NewInMemoryStore()
	} else {
		summaryCache = redisCache
	}
	defer func() {
		if err := summaryCache.Close(); err != nil {
			log.Warn("Summary cache close error", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, activityRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	billingService := ledgerapp.NewBillingService(billRepo)
	dashboardService := ledgerapp.NewDashboardService(billRepo, paymentRepo, tenantRepo, propertyRepo)
	dashboardService.SetSummaryCache(summaryCache, 30*time.Second)
	tenantService := tenantapp.NewService(tenantRepo)
	propertyService := propertyapp.NewService(propertyRepo)

	// Domain event bus
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(ledgerapp.NewLedgerActivityHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Warn("Event bus shutdown error", zap.Error(err))
		}
	}()
	billingService.SetEventPublisher(eventBus)
	dashboardService.SetEventPublisher(eventBus)

	// Background overdue sweep
	sweeper := scheduler.NewOverdueSweeper(scheduler.OverdueSweepConfig{
		Enabled:       cfg.Scheduler.OverdueSweepEnabled,
		SweepInterval: cfg.Scheduler.OverdueSweepInterval,
	}, paymentRepo, log)
	sweeper.SetEventPublisher(eventBus)

	// Business metrics
	ledgerMetrics, err := telemetry.NewLedgerMetrics(meterProvider.Meter("ledger"), log)
	if err != nil {
		log.Warn("Failed to initialize ledger metrics", zap.Error(err))
	} else {
		billingService.SetMetrics(ledgerMetrics)
		dashboardService.SetMetrics(ledgerMetrics)
		sweeper.SetMetrics(ledgerMetrics)
	}

	if err := sweeper.Start(ctx); err != nil {
		log.Fatal("Failed to start overdue sweeper", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sweeper.Stop(stopCtx); err != nil {
			log.Warn("Overdue sweeper shutdown error", zap.Error(err))
		}
	}()

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	billImportService := ledgerapp.NewBillImportService(billingService)
	billingHandler := handler.NewBillingHandler(billingService, billImportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	systemHandler := handler.NewSystemHandler(db.DB)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
	}))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingAttributeInjector())
	}

	// Routes
	engine.GET("/health", systemHandler.Health)
	router.NewRouter(engine).
		Register(authHandler).
		Register(billingHandler).
		Register(dashboardHandler).
		Register(tenantHandler).
		Register(propertyHandler).
		Register(systemHandler).
		Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
