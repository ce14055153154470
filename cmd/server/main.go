package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/souvikdhua/cosmeticking/internal/application/cart"
	catalogapp "github.com/souvikdhua/cosmeticking/internal/application/catalog"
	"github.com/souvikdhua/cosmeticking/internal/application/checkout"
	"github.com/souvikdhua/cosmeticking/internal/application/identity"
	inventoryapp "github.com/souvikdhua/cosmeticking/internal/application/inventory"
	mediaapp "github.com/souvikdhua/cosmeticking/internal/application/media"
	orderapp "github.com/souvikdhua/cosmeticking/internal/application/order"
	domainstore "github.com/souvikdhua/cosmeticking/internal/domain/store"
	"github.com/souvikdhua/cosmeticking/internal/infrastructure/config"
	"github.com/souvikdhua/cosmeticking/internal/infrastructure/export"
	"github.com/souvikdhua/cosmeticking/internal/infrastructure/logger"
	"github.com/souvikdhua/cosmeticking/internal/infrastructure/seed"
	"github.com/souvikdhua/cosmeticking/internal/infrastructure/storage"
	storeinfra "github.com/souvikdhua/cosmeticking/internal/infrastructure/store"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/handler"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/middleware"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Cosmetic King",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("store", cfg.Store.Backend),
	)

	// Initialize document store
	docStore, closeStore, err := newStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("Error closing document store", zap.Error(err))
		}
	}()
	log.Info("Document store ready")

	ctx := context.Background()

	// Seed the catalog on first run
	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, docStore, log); err != nil {
			log.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}

	// Application services. The ledger, catalog, and order history mirror
	// their store collections through subscriptions; start order matters
	// only in that each must be running before the router serves traffic.
	ledgerService := inventoryapp.NewService(docStore, log)
	if err := ledgerService.Start(ctx); err != nil {
		log.Fatal("Failed to start inventory ledger", zap.Error(err))
	}
	defer ledgerService.Stop()

	catalogService := catalogapp.NewService(docStore, ledgerService, log)
	if err := catalogService.Start(ctx); err != nil {
		log.Fatal("Failed to start catalog", zap.Error(err))
	}
	defer catalogService.Stop()

	historyService := orderapp.NewService(docStore, log)
	if err := historyService.Start(ctx); err != nil {
		log.Fatal("Failed to start order history", zap.Error(err))
	}
	defer historyService.Stop()

	cartService := cartapp.NewService()
	authService := identity.NewService(cfg.Admin.Passphrase)
	clipboard := export.NewStoreClipboard(docStore)
	checkoutService := checkout.NewService(cartService, catalogService, ledgerService, historyService, clipboard, log)

	mediaStorage, err := newMediaStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize media storage", zap.Error(err))
	}
	mediaService := mediaapp.NewService(mediaStorage, catalogService, log)

	// HTTP handlers
	adminAuth := middleware.AdminAuth(authService)
	productHandler := handler.NewProductHandler(catalogService, mediaService, ledgerService, cartService, adminAuth)
	cartHandler := handler.NewCartHandler(cartService, catalogService, ledgerService, checkoutService)
	inventoryHandler := handler.NewInventoryHandler(ledgerService, adminAuth)
	orderHandler := handler.NewOrderHandler(historyService, adminAuth)
	authHandler := handler.NewAuthHandler(authService, adminAuth)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Env)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware stack: request ID, panic recovery, request logging,
	// CORS, body limit, session cookie.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Session())

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(productHandler).
		Register(cartHandler).
		Register(inventoryHandler).
		Register(orderHandler).
		Register(authHandler).
		Register(systemHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newStore builds the configured document store backend.
func newStore(cfg *config.Config, log *zap.Logger) (domainstore.Store, func() error, error) {
	switch cfg.Store.Backend {
	case "memory":
		return storeinfra.NewMemoryStore(), func() error { return nil }, nil
	default:
		rs, err := storeinfra.NewRedisStore(storeinfra.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, storeinfra.WithStoreLogger(log))
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	}
}

// newMediaStorage builds the media backend. With storage disabled,
// uploads land in an in-process stub so the rest of the app still
// works in development.
func newMediaStorage(cfg *config.Config, log *zap.Logger) (mediaapp.ObjectStorage, error) {
	if !cfg.Storage.Enabled {
		log.Warn("Media storage disabled, uploads will not persist")
		return storage.NewStubStorage(), nil
	}
	return storage.NewS3MediaStorage(&cfg.Storage, storage.WithLogger(log))
}
