package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"linkbio/internal/config"
	"linkbio/internal/handlers"
	"linkbio/internal/repository"
	"linkbio/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Store
	var store repository.Store
	if cfg.DatabaseURL == "" {
		mem := repository.NewMemoryStore()
		if cfg.SeedDemoData {
			if err := repository.SeedDemoData(mem); err != nil {
				return fmt.Errorf("failed to seed demo data: %w", err)
			}
			logger.Info("Seeded demo profiles")
		}
		store = mem
	} else {
		db, err := repository.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
			logger.Info("Running database migrations...")
			if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
		} else {
			if err := repository.AutoMigrate(db); err != nil {
				return fmt.Errorf("schema migration failed: %w", err)
			}
		}
		store = repository.NewGormStore(db)
	}

	// 4. Initialize Redis (optional profile cache)
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = repository.InitRedis(cfg.RedisURL, cfg.RedisPassword, 0)
		if err != nil {
			logger.Warn("Failed to connect to Redis, cache disabled", "error", err)
			rdb = nil
		}
	}

	// 5. Initialize Services
	geoIPService := services.NewGeoIPService(cfg, logger)
	analyticsService := services.NewAnalyticsService(store, logger)
	adminService := services.NewAdminService(store, logger)
	eventService := services.NewClickEventService(store, logger, geoIPService)
	auditService := services.NewAuditService(store, logger)
	qrService := services.NewQRService()

	var rateLimiter *services.IPRateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = services.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, logger)
	}

	// 6. Initialize Handler & Router
	h := handlers.NewHandler(cfg, logger, store, rdb, analyticsService, adminService, eventService, auditService, qrService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := h.SetupRouter(rateLimiter)

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Background context for workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	go auditService.Start(workerCtx)
	go eventService.Start(workerCtx)
	go geoIPService.Init()
	if rateLimiter != nil {
		rateLimiter.StartCleanup(workerCtx, 10*time.Minute)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	geoIPService.Close()

	logger.Info("Server exiting")
	return nil
}
