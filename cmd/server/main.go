// Package main is the entry point for the TradeChat server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jdm-products/tradechat/internal/clock"
	"github.com/jdm-products/tradechat/internal/config"
	"github.com/jdm-products/tradechat/internal/database"
	"github.com/jdm-products/tradechat/internal/domain"
	"github.com/jdm-products/tradechat/internal/handler"
	"github.com/jdm-products/tradechat/internal/logging"
	"github.com/jdm-products/tradechat/internal/metrics"
	"github.com/jdm-products/tradechat/internal/middleware"
	"github.com/jdm-products/tradechat/internal/repository"
	"github.com/jdm-products/tradechat/internal/service"
	"github.com/jdm-products/tradechat/internal/validation"
)

func main() {
	// Load configuration first; the logger depends on it
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(&logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Environment: cfg.Server.Environment,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.Zap()
	defer func() { _ = logger.Sync() }()

	logger.Info("starting TradeChat server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Environment),
	)

	m := metrics.NewMetrics()

	// Lead storage is optional; without it leads go to the log
	ctx := context.Background()
	var db *database.DB
	var recorder domain.LeadRecorder
	var leadService *service.LeadService

	if cfg.Database.Enabled() {
		db, err = database.New(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}

		if err := database.NewMigrator(db.Pool, logger).Migrate(ctx); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}

		leadRepo := repository.NewLeadRepository(db.Pool)
		recorder = service.NewRepositoryLeadRecorder(leadRepo, m)
		leadService = service.NewLeadService(leadRepo, m, logger)
	} else {
		logger.Info("database not configured, recording leads to the log")
		recorder = service.NewLogLeadRecorder(logger)
	}

	// Initialize services
	chatService := service.NewChatService(cfg.Chat, recorder, clock.New(), m, logger)

	// Initialize middleware
	correlation := middleware.NewRequestCorrelation(logger)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	rateLimiter.OnLimit(func() { m.RecordRateLimitHit("general") })

	adminAuth := middleware.NewAdminKeyAuth(cfg.Admin.KeyHash, logger)
	adminAuth.OnAuth(m.RecordAdminAuth)
	if !adminAuth.Enabled() {
		logger.Info("admin key not configured, admin endpoints disabled")
	}

	// Initialize handlers
	h := handler.New(chatService, validation.NewMessageValidator(cfg.Chat.MaxMessageLength), logger)
	h.SetAdminAuth(adminAuth)
	h.SetLogLevelHandler(log)
	if db != nil {
		h.SetHealthChecker(db)
	}
	if leadService != nil {
		h.SetLeadService(leadService)
	}

	// Initialize router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(correlation.Middleware)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit(rateLimiter))
	r.Use(middleware.BodySizeLimiterJSON())
	r.Use(m.Middleware)

	r.Handle("/metrics", m.Handler())

	h.RegisterRoutes(r)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Background maintenance: idle session cleanup and pool stats
	stopMaintenance := make(chan struct{})
	maintenanceDone := make(chan struct{})
	go func() {
		defer close(maintenanceDone)
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				chatService.CleanupIdleSessions()
				if db != nil {
					stats := db.Stats()
					m.UpdateDBConnections(int(stats.TotalConns()), int(stats.AcquiredConns()))
				}
			case <-stopMaintenance:
				return
			}
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	close(stopMaintenance)
	select {
	case <-maintenanceDone:
	case <-shutdownCtx.Done():
	}

	if db != nil {
		db.Close()
	}

	logger.Info("server stopped")
}
