package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/auth"
	"github.com/anonto42/synapse-forum/backend/internal/metrics"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/anonto42/synapse-forum/backend/internal/router"
	"github.com/anonto42/synapse-forum/backend/pkg/config"
	"github.com/anonto42/synapse-forum/backend/pkg/payments"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to initialize databases", "error", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	deps := router.Dependencies{
		Posts:         repositories.NewMongoPostRepository(db.Store),
		Comments:      repositories.NewMongoCommentRepository(db.Store),
		Tags:          repositories.NewMongoTagRepository(db.Store),
		Announcements: repositories.NewMongoAnnouncementRepository(db.Store),
		Reports:       repositories.NewMongoReportRepository(db.Store),
		Users:         repositories.NewMongoUserRepository(db.Store),
		Payments:      repositories.NewMongoPaymentRepository(db.Store, cfg.MongoTransactions),
		Tokens:        auth.NewTokenManager(cfg.AccessTokenSecret, cfg.TokenTTL),
		Processor:     payments.NewStripeProcessor(cfg.StripeSecretKey),
		Health:        db.Store,
	}

	// Users and payments move to the SQL store when one is configured
	if db.Accounts != nil {
		if err := repositories.MigrateAccounts(db.Accounts); err != nil {
			logger.Error("Failed to migrate account store", "error", err)
			os.Exit(1)
		}
		deps.Users = repositories.NewGormUserRepository(db.Accounts)
		deps.Payments = repositories.NewGormPaymentRepository(db.Accounts)
	}

	m := metrics.New()

	e := router.New(logger, deps)
	config.SetupMiddleware(e, cfg, logger, m.Middleware())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsSrv := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "error", err)
			quit <- syscall.SIGTERM
		}
	}()
	go func() {
		logger.Info("Metrics listening", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listen", "error", err)
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		logger.Error("Metrics server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting")
}
