package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/corplex213/CEO-management-Web/internal/app"
	"github.com/corplex213/CEO-management-Web/internal/config"
	"github.com/corplex213/CEO-management-Web/internal/logging"
	"github.com/corplex213/CEO-management-Web/internal/metrics"
	"github.com/corplex213/CEO-management-Web/internal/ratelimit"
	"github.com/corplex213/CEO-management-Web/internal/search"
	"github.com/corplex213/CEO-management-Web/internal/session"
	"github.com/corplex213/CEO-management-Web/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := store.ApplyMigrations(ctx, db, cfg.DatabaseDriver); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	dataStore := store.NewSQLStore(db, cfg.DatabaseDriver)

	var sessions session.Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		logger.Info("using redis for sessions")
		redisStore, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		sessions = redisStore
	} else {
		logger.Info("using in-memory sessions; they do not survive restarts")
		sessions = session.NewMemoryStore()
	}
	defer sessions.Close()

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey, logger)
	}
	searchService := search.NewService(meiliClient, search.NewSQLSearch(dataStore), logger)
	defer searchService.Close()
	go searchService.ReindexAll(ctx)

	m := metrics.New()
	limiter := ratelimit.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Close()

	service := app.New(dataStore, app.Options{
		Sessions:   sessions,
		Search:     searchService,
		Metrics:    m,
		Logger:     logger,
		SessionTTL: cfg.SessionTTL(),
	})
	httpServer := app.NewHTTPServer(service, app.HTTPOptions{
		CORSOrigin: cfg.CORSOrigin,
		Logger:     logger,
		Metrics:    m,
		Limiter:    limiter,
	})
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", cfg.Addr), zap.String("driver", cfg.DatabaseDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
	return nil
}
