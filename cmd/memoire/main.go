package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omzi/memoire/config"
	HTTPAdapter "github.com/omzi/memoire/internal/adapter/http"
	"github.com/omzi/memoire/internal/adapter/ratelimit"
	"github.com/omzi/memoire/internal/adapter/render/streampot"
	"github.com/omzi/memoire/internal/adapter/storage/blob"
	sqlitestore "github.com/omzi/memoire/internal/adapter/storage/sqlite"
	"github.com/omzi/memoire/internal/infrastructure/logger"
	"github.com/omzi/memoire/internal/port"
	"github.com/omzi/memoire/internal/service"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	logger.Info.Printf("starting memoire %s on port %d", version, cfg.Port)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		logger.Error.Printf("failed to create data directory: %v", err)
		os.Exit(1)
	}

	store, err := sqlitestore.NewStore(cfg.DataDir)
	if err != nil {
		logger.Error.Printf("failed to open project store: %v", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	slogger := logger.NewRequestLogger(cfg.LogLevel)

	engine := streampot.NewClient(cfg.StreamPotBaseURL, cfg.StreamPotKey, slogger)
	logger.Info.Printf("render engine configured, secret=%s", logger.SanitizeSecret(cfg.StreamPotKey))

	var blobs port.BlobStore
	if cfg.SupabaseURL != "" {
		blobs = blob.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket)
	} else {
		logger.Warn.Printf("no blob store configured, previews will use engine URLs")
	}

	var limiter port.RateLimiter
	if cfg.RedisAddr != "" {
		rdb, err := ratelimit.Connect(context.Background(), cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			logger.Error.Printf("failed to connect to redis: %v", err)
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimitQuota, cfg.RateLimitWindow)
	} else {
		logger.Warn.Printf("no redis configured, rate limits are per-process")
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitQuota, cfg.RateLimitWindow)
	}

	compositor := service.NewCompositor(store, engine, blobs, cfg.PollInterval, cfg.RenderBudget)
	authSvc := service.NewAuthService(cfg.AuthSecret)

	router := HTTPAdapter.NewRouter(HTTPAdapter.ServerConfig{
		Compositor: compositor,
		Limiter:    limiter,
		Validator:  authSvc,
		Logger:     slogger,
		Version:    version,
		StartTime:  time.Now(),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
		// Renders block for up to the budget, so write timeout leaves
		// headroom beyond it.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RenderBudget + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}
	}()

	logger.Info.Printf("server listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error.Printf("server failed: %v", err)
		os.Exit(1)
	}
}
