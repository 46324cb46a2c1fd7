package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"baseware/internal/auth"
	"baseware/internal/cache"
	"baseware/internal/config"
	"baseware/internal/database"
	"baseware/internal/logger"
	"baseware/internal/message"
	"baseware/internal/middleware"
	"baseware/internal/openapi"
	"baseware/internal/routes"
	"baseware/internal/service"
	"baseware/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := routes.Deps{
		Messages: message.New(cfg.DefaultLocale),
		CORS:     cfg.CORS,
	}

	var tx store.TxRunner
	switch cfg.Store {
	case config.StorePostgres:
		db, err := database.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
			return err
		}
		tx = store.NewPostgresTxRunner(db)
		deps.DB = db
	default:
		slog.Warn("using in-memory store, data is lost on restart")
		tx = store.NewMemoryStores()
	}

	var (
		categoryCache cache.CategoryCache  = cache.NopCategoryCache{}
		blacklist     cache.TokenBlacklist = cache.NopTokenBlacklist{}
	)
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		categoryCache = cache.NewRedisCategoryCache(rdb, cfg.Redis.CategoryTTL)
		blacklist = cache.NewRedisTokenBlacklist(rdb)
	}

	if cfg.JWT.Enabled() {
		key, err := auth.LoadPublicKey(cfg.JWT.PublicKeyPath)
		if err != nil {
			return err
		}
		deps.Verifier = auth.NewVerifier(key, blacklist)
	} else {
		slog.Warn("JWT_PUBLIC_KEY_PATH not set, requests are not authenticated")
	}

	if cfg.RateLimit.Enabled() {
		deps.Limiter = middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst,
			middleware.WithSkipper(func(r *http.Request) bool { return r.URL.Path == "/health" }))
	}

	deps.Services = service.NewServices(tx, categoryCache, deps.Messages)

	doc, err := openapi.Generate(cfg.OpenAPI, openapi.Operations)
	if err != nil {
		return err
	}
	if deps.APIDocs, err = doc.JSON(); err != nil {
		return fmt.Errorf("render openapi document: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", server.Addr, "env", cfg.Env, "store", cfg.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server exited gracefully")
	return nil
}
