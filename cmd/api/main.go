// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Pokédex HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (optional).
//  4. Build the PokeAPI client and its detail cache.
//  5. Load the base catalog (failure leaves the API degraded, not down).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/pokedex/internal/api"
	"github.com/taibuivan/pokedex/internal/platform/config"
	"github.com/taibuivan/pokedex/internal/platform/constants"
	redisstore "github.com/taibuivan/pokedex/internal/platform/redis"
	"github.com/taibuivan/pokedex/internal/pokeapi"
	"github.com/taibuivan/pokedex/internal/pokemon"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("pokeapi", cfg.PokeAPIBaseURL),
	)

	// Root context for background workers (rate limiter cleanup).
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		redisCtx, redisCancel := context.WithTimeout(rootCtx, constants.StartupLoadTimeout)
		rdb, err = redisstore.NewClient(redisCtx, cfg.RedisURL, log)
		redisCancel()
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	}

	// ── 4. Catalog Client ─────────────────────────────────────────────────
	client, err := pokeapi.NewClient(pokeapi.Options{
		BaseURL: cfg.PokeAPIBaseURL,
		Timeout: cfg.PokeAPITimeout,
		RPS:     cfg.PokeAPIRPS,
		Burst:   cfg.PokeAPIBurst,
	})
	must(log, err, "build pokeapi client")

	catalog := newCatalog(cfg, client, rdb, log)

	// ── 5. Initial Load ───────────────────────────────────────────────────
	pipeline := pokemon.NewPipeline(catalog, pokemon.Options{
		Limit:       cfg.CatalogLimit,
		Offset:      cfg.CatalogOffset,
		Concurrency: cfg.LookupConcurrency,
	}, log)

	loadCtx, loadCancel := context.WithTimeout(rootCtx, constants.StartupLoadTimeout)
	if err := pipeline.Load(loadCtx); err != nil {
		// The pipeline keeps the failure; /ready and every catalog route report it.
		log.Error("catalog_unavailable", slog.Any("error", err))
	}
	loadCancel()

	// ── 6. Health & Domain Handlers ───────────────────────────────────────
	dependencies := api.HealthDependencies{CheckCatalog: pipeline.Ready}
	if rdb != nil {
		dependencies.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Pokemon:   pokemon.NewHandler(pipeline),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// newCatalog selects the detail cache: Redis when configured, in-process otherwise.
// A zero TTL disables caching entirely.
func newCatalog(cfg *config.Config, client *pokeapi.Client, rdb *goredis.Client, log *slog.Logger) pokemon.Catalog {
	if cfg.DetailCacheTTL == 0 {
		log.Info("detail_cache_disabled")
		return client
	}

	var cache pokeapi.DetailCache = pokeapi.NewMemoryCache()
	backend := "memory"
	if rdb != nil {
		cache = pokeapi.NewRedisCache(rdb)
		backend = "redis"
	}

	log.Info("detail_cache_enabled",
		slog.String("backend", backend),
		slog.Duration("ttl", cfg.DetailCacheTTL),
	)
	return pokeapi.NewCachedCatalog(client, cache, cfg.DetailCacheTTL, log)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
