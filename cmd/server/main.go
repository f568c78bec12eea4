// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

// Package main is the entry point for the Rendezvous server.
//
// Rendezvous recommends marketplace activities to a user or a group of users
// based on when the activities run, what the users already have booked and
// which categories they prefer.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml and environment (koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. Storage: BadgerDB (on disk, or in memory for development)
//  4. Event bus: watermill gochannel for cache invalidation
//  5. Planner: recommendation and booking service with ranking caches
//  6. HTTP: chi router with auth, CORS, rate limiting and metrics
//  7. Supervisor tree: HTTP server, cache invalidator and maintenance
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight
// requests for server.shutdown_timeout, then the bus and store are closed.
//
// # Example Usage
//
// Development, in-memory storage and header auth:
//
//	export STORAGE_IN_MEMORY=true
//	export AUTH_MODE=none
//	./rendezvous
//
// Production:
//
//	export STORAGE_PATH=/var/lib/rendezvous
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export CORS_ORIGINS=https://app.example.com
//	./rendezvous
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/rendezvous/internal/api"
	"github.com/tomtom215/rendezvous/internal/auth"
	"github.com/tomtom215/rendezvous/internal/config"
	"github.com/tomtom215/rendezvous/internal/events"
	"github.com/tomtom215/rendezvous/internal/logging"
	"github.com/tomtom215/rendezvous/internal/planner"
	"github.com/tomtom215/rendezvous/internal/store"
	"github.com/tomtom215/rendezvous/internal/supervisor"
	"github.com/tomtom215/rendezvous/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// busBuffer is the per-subscriber channel size of the change bus.
const busBuffer = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("in_memory", cfg.Storage.InMemory).
		Msg("Starting Rendezvous")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	st, err := store.Open(store.Options{
		Path:     cfg.Storage.Path,
		InMemory: cfg.Storage.InMemory,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	bus := events.NewBus(busBuffer)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	svc := planner.New(st, bus, cfg.Recommend, cfg.Breaker)

	authMiddleware, err := newAuthMiddleware(cfg)
	if err != nil {
		return err
	}

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	handler := api.NewHandler(svc, st, cfg.Recommend.RequestTimeout, version)
	router := api.NewRouter(handler, authMiddleware, api.NewChiMiddleware(mwConfig))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewMaintenanceService(st, svc, services.MaintenanceConfig{
		GCInterval:           cfg.Storage.GCInterval,
		CacheCleanupInterval: cfg.Recommend.CacheTTL,
	}, logging.WithComponent("supervisor")))
	tree.AddMessagingService(planner.NewInvalidator(svc, bus))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil {
		for _, u := range unstopped {
			logging.Warn().Str("service", u.Name).Msg("Service failed to stop within timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}

func newAuthMiddleware(cfg *config.Config) (*auth.Middleware, error) {
	switch cfg.Security.AuthMode {
	case "jwt":
		jwtManager, err := auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return nil, fmt.Errorf("initialize JWT manager: %w", err)
		}
		logging.Info().Dur("session_timeout", cfg.Security.SessionTimeout).Msg("JWT authentication enabled")
		return auth.NewMiddleware(jwtManager, cfg.Security.AuthMode), nil
	case "none":
		logging.Warn().Msg("SECURITY WARNING: authentication is disabled (AUTH_MODE=none)")
		logging.Warn().Msg("The caller is taken from the X-User-ID header. Use only for local development.")
		return auth.NewMiddleware(nil, cfg.Security.AuthMode), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Security.AuthMode)
	}
}
