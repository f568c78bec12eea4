// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims storage space. Satisfied by *store.Store.
type GarbageCollector interface {
	RunGC() error
}

// CacheCleaner evicts expired cache entries. Satisfied by *planner.Service.
type CacheCleaner interface {
	CleanupExpired() int
}

// MaintenanceConfig holds the maintenance intervals.
type MaintenanceConfig struct {
	// GCInterval is how often storage GC runs. Zero disables it.
	GCInterval time.Duration

	// CacheCleanupInterval is how often expired rankings are evicted.
	// Zero disables it.
	CacheCleanupInterval time.Duration
}

// MaintenanceService runs periodic housekeeping for the data layer.
type MaintenanceService struct {
	gc     GarbageCollector
	cache  CacheCleaner
	config MaintenanceConfig
	logger zerolog.Logger
	name   string
}

// NewMaintenanceService creates the service. Either collaborator may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(gc GarbageCollector, cache CacheCleaner, cfg MaintenanceConfig, logger zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{
		gc:     gc,
		cache:  cache,
		config: cfg,
		logger: logger.With().Str("service", "maintenance").Logger(),
		name:   "maintenance-service",
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	gcTick := tickerChan(s.config.GCInterval, s.gc != nil)
	cleanupTick := tickerChan(s.config.CacheCleanupInterval, s.cache != nil)
	defer gcTick.stop()
	defer cleanupTick.stop()

	s.logger.Info().
		Dur("gc_interval", s.config.GCInterval).
		Dur("cache_cleanup_interval", s.config.CacheCleanupInterval).
		Msg("maintenance service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("maintenance service shutting down")
			return ctx.Err()

		case <-gcTick.c:
			s.runGC()

		case <-cleanupTick.c:
			if n := s.cache.CleanupExpired(); n > 0 {
				s.logger.Debug().Int("evicted", n).Msg("expired rankings evicted")
			}
		}
	}
}

func (s *MaintenanceService) runGC() {
	start := time.Now()
	if err := s.gc.RunGC(); err != nil {
		s.logger.Warn().Err(err).Msg("storage GC failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("storage GC complete")
}

// String returns the service name for logging.
func (s *MaintenanceService) String() string {
	return s.name
}

// optionalTicker is a ticker whose channel is nil (never ready) when
// disabled.
type optionalTicker struct {
	t *time.Ticker
	c <-chan time.Time
}

func tickerChan(interval time.Duration, enabled bool) optionalTicker {
	if !enabled || interval <= 0 {
		return optionalTicker{}
	}
	t := time.NewTicker(interval)
	return optionalTicker{t: t, c: t.C}
}

func (o optionalTicker) stop() {
	if o.t != nil {
		o.t.Stop()
	}
}
