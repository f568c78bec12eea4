// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

// Package planner is the service layer between the HTTP API and the ranking
// engine. It loads users, activities and calendars from storage, converts
// them into engine inputs, runs the ranking and booking checks, caches
// ranked lists and publishes change events so the caches stay fresh.
package planner

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/rendezvous/internal/cache"
	"github.com/tomtom215/rendezvous/internal/config"
	"github.com/tomtom215/rendezvous/internal/events"
	"github.com/tomtom215/rendezvous/internal/logging"
	"github.com/tomtom215/rendezvous/internal/metrics"
	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/recommend"
)

// Store is the persistence the planner needs. *store.Store implements it.
type Store interface {
	PutCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategories(ctx context.Context, ids []int64) (map[int64]models.Category, error)

	PutActivity(ctx context.Context, a *models.Activity) error
	GetActivity(ctx context.Context, id int64) (*models.Activity, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)
	GetActivitiesByIDs(ctx context.Context, ids []int64) (map[int64]models.Activity, error)

	PutUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)

	CreateEvent(ctx context.Context, e *models.CalendarEvent) error
	GetEvent(ctx context.Context, id string) (*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, e *models.CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
	ListEventsByUser(ctx context.Context, userID int64) ([]models.CalendarEvent, error)
}

// Publisher sends change notifications. *events.Bus implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, c events.Change) error
}

// Service implements recommendations and bookings.
type Service struct {
	store  Store
	pub    Publisher
	cfg    recommend.Config
	cb     *gobreaker.CircuitBreaker[interface{}]
	logger zerolog.Logger
	now    func() time.Time

	// nil when caching is disabled
	singleCache *cache.LRU[[]recommend.Scored]
	groupCache  *cache.LRU[[]recommend.GroupScore]
	gens        generations
}

// New creates the service. pub may be nil, in which case no change events
// are published.
func New(st Store, pub Publisher, rc config.RecommendConfig, bc config.BreakerConfig) *Service {
	cfg := recommend.DefaultConfig()
	if rc.WindowSpan > 0 {
		cfg.WindowSpan = rc.WindowSpan
	}
	if rc.MinParticipants > 0 {
		cfg.MinParticipants = rc.MinParticipants
	}
	if rc.TopLogged >= 0 {
		cfg.TopLogged = rc.TopLogged
	}

	s := &Service{
		store:  st,
		pub:    pub,
		cfg:    cfg,
		cb:     newStoreBreaker(bc),
		logger: logging.WithComponent("planner"),
		now:    time.Now,
	}
	if rc.CacheEnabled {
		s.singleCache = cache.NewLRU[[]recommend.Scored](rc.CacheCapacity, rc.CacheTTL)
		s.groupCache = cache.NewLRU[[]recommend.GroupScore](rc.CacheCapacity, rc.CacheTTL)
	}
	return s
}

// Config returns the effective engine configuration.
func (s *Service) Config() recommend.Config {
	return s.cfg
}

func (s *Service) publish(ctx context.Context, topic string, c events.Change) {
	if s.pub == nil {
		return
	}
	c.At = s.now().UTC()
	if err := s.pub.Publish(ctx, topic, c); err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Msg("Failed to publish change")
		return
	}
	metrics.EventsPublished.WithLabelValues(topic).Inc()
}
