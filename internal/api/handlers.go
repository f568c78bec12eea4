// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

// Package api serves the recommendation and calendar endpoints over HTTP.
package api

import (
	"context"
	"time"

	"github.com/tomtom215/rendezvous/internal/availability"
	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/pagination"
	"github.com/tomtom215/rendezvous/internal/planner"
	"github.com/tomtom215/rendezvous/internal/recommend"
)

// Service is the planner surface used by the handlers. *planner.Service
// implements it.
type Service interface {
	Recommend(ctx context.Context, userID int64, start, end *time.Time, page pagination.Options) (pagination.Result[planner.ActivityRecommendation], error)
	RecommendGroup(ctx context.Context, q planner.GroupQuery, page pagination.Options) (pagination.Result[planner.GroupRecommendation], error)
	GroupByParticipants(ctx context.Context, q planner.GroupQuery) (map[int][]planner.GroupRecommendation, error)
	GroupStats(ctx context.Context, q planner.GroupQuery) (recommend.GroupStats, error)
	CheckAvailability(ctx context.Context, activityID int64, start, end time.Time) (availability.Result, error)

	PutActivity(ctx context.Context, a *models.Activity) error
	GetActivity(ctx context.Context, id int64) (*models.Activity, error)
	PutCategory(ctx context.Context, c *models.Category) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	SetPreferences(ctx context.Context, userID int64, name string, categoryIDs []int64) (*models.User, error)

	CreateBooking(ctx context.Context, userID int64, in planner.BookingInput) (*models.CalendarEvent, error)
	UpdateBooking(ctx context.Context, userID int64, id string, upd planner.BookingUpdate) (*models.CalendarEvent, error)
	DeleteBooking(ctx context.Context, userID int64, id string) error
	GetBooking(ctx context.Context, userID int64, id string) (*models.CalendarEvent, error)
	ListBookings(ctx context.Context, userID int64, page pagination.Options) (pagination.Result[models.CalendarEvent], error)
}

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_recommend.go: single and group recommendations
//   - handlers_catalog.go: activities, categories and preferences
//   - handlers_calendar.go: bookings
type Handler struct {
	svc            Service
	storage        Pinger
	requestTimeout time.Duration
	startTime      time.Time
	version        string
}

// NewHandler creates a handler. storage may be nil, in which case readiness
// only reports the process as up.
func NewHandler(svc Service, storage Pinger, requestTimeout time.Duration, version string) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &Handler{
		svc:            svc,
		storage:        storage,
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
		version:        version,
	}
}

// withTimeout bounds a service call by the configured request timeout.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.requestTimeout)
}
