// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rendezvous/internal/events"
	"github.com/tomtom215/rendezvous/internal/logging"
	"github.com/tomtom215/rendezvous/internal/metrics"
)

// Subscriber delivers change notifications. *events.Bus implements it.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan events.Change, error)
}

// errSubscriptionClosed is returned by Serve when the bus goes away while
// the context is still live, so the supervisor restarts the invalidator.
var errSubscriptionClosed = errors.New("change subscription closed")

// Invalidator evicts cached rankings for changes published on the bus by
// writers other than the service itself. The service invalidates its own
// writes synchronously in commit; replaying them here is harmless.
type Invalidator struct {
	svc    *Service
	sub    Subscriber
	logger zerolog.Logger
}

// NewInvalidator creates an invalidator for svc's caches.
func NewInvalidator(svc *Service, sub Subscriber) *Invalidator {
	return &Invalidator{
		svc:    svc,
		sub:    sub,
		logger: logging.WithComponent("invalidator"),
	}
}

// Serve consumes change events until ctx is canceled. It implements
// suture.Service.
func (inv *Invalidator) Serve(ctx context.Context) error {
	calendar, err := inv.sub.Subscribe(ctx, events.TopicCalendarChanged)
	if err != nil {
		return err
	}
	activity, err := inv.sub.Subscribe(ctx, events.TopicActivityChanged)
	if err != nil {
		return err
	}
	prefs, err := inv.sub.Subscribe(ctx, events.TopicPreferencesChanged)
	if err != nil {
		return err
	}

	inv.logger.Info().Msg("Cache invalidator started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-calendar:
			if !ok {
				return inv.closed(ctx, events.TopicCalendarChanged)
			}
			inv.handle(events.TopicCalendarChanged, c)
		case c, ok := <-activity:
			if !ok {
				return inv.closed(ctx, events.TopicActivityChanged)
			}
			inv.handle(events.TopicActivityChanged, c)
		case c, ok := <-prefs:
			if !ok {
				return inv.closed(ctx, events.TopicPreferencesChanged)
			}
			inv.handle(events.TopicPreferencesChanged, c)
		}
	}
}

func (inv *Invalidator) closed(ctx context.Context, topic string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%s: %w", topic, errSubscriptionClosed)
}

func (inv *Invalidator) handle(topic string, c events.Change) {
	metrics.EventsConsumed.WithLabelValues(topic).Inc()
	removed := inv.svc.invalidateFor(topic, c)

	inv.logger.Debug().
		Str("topic", topic).
		Str("kind", c.Kind).
		Int64("user_id", c.UserID).
		Int("removed", removed).
		Msg("Invalidated cached rankings")
}

// String implements fmt.Stringer for suture logging.
func (inv *Invalidator) String() string {
	return "cache-invalidator"
}
