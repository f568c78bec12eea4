// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package recommend

import (
	"fmt"
	"time"
)

const (
	// DefaultMinParticipants is the group threshold when none is given.
	DefaultMinParticipants = 2

	// DefaultWindowSpan is the query window length when the caller omits
	// the end bound.
	DefaultWindowSpan = 7 * 24 * time.Hour

	// participantWeight separates attendance tiers in the group final score.
	participantWeight = 1000.0
)

// Config contains tunables used by the service layer when it invokes the
// ranking functions.
type Config struct {
	// WindowSpan is the default query window length.
	WindowSpan time.Duration `json:"window_span"`

	// MinParticipants is the default group threshold.
	MinParticipants int `json:"min_participants"`

	// TopLogged is how many group results are logged per request.
	TopLogged int `json:"top_logged"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		WindowSpan:      DefaultWindowSpan,
		MinParticipants: DefaultMinParticipants,
		TopLogged:       10,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.WindowSpan <= 0 {
		return fmt.Errorf("window_span must be positive, got %s", c.WindowSpan)
	}
	if c.MinParticipants < 1 {
		return fmt.Errorf("min_participants must be at least 1, got %d", c.MinParticipants)
	}
	if c.TopLogged < 0 {
		return fmt.Errorf("top_logged must not be negative, got %d", c.TopLogged)
	}
	return nil
}

// ResolveWindow fills in a missing query bound. With neither bound the window
// is [now, now+span]; with only a start it is [start, start+span]; with only
// an end it is [now, end].
func ResolveWindow(start, end *time.Time, now time.Time, span time.Duration) Window {
	if span <= 0 {
		span = DefaultWindowSpan
	}
	w := Window{Start: now}
	if start != nil && !start.IsZero() {
		w.Start = *start
	}
	if end != nil && !end.IsZero() {
		w.End = *end
	} else {
		w.End = w.Start.Add(span)
	}
	return w
}
