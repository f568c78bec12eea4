// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

// Package events carries change notifications between the planner and its
// cache invalidator over an in-process watermill pub/sub.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/rendezvous/internal/logging"
)

// Topics.
const (
	TopicCalendarChanged    = "calendar.changed"
	TopicActivityChanged    = "activity.changed"
	TopicPreferencesChanged = "preferences.changed"
)

// Change kinds.
const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// Change describes a mutation that may invalidate cached rankings.
type Change struct {
	Kind       string    `json:"kind"`
	UserID     int64     `json:"user_id,omitempty"`
	ActivityID int64     `json:"activity_id,omitempty"`
	EventID    string    `json:"event_id,omitempty"`
	At         time.Time `json:"at"`
}

// Bus publishes and subscribes to Change messages.
type Bus struct {
	pubsub *gochannel.GoChannel

	mu     sync.RWMutex
	closed bool
}

// NewBus creates an in-process bus. buffer is the per-subscriber output
// channel size.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: int64(buffer),
		}, logger),
	}
}

// Publish encodes c and sends it to topic. Messages published before any
// subscriber exists are dropped.
func (b *Bus) Publish(ctx context.Context, topic string, c Change) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("bus is closed")
	}

	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set("request_id", id)
	}
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns a channel of decoded changes on topic. The channel is
// closed when ctx is canceled or the bus is closed. Malformed payloads are
// acked and skipped.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan Change, error) {
	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", topic, err)
	}

	out := make(chan Change)
	go func() {
		defer close(out)
		for msg := range messages {
			var c Change
			if err := json.Unmarshal(msg.Payload, &c); err != nil {
				logging.Warn().Err(err).Str("topic", topic).Str("uuid", msg.UUID).Msg("Dropping malformed change")
				msg.Ack()
				continue
			}
			select {
			case out <- c:
				msg.Ack()
			case <-ctx.Done():
				msg.Nack()
				return
			}
		}
	}()
	return out, nil
}

// Close shuts down the bus and every subscription.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}
