// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

func receive(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case c, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(8)
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, TopicCalendarChanged)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := bus.Publish(ctx, TopicCalendarChanged, Change{Kind: KindCreated, UserID: 7, EventID: "e1"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	got := receive(t, ch)
	if got.Kind != KindCreated || got.UserID != 7 || got.EventID != "e1" {
		t.Errorf("received %+v", got)
	}
	if got.At.IsZero() {
		t.Error("At should be stamped on publish")
	}

	// Other topics are not delivered.
	if err := bus.Publish(ctx, TopicActivityChanged, Change{Kind: KindUpdated, ActivityID: 3}); err != nil {
		t.Fatal(err)
	}
	if err := bus.Publish(ctx, TopicCalendarChanged, Change{Kind: KindDeleted, UserID: 8}); err != nil {
		t.Fatal(err)
	}
	if got := receive(t, ch); got.UserID != 8 {
		t.Errorf("received %+v, want user 8", got)
	}
}

func TestBus_SkipsMalformedPayload(t *testing.T) {
	bus := NewBus(8)
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, TopicActivityChanged)
	if err != nil {
		t.Fatal(err)
	}

	if err := bus.pubsub.Publish(TopicActivityChanged, message.NewMessage(watermill.NewUUID(), []byte("{"))); err != nil {
		t.Fatal(err)
	}
	if err := bus.Publish(ctx, TopicActivityChanged, Change{Kind: KindUpdated, ActivityID: 4}); err != nil {
		t.Fatal(err)
	}
	if got := receive(t, ch); got.ActivityID != 4 {
		t.Errorf("received %+v, want activity 4", got)
	}
}

func TestBus_Close(t *testing.T) {
	bus := NewBus(0)
	ctx := context.Background()

	ch, err := bus.Subscribe(ctx, TopicPreferencesChanged)
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed")
	}

	if err := bus.Publish(ctx, TopicPreferencesChanged, Change{Kind: KindUpdated}); err == nil {
		t.Error("Publish after Close should fail")
	}
}
