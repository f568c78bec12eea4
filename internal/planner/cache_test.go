// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package planner

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/rendezvous/internal/events"
	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/pagination"
	"github.com/tomtom215/rendezvous/internal/recommend"
)

func TestRecommend_FreshAfterBooking(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	bus := events.NewBus(16)
	t.Cleanup(func() { bus.Close() })
	svc.pub = bus
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := bus.Subscribe(ctx, events.TopicCalendarChanged)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	first, err := svc.Recommend(ctx, 1, &augustStart, &augustEnd, pagination.Options{})
	if err != nil || len(first.Data) != 3 {
		t.Fatalf("Recommend() = %d, %v", len(first.Data), err)
	}

	ev, err := svc.CreateBooking(ctx, 1, BookingInput{
		Start: mustTime("2024-08-02T10:30:00Z"),
		End:   mustTime("2024-08-02T11:00:00Z"),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	fresh, err := svc.Recommend(ctx, 1, &augustStart, &augustEnd, pagination.Options{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := ids(fresh.Data); !equalIDs(got, []int64{101, 102}) {
		t.Errorf("after booking ids = %v, want [101 102]", got)
	}

	if err := svc.DeleteBooking(ctx, 1, ev.ID); err != nil {
		t.Fatalf("DeleteBooking() error = %v", err)
	}
	restored, err := svc.Recommend(ctx, 1, &augustStart, &augustEnd, pagination.Options{})
	if err != nil || len(restored.Data) != 3 {
		t.Errorf("after delete = %d, %v", len(restored.Data), err)
	}

	// The change still fans out to bus subscribers.
	select {
	case c := <-changes:
		if c.UserID != 1 || c.Kind != events.KindCreated {
			t.Errorf("change = %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no calendar change delivered")
	}
}

func TestWrites_InvalidateBeforeReturning(t *testing.T) {
	tests := []struct {
		name       string
		write      func(ctx context.Context, svc *Service) error
		wantSingle int
	}{
		{
			name: "booking drops only that user",
			write: func(ctx context.Context, svc *Service) error {
				_, err := svc.CreateBooking(ctx, 2, BookingInput{
					Start: mustTime("2024-08-05T10:00:00Z"),
					End:   mustTime("2024-08-05T11:00:00Z"),
				})
				return err
			},
			wantSingle: 1,
		},
		{
			name: "preferences drop only that user",
			write: func(ctx context.Context, svc *Service) error {
				_, err := svc.SetPreferences(ctx, 1, "ann", []int64{20})
				return err
			},
			wantSingle: 1,
		},
		{
			name: "activity drops everything",
			write: func(ctx context.Context, svc *Service) error {
				return svc.PutActivity(ctx, &models.Activity{
					ID: 104, Name: "Kiln night", CategoryID: 20,
					Availability: onDate("2024-08-05", "18:00", "20:00"),
				})
			},
			wantSingle: 0,
		},
		{
			name: "category drops everything",
			write: func(ctx context.Context, svc *Service) error {
				return svc.PutCategory(ctx, &models.Category{ID: 12, Name: "Kayaking", ParentID: int64Ptr(1)})
			},
			wantSingle: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t, true)
			ctx := context.Background()

			for _, userID := range []int64{1, 2} {
				if _, err := svc.Recommend(ctx, userID, &augustStart, &augustEnd, pagination.Options{}); err != nil {
					t.Fatal(err)
				}
			}
			group := GroupQuery{UserIDs: []int64{1, 2}, Start: &augustStart, End: &augustEnd}
			if _, err := svc.RecommendGroup(ctx, group, pagination.Options{}); err != nil {
				t.Fatal(err)
			}
			if svc.singleCache.Len() != 2 || svc.groupCache.Len() != 1 {
				t.Fatalf("warm cache = %d single, %d group", svc.singleCache.Len(), svc.groupCache.Len())
			}

			if err := tt.write(ctx, svc); err != nil {
				t.Fatalf("write error = %v", err)
			}
			if got := svc.singleCache.Len(); got != tt.wantSingle {
				t.Errorf("single cache = %d, want %d", got, tt.wantSingle)
			}
			if got := svc.groupCache.Len(); got != 0 {
				t.Errorf("group cache = %d, want 0", got)
			}
		})
	}
}

func TestStoreSingle_RejectsStaleStamp(t *testing.T) {
	ranked := []recommend.Scored{{Candidate: recommend.Candidate{ID: 100}, Score: 1}}

	tests := []struct {
		name       string
		between    func(svc *Service)
		wantStored bool
	}{
		{"no change", func(*Service) {}, true},
		{"same user invalidated", func(svc *Service) { svc.InvalidateUser(1) }, false},
		{"other user invalidated", func(svc *Service) { svc.InvalidateUser(2) }, true},
		{"everything invalidated", func(svc *Service) { svc.InvalidateAll() }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t, true)

			stamp := svc.userStamp(1)
			tt.between(svc)
			stored := svc.storeSingle("single:1:window", 1, stamp, ranked)
			if stored != tt.wantStored {
				t.Errorf("storeSingle() = %v, want %v", stored, tt.wantStored)
			}
			if _, ok := svc.singleCache.Get("single:1:window"); ok != tt.wantStored {
				t.Errorf("cached = %v, want %v", ok, tt.wantStored)
			}
		})
	}
}

func TestStoreGroup_RejectsStaleStamp(t *testing.T) {
	ranked := []recommend.GroupScore{{Candidate: recommend.Candidate{ID: 100}, AvailabilityCount: 2}}

	tests := []struct {
		name       string
		between    func(svc *Service)
		wantStored bool
	}{
		{"no change", func(*Service) {}, true},
		{"any user invalidated", func(svc *Service) { svc.InvalidateUser(3) }, false},
		{"everything invalidated", func(svc *Service) { svc.InvalidateAll() }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t, true)

			stamp := svc.groupStamp()
			tt.between(svc)
			if got := svc.storeGroup("group:1,2:2:window", stamp, ranked); got != tt.wantStored {
				t.Errorf("storeGroup() = %v, want %v", got, tt.wantStored)
			}
			if got := svc.groupCache.Len() == 1; got != tt.wantStored {
				t.Errorf("cached = %v, want %v", got, tt.wantStored)
			}
		})
	}
}

func TestInvalidateUser(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	ctx := context.Background()

	for _, userID := range []int64{1, 2} {
		if _, err := svc.Recommend(ctx, userID, &augustStart, &augustEnd, pagination.Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if removed := svc.InvalidateUser(1); removed != 1 {
		t.Errorf("InvalidateUser() removed %d, want 1", removed)
	}
	if removed := svc.InvalidateAll(); removed != 1 {
		t.Errorf("InvalidateAll() removed %d, want 1", removed)
	}
}
