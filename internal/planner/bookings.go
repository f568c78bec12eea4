// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/rendezvous/internal/availability"
	"github.com/tomtom215/rendezvous/internal/events"
	"github.com/tomtom215/rendezvous/internal/metrics"
	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/pagination"
	"github.com/tomtom215/rendezvous/internal/store"
)

// BookingInput creates a calendar entry. ActivityID is optional; personal
// entries without an activity skip the availability check.
type BookingInput struct {
	ActivityID *int64
	Start      time.Time
	End        time.Time
}

// BookingUpdate changes a calendar entry. Nil fields keep their value.
type BookingUpdate struct {
	ActivityID *int64
	Start      *time.Time
	End        *time.Time
}

// CreateBooking validates and stores a new booking for userID.
func (s *Service) CreateBooking(ctx context.Context, userID int64, in BookingInput) (*models.CalendarEvent, error) {
	ev := &models.CalendarEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		ActivityID: in.ActivityID,
		StartTime:  in.Start.UTC(),
		EndTime:    in.End.UTC(),
	}
	if err := s.validateBooking(ctx, ev); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if err := guardErr(s, "create_event", func() error {
		return s.store.CreateEvent(ctx, ev)
	}); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info().
		Int64("user_id", userID).
		Str("booking_id", ev.ID).
		Time("start", ev.StartTime).
		Time("end", ev.EndTime).
		Msg("Booking created")
	s.commit(ctx, events.TopicCalendarChanged, events.Change{Kind: events.KindCreated, UserID: userID, EventID: ev.ID})
	return ev, nil
}

// UpdateBooking applies a partial update to one of the user's bookings.
func (s *Service) UpdateBooking(ctx context.Context, userID int64, id string, upd BookingUpdate) (*models.CalendarEvent, error) {
	ev, err := s.GetBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.ActivityID != nil {
		ev.ActivityID = upd.ActivityID
	}
	if upd.Start != nil {
		ev.StartTime = upd.Start.UTC()
	}
	if upd.End != nil {
		ev.EndTime = upd.End.UTC()
	}
	if err := s.validateBooking(ctx, ev); err != nil {
		return nil, err
	}

	ev.UpdatedAt = s.now().UTC()
	if err := guardErr(s, "update_event", func() error {
		return s.store.UpdateEvent(ctx, ev)
	}); err != nil {
		return nil, fmt.Errorf("update booking %s: %w", id, err)
	}

	s.commit(ctx, events.TopicCalendarChanged, events.Change{Kind: events.KindUpdated, UserID: userID, EventID: id})
	return ev, nil
}

// DeleteBooking removes one of the user's bookings.
func (s *Service) DeleteBooking(ctx context.Context, userID int64, id string) error {
	if _, err := s.GetBooking(ctx, userID, id); err != nil {
		return err
	}
	err := guardErr(s, "delete_event", func() error {
		return s.store.DeleteEvent(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("delete booking %s: %w", id, err)
	}

	s.commit(ctx, events.TopicCalendarChanged, events.Change{Kind: events.KindDeleted, UserID: userID, EventID: id})
	return nil
}

// GetBooking returns a booking owned by userID. Bookings of other users are
// reported as not found.
func (s *Service) GetBooking(ctx context.Context, userID int64, id string) (*models.CalendarEvent, error) {
	ev, err := guard(s, "get_event", func() (*models.CalendarEvent, error) {
		return s.store.GetEvent(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", id, err)
	}
	if ev.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	return ev, nil
}

// ListBookings returns a page of the user's bookings ordered by start time.
func (s *Service) ListBookings(ctx context.Context, userID int64, page pagination.Options) (pagination.Result[models.CalendarEvent], error) {
	evs, err := guard(s, "list_events", func() ([]models.CalendarEvent, error) {
		return s.store.ListEventsByUser(ctx, userID)
	})
	if err != nil {
		return pagination.Result[models.CalendarEvent]{}, fmt.Errorf("list bookings: %w", err)
	}
	return pagination.Paginate(evs, page), nil
}

// validateBooking rejects inverted intervals, slots outside the linked
// activity's availability and overlaps with the user's other bookings.
func (s *Service) validateBooking(ctx context.Context, ev *models.CalendarEvent) error {
	if ev.EndTime.Before(ev.StartTime) {
		res := availability.Result{Reason: availability.ReasonInvalidInterval, Detail: "end is before start"}
		metrics.RecordBookingValidation("rejected", string(res.Reason))
		return &BookingRejectedError{Result: res}
	}

	if ev.ActivityID != nil {
		a, err := s.getActivity(ctx, *ev.ActivityID)
		if err != nil {
			return err
		}
		res := availability.Check(a.Availability, ev.StartTime, ev.EndTime)
		if !res.Valid {
			metrics.RecordBookingValidation("rejected", string(res.Reason))
			s.logger.Debug().
				Int64("user_id", ev.UserID).
				Int64("activity_id", a.ID).
				Str("reason", string(res.Reason)).
				Msg("Booking outside activity availability")
			return &BookingRejectedError{Result: res}
		}
	}

	existing, err := guard(s, "list_events", func() ([]models.CalendarEvent, error) {
		return s.store.ListEventsByUser(ctx, ev.UserID)
	})
	if err != nil {
		return fmt.Errorf("load calendar for user %d: %w", ev.UserID, err)
	}
	if clash, ok := availability.FindSelfConflict(ev.StartTime, ev.EndTime, models.Bookings(existing), ev.ID); ok {
		metrics.RecordBookingValidation("conflict", "")
		return &SelfConflictError{Existing: clash}
	}

	metrics.RecordBookingValidation("accepted", "")
	return nil
}
