// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package models

import (
	"time"

	"github.com/tomtom215/rendezvous/internal/availability"
)

// Category is a node in the category tree.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// Activity is a vendor offering users can book.
type Activity struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity,omitempty"`
	Location    string  `json:"location,omitempty"`
	VendorID    int64   `json:"vendor_id"`
	CategoryID  int64   `json:"category_id"`

	// Availability is nil until the vendor publishes a schedule.
	Availability *availability.Spec `json:"availability,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// AvailabilitySpec implements availability.Schedulable.
func (a Activity) AvailabilitySpec() *availability.Spec {
	return a.Availability
}

// User is a participant in recommendations and bookings.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Preferences lists preferred category ids, usually subcategories.
	Preferences []int64 `json:"preferences"`
}

// CalendarEvent is a booking on a user's calendar.
type CalendarEvent struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	ActivityID *int64    `json:"activity_id,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Booking converts the event to the engine's booking type.
func (e CalendarEvent) Booking() availability.Booking {
	return availability.Booking{
		ID:         e.ID,
		UserID:     e.UserID,
		ActivityID: e.ActivityID,
		Start:      e.StartTime,
		End:        e.EndTime,
	}
}

// Bookings converts a slice of events.
func Bookings(events []CalendarEvent) []availability.Booking {
	out := make([]availability.Booking, len(events))
	for i := range events {
		out[i] = events[i].Booking()
	}
	return out
}
