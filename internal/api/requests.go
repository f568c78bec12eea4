// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"time"

	"github.com/tomtom215/rendezvous/internal/availability"
	"github.com/tomtom215/rendezvous/internal/planner"
)

// RangeRequest is an optional query window. Missing bounds are filled by
// the planner.
type RangeRequest struct {
	RangeStart *availability.Instant `json:"range_start,omitempty"`
	RangeEnd   *availability.Instant `json:"range_end,omitempty"`
}

func (r RangeRequest) bounds() (start, end *time.Time) {
	return instantPtr(r.RangeStart), instantPtr(r.RangeEnd)
}

// inverted reports whether both bounds are set and end precedes start.
func (r RangeRequest) inverted() bool {
	start, end := r.bounds()
	return start != nil && end != nil && end.Before(*start)
}

// GroupRequest selects the users for the group endpoints.
type GroupRequest struct {
	RangeRequest
	UserIDs         []int64 `json:"user_ids" validate:"required,min=2,unique,dive,gt=0"`
	MinParticipants int     `json:"min_participants" validate:"omitempty,min=1"`
}

func (g GroupRequest) query() planner.GroupQuery {
	start, end := g.bounds()
	return planner.GroupQuery{
		UserIDs:         g.UserIDs,
		Start:           start,
		End:             end,
		MinParticipants: g.MinParticipants,
	}
}

// IntervalRequest is a concrete [start, end] slot.
type IntervalRequest struct {
	StartTime *availability.Instant `json:"start_time" validate:"required"`
	EndTime   *availability.Instant `json:"end_time" validate:"required"`
}

// BookingRequest creates a booking.
type BookingRequest struct {
	IntervalRequest
	ActivityID *int64 `json:"activity_id,omitempty" validate:"omitempty,gt=0"`
}

// BookingUpdateRequest changes a booking. Absent fields are kept.
type BookingUpdateRequest struct {
	ActivityID *int64                `json:"activity_id,omitempty" validate:"omitempty,gt=0"`
	StartTime  *availability.Instant `json:"start_time,omitempty"`
	EndTime    *availability.Instant `json:"end_time,omitempty"`
}

// ActivityRequest creates or replaces an activity.
type ActivityRequest struct {
	Name         string             `json:"name" validate:"required,max=200"`
	Description  string             `json:"description" validate:"max=5000"`
	Price        float64            `json:"price" validate:"gte=0"`
	Capacity     int                `json:"capacity" validate:"gte=0"`
	Location     string             `json:"location" validate:"max=500"`
	VendorID     int64              `json:"vendor_id" validate:"gte=0"`
	CategoryID   int64              `json:"category_id" validate:"required,gt=0"`
	Availability *availability.Spec `json:"availability,omitempty"`
}

// CategoryRequest creates or replaces a category.
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	ParentID *int64 `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}

// PreferencesRequest replaces the caller's preferred categories.
type PreferencesRequest struct {
	Name        string  `json:"name" validate:"max=200"`
	CategoryIDs []int64 `json:"category_ids" validate:"dive,gt=0"`
}

func instantPtr(i *availability.Instant) *time.Time {
	if i == nil {
		return nil
	}
	t := time.Time(*i)
	return &t
}
