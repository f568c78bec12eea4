// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package planner

import (
	"errors"
	"fmt"

	"github.com/tomtom215/rendezvous/internal/availability"
	"github.com/tomtom215/rendezvous/internal/store"
)

// Not-found errors. All of them match store.ErrNotFound with errors.Is.
var (
	ErrUserNotFound     = fmt.Errorf("user %w", store.ErrNotFound)
	ErrActivityNotFound = fmt.Errorf("activity %w", store.ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", store.ErrNotFound)
	ErrBookingNotFound  = fmt.Errorf("booking %w", store.ErrNotFound)
)

// ErrTooFewUsers is returned when a group request names fewer than two
// distinct users.
var ErrTooFewUsers = errors.New("group recommendations require at least 2 distinct users")

// BookingRejectedError reports a slot outside the linked activity's
// availability.
type BookingRejectedError struct {
	Result availability.Result
}

func (e *BookingRejectedError) Error() string {
	return "booking rejected: " + e.Result.Message()
}

// SelfConflictError reports a slot that overlaps another booking of the
// same user.
type SelfConflictError struct {
	Existing availability.Booking
}

func (e *SelfConflictError) Error() string {
	return fmt.Sprintf("booking overlaps existing booking %s from %s to %s",
		e.Existing.ID,
		e.Existing.Start.UTC().Format("2006-01-02T15:04Z"),
		e.Existing.End.UTC().Format("2006-01-02T15:04Z"))
}

// InvalidInputError wraps authoring errors such as a malformed availability
// schedule or a dangling category parent.
type InvalidInputError struct {
	Err error
}

func (e *InvalidInputError) Error() string { return e.Err.Error() }
func (e *InvalidInputError) Unwrap() error { return e.Err }
