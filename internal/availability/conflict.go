// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package availability

import "time"

// Booking is an existing calendar entry belonging to a user.
type Booking struct {
	ID         string
	UserID     int64
	ActivityID *int64
	Start      time.Time
	End        time.Time
}

// HasConflict reports whether any booking overlaps an occurrence of spec.
// It stops at the first conflicting booking. A nil or malformed spec never
// conflicts.
//
// Recurring patterns are matched against the booking itself rather than by
// expanding occurrences: the recurrence interval must overlap the booking,
// the booking's start must fall on a listed weekday or day of month, and the
// booking's time of day must overlap the window.
func HasConflict(spec *Spec, bookings []Booking) bool {
	if spec == nil || spec.Pattern == nil {
		return false
	}
	for i := range bookings {
		if conflicts(spec.Pattern, &bookings[i]) {
			return true
		}
	}
	return false
}

func conflicts(p Pattern, b *Booking) bool {
	switch p := p.(type) {
	case Dates:
		for _, e := range p.Entries {
			s, en := e.Window.On(e.Date)
			if DateIntervalsOverlap(s, en, b.Start, b.End) {
				return true
			}
		}
		return false
	case Range:
		return DateIntervalsOverlap(p.Interval.Start, p.Interval.End, b.Start, b.End) &&
			TimeWindowsOverlap(b.Start, b.End, p.Window)
	case Weekly:
		return DateIntervalsOverlap(p.Interval.Start, p.Interval.End, b.Start, b.End) &&
			p.hasDay(b.Start) &&
			TimeWindowsOverlap(b.Start, b.End, p.Window)
	case Monthly:
		return DateIntervalsOverlap(p.Interval.Start, p.Interval.End, b.Start, b.End) &&
			p.hasDay(b.Start) &&
			TimeWindowsOverlap(b.Start, b.End, p.Window)
	default:
		return false
	}
}

// FilterConflictFree keeps the items whose spec conflicts with none of the
// bookings. Input order is preserved and the function is idempotent.
func FilterConflictFree[T Schedulable](items []T, bookings []Booking) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !HasConflict(it.AvailabilitySpec(), bookings) {
			out = append(out, it)
		}
	}
	return out
}

// FindSelfConflict looks for an existing booking that collides with
// [start, end]. A collision is any overlap, or either interval fully
// containing the other. The booking whose ID equals ignoreID is skipped so an
// update never collides with itself.
func FindSelfConflict(start, end time.Time, existing []Booking, ignoreID string) (Booking, bool) {
	for _, b := range existing {
		if ignoreID != "" && b.ID == ignoreID {
			continue
		}
		overlap := DateIntervalsOverlap(start, end, b.Start, b.End)
		newContains := !start.After(b.Start) && !end.Before(b.End)
		existingContains := !b.Start.After(start) && !b.End.Before(end)
		if overlap || newContains || existingContains {
			return b, true
		}
	}
	return Booking{}, false
}
