// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package availability

import (
	"fmt"
	"time"
)

// Reason explains why an interval was rejected by Check.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonExcluded        Reason = "excluded date"
	ReasonDateMismatch    Reason = "date mismatch"
	ReasonOutsideRange    Reason = "outside date range"
	ReasonWeekday         Reason = "weekday not available"
	ReasonDayOfMonth      Reason = "day of month not available"
	ReasonOutsideWindow   Reason = "outside time window"
	ReasonNoAvailability  Reason = "no availability"
	ReasonInvalidInterval Reason = "invalid interval"
)

// Result is the outcome of a containment check.
type Result struct {
	Valid  bool
	Reason Reason
	// Detail adds context to Reason, such as the unknown type tag.
	Detail string
}

// Message renders a rejection for API clients. It returns an empty string
// for valid results.
func (r Result) Message() string {
	if r.Valid {
		return ""
	}
	if r.Detail != "" {
		return fmt.Sprintf("interval rejected: %s (%s)", r.Reason, r.Detail)
	}
	return fmt.Sprintf("interval rejected: %s", r.Reason)
}

var valid = Result{Valid: true}

func reject(r Reason) Result { return Result{Reason: r} }

// Check reports whether [start, end] lies entirely inside a single occurrence
// of spec. Exclusions are tested first and match by exact instant equality
// with start.
func Check(spec *Spec, start, end time.Time) Result {
	if end.Before(start) {
		return Result{Reason: ReasonInvalidInterval, Detail: "end is before start"}
	}
	if spec == nil {
		return Result{Reason: ReasonNoAvailability, Detail: "activity has no availability"}
	}
	if spec.excludes(start) {
		return reject(ReasonExcluded)
	}

	switch p := spec.Pattern.(type) {
	case Dates:
		return checkDates(p, start, end)
	case Range:
		return checkRecurring(p.Interval, p.Window, nil, start, end)
	case Weekly:
		return checkRecurring(p.Interval, p.Window, func(t time.Time) Result {
			if !p.hasDay(t) {
				return reject(ReasonWeekday)
			}
			return valid
		}, start, end)
	case Monthly:
		return checkRecurring(p.Interval, p.Window, func(t time.Time) Result {
			if !p.hasDay(t) {
				return reject(ReasonDayOfMonth)
			}
			return valid
		}, start, end)
	default:
		detail := "missing pattern"
		if k := spec.DeclaredKind(); k != "" {
			detail = fmt.Sprintf("unsupported or empty availability type %q", k)
		}
		return Result{Reason: ReasonNoAvailability, Detail: detail}
	}
}

func checkDates(p Dates, start, end time.Time) Result {
	sawDay := false
	for _, e := range p.Entries {
		if !sameDay(start, e.Date) {
			continue
		}
		sawDay = true
		if e.Window.Contains(start, end) {
			return valid
		}
	}
	if sawDay {
		return reject(ReasonOutsideWindow)
	}
	return reject(ReasonDateMismatch)
}

func checkRecurring(iv DateInterval, w Window, dayCheck func(time.Time) Result, start, end time.Time) Result {
	if start.Before(iv.Start) || end.After(iv.End) {
		return reject(ReasonOutsideRange)
	}
	if dayCheck != nil {
		if r := dayCheck(start); !r.Valid {
			return r
		}
	}
	if !w.Contains(start, end) {
		return reject(ReasonOutsideWindow)
	}
	return valid
}

// AvailableInRange reports whether any occurrence of spec overlaps the query
// range [rangeStart, rangeEnd]. Exclusions are not consulted. A nil or
// malformed spec has no occurrences.
func AvailableInRange(spec *Spec, rangeStart, rangeEnd time.Time) bool {
	if spec == nil {
		return false
	}
	switch p := spec.Pattern.(type) {
	case Dates:
		for _, e := range p.Entries {
			s, en := e.Window.On(e.Date)
			if DateIntervalsOverlap(s, en, rangeStart, rangeEnd) {
				return true
			}
		}
		return false
	case Range:
		return anyDayInRange(p.Interval, p.Window, nil, rangeStart, rangeEnd)
	case Weekly:
		return anyDayInRange(p.Interval, p.Window, p.hasDay, rangeStart, rangeEnd)
	case Monthly:
		return anyDayInRange(p.Interval, p.Window, p.hasDay, rangeStart, rangeEnd)
	default:
		return false
	}
}

// anyDayInRange walks each UTC day shared by the query range and the
// recurrence interval. A day qualifies when it passes match and its concrete
// slot overlaps both the query range and the recurrence interval.
func anyDayInRange(iv DateInterval, w Window, match func(time.Time) bool, rangeStart, rangeEnd time.Time) bool {
	first := maxTime(truncateDay(rangeStart), truncateDay(iv.Start))
	last := minTime(truncateDay(rangeEnd), truncateDay(iv.End))

	for i := 0; ; i++ {
		day := first.AddDate(0, 0, i)
		if day.After(last) {
			return false
		}
		if match != nil && !match(day) {
			continue
		}
		slotStart, slotEnd := w.On(day)
		if DateIntervalsOverlap(slotStart, slotEnd, rangeStart, rangeEnd) &&
			DateIntervalsOverlap(slotStart, slotEnd, iv.Start, iv.End) {
			return true
		}
	}
}

// Schedulable is anything that carries an availability spec.
type Schedulable interface {
	AvailabilitySpec() *Spec
}

// FilterAvailableInRange keeps the items whose spec has at least one
// occurrence overlapping [rangeStart, rangeEnd]. Input order is preserved.
func FilterAvailableInRange[T Schedulable](items []T, rangeStart, rangeEnd time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if AvailableInRange(it.AvailabilitySpec(), rangeStart, rangeEnd) {
			out = append(out, it)
		}
	}
	return out
}
