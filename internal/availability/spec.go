// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Kind is the wire tag of an availability pattern.
type Kind string

const (
	KindDates   Kind = "dates"
	KindRange   Kind = "range"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
)

// Pattern is one of Dates, Range, Weekly or Monthly.
type Pattern interface {
	Kind() Kind
	validate() error
}

// DateSlot is a single calendar date with its own window.
type DateSlot struct {
	Date   time.Time
	Window Window
}

// Dates lists explicit calendar dates. Only the UTC calendar day of each
// entry's Date is significant.
type Dates struct {
	Entries []DateSlot
}

// Range covers every day in Interval with one shared window.
type Range struct {
	Interval DateInterval
	Window   Window
}

// Weekly covers the listed weekdays in Interval.
type Weekly struct {
	Interval DateInterval
	Days     []time.Weekday
	Window   Window
}

// Monthly covers the listed days of the month (1-31) in Interval.
type Monthly struct {
	Interval DateInterval
	Days     []int
	Window   Window
}

func (Dates) Kind() Kind   { return KindDates }
func (Range) Kind() Kind   { return KindRange }
func (Weekly) Kind() Kind  { return KindWeekly }
func (Monthly) Kind() Kind { return KindMonthly }

func (d Dates) validate() error {
	if len(d.Entries) == 0 {
		return errors.New("dates: at least one entry is required")
	}
	for i, e := range d.Entries {
		if e.Date.IsZero() {
			return fmt.Errorf("dates[%d]: date is required", i)
		}
		if err := e.Window.validate(); err != nil {
			return fmt.Errorf("dates[%d]: %w", i, err)
		}
	}
	return nil
}

func (r Range) validate() error {
	if err := r.Interval.validate(); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	if err := r.Window.validate(); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	return nil
}

func (w Weekly) validate() error {
	if len(w.Days) == 0 {
		return errors.New("weekly: at least one day is required")
	}
	for _, d := range w.Days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("weekly: day %d out of range 0-6", d)
		}
	}
	if err := w.Interval.validate(); err != nil {
		return fmt.Errorf("weekly: %w", err)
	}
	if err := w.Window.validate(); err != nil {
		return fmt.Errorf("weekly: %w", err)
	}
	return nil
}

func (m Monthly) validate() error {
	if len(m.Days) == 0 {
		return errors.New("monthly: at least one day is required")
	}
	for _, d := range m.Days {
		if d < 1 || d > 31 {
			return fmt.Errorf("monthly: day %d out of range 1-31", d)
		}
	}
	if err := m.Interval.validate(); err != nil {
		return fmt.Errorf("monthly: %w", err)
	}
	if err := m.Window.validate(); err != nil {
		return fmt.Errorf("monthly: %w", err)
	}
	return nil
}

func (w Weekly) hasDay(t time.Time) bool {
	wd := t.UTC().Weekday()
	for _, d := range w.Days {
		if d == wd {
			return true
		}
	}
	return false
}

func (m Monthly) hasDay(t time.Time) bool {
	md := t.UTC().Day()
	for _, d := range m.Days {
		if d == md {
			return true
		}
	}
	return false
}

// Spec is an activity's availability: one pattern plus excluded instants.
//
// A Spec decoded from a document with an unknown type, or with a known type
// whose payload is missing, has a nil Pattern. Such a spec has no
// occurrences; DeclaredKind still reports the tag that was present.
type Spec struct {
	Pattern    Pattern
	Exclusions []time.Time

	declared Kind
}

// NewSpec wraps a pattern with optional exclusions.
func NewSpec(p Pattern, exclusions ...time.Time) *Spec {
	return &Spec{Pattern: p, Exclusions: exclusions}
}

// DeclaredKind returns the pattern's kind, or the raw wire tag when the
// pattern could not be decoded.
func (s *Spec) DeclaredKind() Kind {
	if s == nil {
		return ""
	}
	if s.Pattern != nil {
		return s.Pattern.Kind()
	}
	return s.declared
}

// Validate enforces authoring rules: weekday 0-6, day of month 1-31, windows
// that end after they start and date intervals whose end is not before their
// start. The evaluator never calls it.
func (s *Spec) Validate() error {
	if s == nil || s.Pattern == nil {
		if s != nil && s.declared != "" {
			return fmt.Errorf("unsupported availability type %q", s.declared)
		}
		return errors.New("availability type is required")
	}
	if err := s.Pattern.validate(); err != nil {
		return err
	}
	for i, ex := range s.Exclusions {
		if ex.IsZero() {
			return fmt.Errorf("exclusions[%d]: instant is required", i)
		}
	}
	return nil
}

// excludes reports whether start matches an excluded instant exactly.
func (s *Spec) excludes(start time.Time) bool {
	for _, ex := range s.Exclusions {
		if ex.Equal(start) {
			return true
		}
	}
	return false
}

// wire representation

type wireDateSlot struct {
	Date Instant `json:"date"`
	Time Window  `json:"time"`
}

type wireRange struct {
	Date DateInterval `json:"date"`
	Time Window       `json:"time"`
}

type wireRecurring struct {
	Days []int        `json:"days"`
	Date DateInterval `json:"date"`
	Time Window       `json:"time"`
}

type wireSpec struct {
	Type       Kind           `json:"type"`
	Dates      []wireDateSlot `json:"dates,omitempty"`
	Range      *wireRange     `json:"range,omitempty"`
	Weekly     *wireRecurring `json:"weekly,omitempty"`
	Monthly    *wireRecurring `json:"monthly,omitempty"`
	Exclusions []Instant      `json:"exclusions,omitempty"`
}

// MarshalJSON encodes the spec in its tagged wire form.
func (s Spec) MarshalJSON() ([]byte, error) {
	w := wireSpec{Type: s.declared}
	switch p := s.Pattern.(type) {
	case Dates:
		w.Type = KindDates
		w.Dates = make([]wireDateSlot, len(p.Entries))
		for i, e := range p.Entries {
			w.Dates[i] = wireDateSlot{Date: Instant(e.Date), Time: e.Window}
		}
	case Range:
		w.Type = KindRange
		w.Range = &wireRange{Date: p.Interval, Time: p.Window}
	case Weekly:
		w.Type = KindWeekly
		days := make([]int, len(p.Days))
		for i, d := range p.Days {
			days[i] = int(d)
		}
		w.Weekly = &wireRecurring{Days: days, Date: p.Interval, Time: p.Window}
	case Monthly:
		w.Type = KindMonthly
		w.Monthly = &wireRecurring{Days: append([]int(nil), p.Days...), Date: p.Interval, Time: p.Window}
	}
	for _, ex := range s.Exclusions {
		w.Exclusions = append(w.Exclusions, Instant(ex))
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the tagged wire form. Unknown types and missing
// payloads decode to a nil Pattern rather than an error; malformed field
// values (bad dates, bad HH:mm) are errors.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var w wireSpec
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = Spec{declared: w.Type}
	for _, ex := range w.Exclusions {
		s.Exclusions = append(s.Exclusions, time.Time(ex))
	}

	switch w.Type {
	case KindDates:
		if len(w.Dates) == 0 {
			return nil
		}
		entries := make([]DateSlot, len(w.Dates))
		for i, d := range w.Dates {
			entries[i] = DateSlot{Date: time.Time(d.Date), Window: d.Time}
		}
		s.Pattern = Dates{Entries: entries}
	case KindRange:
		if w.Range != nil {
			s.Pattern = Range{Interval: w.Range.Date, Window: w.Range.Time}
		}
	case KindWeekly:
		if w.Weekly != nil {
			days := make([]time.Weekday, len(w.Weekly.Days))
			for i, d := range w.Weekly.Days {
				days[i] = time.Weekday(d)
			}
			s.Pattern = Weekly{Interval: w.Weekly.Date, Days: days, Window: w.Weekly.Time}
		}
	case KindMonthly:
		if w.Monthly != nil {
			s.Pattern = Monthly{Interval: w.Monthly.Date, Days: w.Monthly.Days, Window: w.Monthly.Time}
		}
	}
	return nil
}
