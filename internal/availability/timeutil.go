// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// dateLayout is the short calendar-date form accepted alongside RFC 3339.
const dateLayout = "2006-01-02"

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a strict "HH:mm" string (00:00 to 23:59).
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return Clock{}, fmt.Errorf("invalid time %q: expected HH:mm", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// MustClock is ParseClock for literals known to be valid. It panics otherwise.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock as "HH:mm".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalJSON encodes the clock as an "HH:mm" string.
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes an "HH:mm" string.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MinutesOfDay converts an "HH:mm" string to minutes since midnight.
//
// Callers are expected to pass well-formed input. Malformed components are
// read as zero rather than reported.
func MinutesOfDay(hhmm string) int {
	hh, mm, _ := strings.Cut(hhmm, ":")
	h, _ := strconv.Atoi(strings.TrimSpace(hh))
	m, _ := strconv.Atoi(strings.TrimSpace(mm))
	return h*60 + m
}

// Window is a time-of-day slot. End is strictly after Start for a valid
// window; windows never cross midnight.
type Window struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// NewWindow builds a window from two "HH:mm" strings.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, fmt.Errorf("window start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, fmt.Errorf("window end: %w", err)
	}
	return Window{Start: s, End: e}, nil
}

// On returns the concrete UTC instants of the window on the given day.
func (w Window) On(day time.Time) (time.Time, time.Time) {
	d := truncateDay(day)
	return d.Add(time.Duration(w.Start.Minutes()) * time.Minute),
		d.Add(time.Duration(w.End.Minutes()) * time.Minute)
}

// Contains reports whether [start, end] lies inside the window when the
// window is placed on start's UTC day.
func (w Window) Contains(start, end time.Time) bool {
	slotStart, slotEnd := w.On(start)
	return !start.Before(slotStart) && !end.After(slotEnd)
}

func (w Window) validate() error {
	if w.End.Minutes() <= w.Start.Minutes() {
		return fmt.Errorf("window end %s must be after start %s", w.End, w.Start)
	}
	return nil
}

// DateInterval is an inclusive pair of instants.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

type wireInterval struct {
	Start Instant `json:"start"`
	End   Instant `json:"end"`
}

// MarshalJSON encodes the interval as {"start": RFC3339, "end": RFC3339}.
func (d DateInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireInterval{Start: Instant(d.Start), End: Instant(d.End)})
}

// UnmarshalJSON accepts RFC 3339 or YYYY-MM-DD bounds.
func (d *DateInterval) UnmarshalJSON(data []byte) error {
	var w wireInterval
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.Start, d.End = time.Time(w.Start), time.Time(w.End)
	return nil
}

func (d DateInterval) validate() error {
	if d.Start.IsZero() || d.End.IsZero() {
		return fmt.Errorf("date interval requires both start and end")
	}
	if d.End.Before(d.Start) {
		return fmt.Errorf("date interval end %s is before start %s",
			d.End.Format(time.RFC3339), d.Start.Format(time.RFC3339))
	}
	return nil
}

// Instant is a time.Time with lenient JSON decoding. It is always normalized
// to UTC.
type Instant time.Time

// ParseInstant parses RFC 3339 (with or without fractional seconds) or a bare
// YYYY-MM-DD date, returning a UTC instant.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", s)
}

// MarshalJSON encodes the instant in RFC 3339 UTC.
func (i Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(i).UTC().Format(time.RFC3339))
}

// UnmarshalJSON decodes via ParseInstant.
func (i *Instant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := ParseInstant(s)
	if err != nil {
		return err
	}
	*i = Instant(t)
	return nil
}

// TimeWindowsOverlap reports whether the time-of-day span of an event
// overlaps a window. Only the UTC hour and minute of each instant are
// compared; the calendar date is ignored.
func TimeWindowsOverlap(evStart, evEnd time.Time, w Window) bool {
	s := minuteOf(evStart)
	e := minuteOf(evEnd)
	return s < w.End.Minutes() && w.Start.Minutes() < e
}

// DateIntervalsOverlap reports whether two intervals share a non-empty
// stretch of time. Touching endpoints do not overlap.
func DateIntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func minuteOf(t time.Time) int {
	u := t.UTC()
	return u.Hour()*60 + u.Minute()
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
