// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package availability

import "testing"

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"14:00", 840},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		if got := MinutesOfDay(tt.in); got != tt.want {
			t.Errorf("MinutesOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	for _, bad := range []string{"", "9:00", "24:00", "12:60", "ab:cd", "12-00"} {
		if _, err := ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q) expected error", bad)
		}
	}
	c, err := ParseClock("07:05")
	if err != nil {
		t.Fatalf("ParseClock() error = %v", err)
	}
	if c.String() != "07:05" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestTimeWindowsOverlap(t *testing.T) {
	w := window("10:00", "12:00")
	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "2024-08-01T10:30:00Z", "2024-08-01T11:00:00Z", true},
		{"straddles start", "2024-08-01T09:00:00Z", "2024-08-01T10:30:00Z", true},
		{"touches end", "2024-08-01T12:00:00Z", "2024-08-01T13:00:00Z", false},
		{"touches start", "2024-08-01T09:00:00Z", "2024-08-01T10:00:00Z", false},
		{"other date same time", "2030-01-15T11:00:00Z", "2030-01-15T11:30:00Z", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeWindowsOverlap(at(tt.start), at(tt.end), w); got != tt.want {
				t.Errorf("TimeWindowsOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateIntervalsOverlap(t *testing.T) {
	a1, a2 := at("2024-08-01T10:00:00Z"), at("2024-08-01T12:00:00Z")
	tests := []struct {
		name   string
		b1, b2 string
		want   bool
	}{
		{"overlap", "2024-08-01T11:00:00Z", "2024-08-01T13:00:00Z", true},
		{"contained", "2024-08-01T10:30:00Z", "2024-08-01T11:00:00Z", true},
		{"touching after", "2024-08-01T12:00:00Z", "2024-08-01T13:00:00Z", false},
		{"touching before", "2024-08-01T09:00:00Z", "2024-08-01T10:00:00Z", false},
		{"disjoint", "2024-08-02T10:00:00Z", "2024-08-02T12:00:00Z", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateIntervalsOverlap(a1, a2, at(tt.b1), at(tt.b2)); got != tt.want {
				t.Errorf("DateIntervalsOverlap() = %v, want %v", got, tt.want)
			}
			if got := DateIntervalsOverlap(at(tt.b1), at(tt.b2), a1, a2); got != tt.want {
				t.Errorf("DateIntervalsOverlap() not symmetric")
			}
		})
	}
}
