// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package recommend

import (
	"github.com/tomtom215/rendezvous/internal/availability"
	"github.com/tomtom215/rendezvous/internal/pagination"
)

// RankForUser filters candidates to those with an occurrence inside window
// and no conflict with calendar, then ranks them by category preference.
//
// Each candidate is checked against the fixed calendar on its own; accepting
// one candidate never affects another.
func RankForUser(candidates []Candidate, prefs PreferenceMap, calendar []availability.Booking, window Window) []Scored {
	scheduled := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Availability != nil {
			scheduled = append(scheduled, c)
		}
	}

	inRange := availability.FilterAvailableInRange(scheduled, window.Start, window.End)
	free := availability.FilterConflictFree(inRange, calendar)
	return RankByCategory(free, prefs)
}

// RecommendForUser is RankForUser followed by pagination.
func RecommendForUser(candidates []Candidate, prefs PreferenceMap, calendar []availability.Booking, window Window, opts pagination.Options) pagination.Result[Scored] {
	return pagination.Paginate(RankForUser(candidates, prefs, calendar, window), opts)
}
