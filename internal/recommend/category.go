// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package recommend

import (
	"math"
	"sort"
)

// CategoryScore rates a candidate against one user's preferences.
//
// An exact subcategory match scores 1.0. Otherwise each preference whose
// parent equals the candidate's parent counts once; n such preferences score
// min(0.5+0.1(n-1), 1.0). A nil parent on either side never counts.
func CategoryScore(c Candidate, prefs PreferenceMap) float64 {
	if _, ok := prefs[c.SubcategoryID]; ok {
		return 1.0
	}
	if c.ParentCategoryID == nil {
		return 0
	}

	shared := 0
	for _, parent := range prefs {
		if parent != nil && *parent == *c.ParentCategoryID {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	return math.Min(0.5+0.1*float64(shared-1), 1.0)
}

// RankByCategory scores every candidate and sorts by score, highest first.
// Ties keep their input order.
func RankByCategory(candidates []Candidate, prefs PreferenceMap) []Scored {
	out := make([]Scored, len(candidates))
	for i, c := range candidates {
		out[i] = Scored{Candidate: c, Score: CategoryScore(c, prefs)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
