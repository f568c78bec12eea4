// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

// Package recommend ranks bookable activities for a single user or a group.
//
// # Pipeline
//
// Single-user ranking runs four stages over a candidate snapshot:
//
//  1. Drop candidates without an availability specification
//  2. Keep candidates with at least one occurrence in the query window
//  3. Keep candidates that conflict with none of the user's bookings
//  4. Score by category preference and sort descending (stable)
//
// Group ranking evaluates every candidate against each member separately,
// counts the members who can attend, and orders by
//
//	finalScore = availabilityCount*1000 + aggregatedCategoryScore
//
// Because the aggregated category score is always below 1.0, attendance
// always dominates and category affinity only breaks ties.
//
// # Category Scoring
//
//   - Activity subcategory is a preference key: 1.0
//   - n preferences share the activity's parent category: min(0.5+0.1(n-1), 1.0)
//   - Otherwise: 0.0
//
// # Usage
//
//	window := recommend.ResolveWindow(req.Start, req.End, time.Now(), cfg.DefaultWindow)
//	ranked := recommend.RankForUser(candidates, prefs, calendar, window)
//	page := pagination.Paginate(ranked, pagination.Options{Page: 1, Limit: 10})
//
// # Thread Safety
//
// All functions are pure. Inputs are never mutated and outputs are freshly
// allocated, so concurrent calls over shared snapshots are safe.
package recommend
