// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

// Package availability evaluates activity availability specifications against
// concrete time intervals and user calendars.
//
// # Availability Specifications
//
// A Spec carries exactly one Pattern plus an optional list of excluded
// instants:
//
//   - Dates: explicit calendar dates, each with its own time-of-day window
//   - Range: every day inside a date interval, one shared window
//   - Weekly: days of the week inside a date interval (0=Sunday .. 6=Saturday)
//   - Monthly: days of the month (1-31) inside a date interval
//
// All calendar arithmetic happens on a single fixed clock: UTC. Time-of-day
// windows never wrap past midnight.
//
// # Operations
//
// Three questions are answered, each with its own semantics:
//
//   - Check: does [start, end] fall entirely inside one occurrence? (containment)
//   - AvailableInRange: does any occurrence touch a query range? (overlap)
//   - HasConflict: does any occurrence overlap an existing booking? (overlap)
//
// Intervals are open for overlap purposes: two intervals that merely touch at
// an endpoint never overlap.
//
// # Failure Handling
//
// Malformed specifications never panic and never return errors from the
// evaluation functions. Containment reports a Result with a Reason; range
// and conflict checks treat the spec as having no occurrences.
//
// # Thread Safety
//
// Every function in this package is pure and safe for concurrent use.
package availability
