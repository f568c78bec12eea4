// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

/*
Package models defines the persisted entities and the HTTP response envelope.

Entities:

  - Category: a node in the two-level category tree (ParentID nil for top-level)
  - Activity: a bookable offering with an optional availability schedule
  - User: a participant and the category ids they prefer
  - CalendarEvent: a booking on a user's calendar, optionally tied to an activity

The ranking engine never sees these types directly. The planner converts them
into recommend.Candidate and availability.Booking values.
*/
package models
