// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package recommend

import (
	"time"

	"github.com/tomtom215/rendezvous/internal/availability"
)

// PreferenceMap maps a preferred subcategory id to its parent category id.
// A nil parent means the preferred category is top-level or unknown.
type PreferenceMap map[int64]*int64

// Candidate is the engine's reduced view of an activity.
type Candidate struct {
	// ID is the activity identifier.
	ID int64 `json:"id"`

	// SubcategoryID is the category the activity is filed under.
	SubcategoryID int64 `json:"subcategory_id"`

	// ParentCategoryID is the parent of SubcategoryID, nil for top-level
	// categories.
	ParentCategoryID *int64 `json:"parent_category_id,omitempty"`

	// Availability is nil when the vendor has not published a schedule.
	Availability *availability.Spec `json:"availability,omitempty"`
}

// AvailabilitySpec implements availability.Schedulable.
func (c Candidate) AvailabilitySpec() *availability.Spec {
	return c.Availability
}

// Scored is a candidate with its category score attached.
type Scored struct {
	Candidate
	Score float64 `json:"score"`
}

// AvailabilitySpec implements availability.Schedulable.
func (s Scored) AvailabilitySpec() *availability.Spec {
	return s.Availability
}

// UserProfile is one participant's input to group ranking.
type UserProfile struct {
	UserID      int64                  `json:"user_id"`
	Preferences PreferenceMap          `json:"preferences"`
	Calendar    []availability.Booking `json:"-"`
}

// GroupScore is a candidate annotated with group attendance.
type GroupScore struct {
	Candidate

	// AvailableUsers lists attending user ids in profile order.
	AvailableUsers []int64 `json:"available_users"`

	// AvailabilityCount is len(AvailableUsers).
	AvailabilityCount int `json:"availability_count"`

	// AggregatedCategoryScore is the mean category score over AvailableUsers.
	AggregatedCategoryScore float64 `json:"aggregated_category_score"`

	// FinalScore is AvailabilityCount*1000 + AggregatedCategoryScore.
	FinalScore float64 `json:"final_score"`
}

// Window is a query range. A zero bound means the caller did not supply it.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsBounded reports whether both ends are set.
func (w Window) IsBounded() bool {
	return !w.Start.IsZero() && !w.End.IsZero()
}

// GroupOptions tunes group ranking.
type GroupOptions struct {
	// Window restricts candidates to those with an occurrence inside it.
	// It applies only when both bounds are set.
	Window Window

	// MinParticipants drops candidates with fewer attending users.
	// Zero or negative selects DefaultMinParticipants.
	MinParticipants int
}

// GroupStats summarizes how reachable the candidate set is for a group.
type GroupStats struct {
	TotalActivities              int         `json:"total_activities"`
	ActivitiesForAllUsers        int         `json:"activities_for_all_users"`
	ActivitiesByParticipantCount map[int]int `json:"activities_by_participant_count"`
	AverageAvailability          float64     `json:"average_availability"`
}
