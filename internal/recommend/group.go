// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package recommend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/rendezvous/internal/availability"
	"github.com/tomtom215/rendezvous/internal/pagination"
)

// ErrTooFewProfiles is returned when group ranking is called with fewer than
// two profiles. It signals a caller bug, not a data problem.
var ErrTooFewProfiles = errors.New("group ranking requires at least 2 user profiles")

// RankForGroup scores every candidate by how many profiles can attend it and
// how well it fits the attendees' preferences.
//
// A profile can attend a candidate when the candidate has an occurrence in
// opts.Window (only checked if both bounds are set) and conflicts with none
// of the profile's bookings. Candidates with fewer attendees than
// opts.MinParticipants are dropped. The result is sorted by FinalScore,
// highest first, with ties in input order.
func RankForGroup(candidates []Candidate, profiles []UserProfile, opts GroupOptions) ([]GroupScore, error) {
	if len(profiles) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewProfiles, len(profiles))
	}
	return rankForGroup(candidates, profiles, opts.Window, opts.MinParticipants), nil
}

func rankForGroup(candidates []Candidate, profiles []UserProfile, window Window, minParticipants int) []GroupScore {
	if minParticipants <= 0 {
		minParticipants = DefaultMinParticipants
	}

	out := make([]GroupScore, 0, len(candidates))
	for _, c := range candidates {
		attending := availableProfiles(c, profiles, window)
		if len(attending) < minParticipants {
			continue
		}

		users := make([]int64, len(attending))
		total := 0.0
		for i, p := range attending {
			users[i] = p.UserID
			total += CategoryScore(c, p.Preferences)
		}
		aggregated := 0.0
		if len(attending) > 0 {
			aggregated = total / float64(len(attending))
		}

		out = append(out, GroupScore{
			Candidate:               c,
			AvailableUsers:          users,
			AvailabilityCount:       len(attending),
			AggregatedCategoryScore: aggregated,
			FinalScore:              float64(len(attending))*participantWeight + aggregated,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	return out
}

func availableProfiles(c Candidate, profiles []UserProfile, window Window) []UserProfile {
	// The range test does not depend on the profile.
	if window.IsBounded() && !availability.AvailableInRange(c.Availability, window.Start, window.End) {
		return nil
	}
	attending := make([]UserProfile, 0, len(profiles))
	for _, p := range profiles {
		if !availability.HasConflict(c.Availability, p.Calendar) {
			attending = append(attending, p)
		}
	}
	return attending
}

// RecommendForGroup is RankForGroup followed by pagination.
func RecommendForGroup(candidates []Candidate, profiles []UserProfile, opts GroupOptions, page pagination.Options) (pagination.Result[GroupScore], error) {
	ranked, err := RankForGroup(candidates, profiles, opts)
	if err != nil {
		return pagination.Result[GroupScore]{}, err
	}
	return pagination.Paginate(ranked, page), nil
}

// RankForAllUsers keeps only candidates every profile can attend.
func RankForAllUsers(candidates []Candidate, profiles []UserProfile, window Window) ([]GroupScore, error) {
	return RankForGroup(candidates, profiles, GroupOptions{Window: window, MinParticipants: len(profiles)})
}

// GroupByParticipants buckets candidates with at least two attendees by exact
// attendee count. Each bucket is sorted by aggregated category score,
// highest first.
func GroupByParticipants(candidates []Candidate, profiles []UserProfile, window Window) (map[int][]GroupScore, error) {
	ranked, err := RankForGroup(candidates, profiles, GroupOptions{Window: window, MinParticipants: 2})
	if err != nil {
		return nil, err
	}

	buckets := make(map[int][]GroupScore)
	for _, g := range ranked {
		buckets[g.AvailabilityCount] = append(buckets[g.AvailabilityCount], g)
	}
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].AggregatedCategoryScore > bucket[j].AggregatedCategoryScore
		})
	}
	return buckets, nil
}

// Stats summarizes group coverage over candidates with at least one
// attendee.
func Stats(candidates []Candidate, profiles []UserProfile, window Window) (GroupStats, error) {
	ranked, err := RankForGroup(candidates, profiles, GroupOptions{Window: window, MinParticipants: 1})
	if err != nil {
		return GroupStats{}, err
	}

	stats := GroupStats{
		TotalActivities:              len(candidates),
		ActivitiesByParticipantCount: make(map[int]int),
	}
	sum := 0
	for _, g := range ranked {
		if g.AvailabilityCount == len(profiles) {
			stats.ActivitiesForAllUsers++
		}
		stats.ActivitiesByParticipantCount[g.AvailabilityCount]++
		sum += g.AvailabilityCount
	}
	if len(ranked) > 0 {
		stats.AverageAvailability = float64(sum) / float64(len(ranked))
	}
	return stats, nil
}
