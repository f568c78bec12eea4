// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/rendezvous/internal/availability"
	"github.com/tomtom215/rendezvous/internal/metrics"
	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/pagination"
	"github.com/tomtom215/rendezvous/internal/recommend"
	"github.com/tomtom215/rendezvous/internal/store"
)

// ActivityRecommendation is an activity recommended to a single user.
type ActivityRecommendation struct {
	models.Activity
	Score float64 `json:"score"`
}

// GroupScoreSummary is the group ranking detail attached to an activity.
type GroupScoreSummary struct {
	AvailableUsers          []int64 `json:"available_users"`
	AvailabilityCount       int     `json:"availability_count"`
	AggregatedCategoryScore float64 `json:"aggregated_category_score"`
	FinalScore              float64 `json:"final_score"`
}

// GroupRecommendation is an activity recommended to a group.
type GroupRecommendation struct {
	models.Activity
	GroupScore GroupScoreSummary `json:"group_score"`
}

// GroupQuery selects the users and window for the group operations.
type GroupQuery struct {
	UserIDs []int64
	Start   *time.Time
	End     *time.Time

	// MinParticipants overrides the configured threshold when positive.
	MinParticipants int
}

// ResolveWindow fills missing bounds: start defaults to now (truncated to the
// minute) and end to start plus the configured span.
func (s *Service) ResolveWindow(start, end *time.Time) recommend.Window {
	now := s.now().UTC().Truncate(time.Minute)
	return recommend.ResolveWindow(start, end, now, s.cfg.WindowSpan)
}

// Recommend ranks activities for one user over the window and returns the
// requested page with full activity records.
func (s *Service) Recommend(ctx context.Context, userID int64, start, end *time.Time, page pagination.Options) (pagination.Result[ActivityRecommendation], error) {
	window := s.ResolveWindow(start, end)
	ranked, err := s.rankForUser(ctx, userID, window)
	if err != nil {
		return pagination.Result[ActivityRecommendation]{}, err
	}

	return pagination.Fetch(ctx, page,
		func(context.Context) (int, error) { return len(ranked), nil },
		func(ctx context.Context, p pagination.Params) ([]ActivityRecommendation, error) {
			return s.hydrateScored(ctx, pageOf(ranked, p))
		},
	)
}

func (s *Service) rankForUser(ctx context.Context, userID int64, window recommend.Window) ([]recommend.Scored, error) {
	key := fmt.Sprintf("single:%d:%s", userID, windowKey(window))
	if s.singleCache != nil {
		if ranked, ok := s.singleCache.Get(key); ok {
			metrics.RecordCacheLookup("single", true)
			return ranked, nil
		}
		metrics.RecordCacheLookup("single", false)
	}
	stamp := s.userStamp(userID)

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	ranked := recommend.RankForUser(candidates, profile.Preferences, profile.Calendar, window)
	metrics.RecordRanking("single", len(candidates), len(ranked), time.Since(began))

	s.logger.Debug().
		Int64("user_id", userID).
		Time("range_start", window.Start).
		Time("range_end", window.End).
		Int("candidates", len(candidates)).
		Int("ranked", len(ranked)).
		Msg("Ranked activities for user")

	s.storeSingle(key, userID, stamp, ranked)
	return ranked, nil
}

// RecommendGroup ranks activities by how many of the users can attend and
// how well they fit the attendees' preferences.
func (s *Service) RecommendGroup(ctx context.Context, q GroupQuery, page pagination.Options) (pagination.Result[GroupRecommendation], error) {
	window := s.ResolveWindow(q.Start, q.End)
	ranked, err := s.rankForGroup(ctx, q, window)
	if err != nil {
		return pagination.Result[GroupRecommendation]{}, err
	}

	return pagination.Fetch(ctx, page,
		func(context.Context) (int, error) { return len(ranked), nil },
		func(ctx context.Context, p pagination.Params) ([]GroupRecommendation, error) {
			return s.hydrateGroup(ctx, pageOf(ranked, p))
		},
	)
}

// GroupByParticipants buckets group results by exact attendee count.
func (s *Service) GroupByParticipants(ctx context.Context, q GroupQuery) (map[int][]GroupRecommendation, error) {
	window := s.ResolveWindow(q.Start, q.End)
	_, profiles, candidates, err := s.loadGroup(ctx, q.UserIDs)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	buckets, err := recommend.GroupByParticipants(candidates, profiles, window)
	if err != nil {
		return nil, err
	}
	kept := 0
	for _, b := range buckets {
		kept += len(b)
	}
	metrics.RecordRanking("by_participants", len(candidates), kept, time.Since(began))

	out := make(map[int][]GroupRecommendation, len(buckets))
	for count, bucket := range buckets {
		hydrated, err := s.hydrateGroup(ctx, bucket)
		if err != nil {
			return nil, err
		}
		out[count] = hydrated
	}
	return out, nil
}

// GroupStats summarizes how much of the catalog the group can attend.
func (s *Service) GroupStats(ctx context.Context, q GroupQuery) (recommend.GroupStats, error) {
	window := s.ResolveWindow(q.Start, q.End)
	_, profiles, candidates, err := s.loadGroup(ctx, q.UserIDs)
	if err != nil {
		return recommend.GroupStats{}, err
	}

	began := time.Now()
	stats, err := recommend.Stats(candidates, profiles, window)
	if err != nil {
		return recommend.GroupStats{}, err
	}
	kept := 0
	for _, n := range stats.ActivitiesByParticipantCount {
		kept += n
	}
	metrics.RecordRanking("stats", len(candidates), kept, time.Since(began))
	return stats, nil
}

// CheckAvailability tests whether [start, end) fits the activity's schedule.
func (s *Service) CheckAvailability(ctx context.Context, activityID int64, start, end time.Time) (availability.Result, error) {
	a, err := s.getActivity(ctx, activityID)
	if err != nil {
		return availability.Result{}, err
	}
	return availability.Check(a.Availability, start.UTC(), end.UTC()), nil
}

func (s *Service) rankForGroup(ctx context.Context, q GroupQuery, window recommend.Window) ([]recommend.GroupScore, error) {
	minParticipants := q.MinParticipants
	if minParticipants <= 0 {
		minParticipants = s.cfg.MinParticipants
	}

	ids, err := distinctUsers(q.UserIDs)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("group:%s:%d:%s", joinIDs(ids), minParticipants, windowKey(window))
	if s.groupCache != nil {
		if ranked, ok := s.groupCache.Get(key); ok {
			metrics.RecordCacheLookup("group", true)
			return ranked, nil
		}
		metrics.RecordCacheLookup("group", false)
	}
	stamp := s.groupStamp()

	_, profiles, candidates, err := s.loadGroup(ctx, ids)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	ranked, err := recommend.RankForGroup(candidates, profiles, recommend.GroupOptions{
		Window:          window,
		MinParticipants: minParticipants,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordRanking("group", len(candidates), len(ranked), time.Since(began))

	s.logTopGroup(ids, ranked)

	s.storeGroup(key, stamp, ranked)
	return ranked, nil
}

func (s *Service) logTopGroup(userIDs []int64, ranked []recommend.GroupScore) {
	n := min(s.cfg.TopLogged, len(ranked))
	if n == 0 {
		return
	}
	for i, g := range ranked[:n] {
		s.logger.Info().
			Ints64("user_ids", userIDs).
			Int("rank", i+1).
			Int64("activity_id", g.ID).
			Int("availability_count", g.AvailabilityCount).
			Float64("aggregated_category_score", g.AggregatedCategoryScore).
			Float64("final_score", g.FinalScore).
			Msg("Group recommendation")
	}
}

// loadGroup validates the user list and loads every profile plus the
// scheduled candidates.
func (s *Service) loadGroup(ctx context.Context, userIDs []int64) ([]int64, []recommend.UserProfile, []recommend.Candidate, error) {
	ids, err := distinctUsers(userIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	profiles := make([]recommend.UserProfile, 0, len(ids))
	for _, id := range ids {
		p, err := s.loadProfile(ctx, id)
		if err != nil {
			return nil, nil, nil, err
		}
		profiles = append(profiles, p)
	}

	candidates, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	// Group ranking treats a candidate without a schedule as attendable by
	// everyone; only scheduled activities are offered to groups.
	scheduled := candidates[:0]
	for _, c := range candidates {
		if c.Availability != nil {
			scheduled = append(scheduled, c)
		}
	}
	return ids, profiles, scheduled, nil
}

// loadProfile builds a user's preference map and calendar.
func (s *Service) loadProfile(ctx context.Context, userID int64) (recommend.UserProfile, error) {
	user, err := guard(s, "get_user", func() (*models.User, error) {
		return s.store.GetUser(ctx, userID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return recommend.UserProfile{}, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	if err != nil {
		return recommend.UserProfile{}, fmt.Errorf("load user %d: %w", userID, err)
	}

	prefs, err := s.resolvePreferences(ctx, user.Preferences)
	if err != nil {
		return recommend.UserProfile{}, err
	}

	events, err := guard(s, "list_events", func() ([]models.CalendarEvent, error) {
		return s.store.ListEventsByUser(ctx, userID)
	})
	if err != nil {
		return recommend.UserProfile{}, fmt.Errorf("load calendar for user %d: %w", userID, err)
	}

	return recommend.UserProfile{
		UserID:      userID,
		Preferences: prefs,
		Calendar:    models.Bookings(events),
	}, nil
}

// resolvePreferences maps each preferred category to its parent. A category
// that no longer exists keeps its entry with a nil parent.
func (s *Service) resolvePreferences(ctx context.Context, ids []int64) (recommend.PreferenceMap, error) {
	prefs := make(recommend.PreferenceMap, len(ids))
	if len(ids) == 0 {
		return prefs, nil
	}
	cats, err := guard(s, "get_categories", func() (map[int64]models.Category, error) {
		return s.store.GetCategories(ctx, ids)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve preferences: %w", err)
	}
	for _, id := range ids {
		if c, ok := cats[id]; ok {
			prefs[id] = c.ParentID
		} else {
			prefs[id] = nil
		}
	}
	return prefs, nil
}

// loadCandidates converts every stored activity into an engine candidate.
func (s *Service) loadCandidates(ctx context.Context) ([]recommend.Candidate, error) {
	activities, err := guard(s, "list_activities", func() ([]models.Activity, error) {
		return s.store.ListActivities(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	catIDs := make([]int64, 0, len(activities))
	for _, a := range activities {
		if !slices.Contains(catIDs, a.CategoryID) {
			catIDs = append(catIDs, a.CategoryID)
		}
	}
	cats, err := guard(s, "get_categories", func() (map[int64]models.Category, error) {
		return s.store.GetCategories(ctx, catIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("load activity categories: %w", err)
	}

	candidates := make([]recommend.Candidate, len(activities))
	for i, a := range activities {
		candidates[i] = recommend.Candidate{
			ID:               a.ID,
			SubcategoryID:    a.CategoryID,
			ParentCategoryID: cats[a.CategoryID].ParentID,
			Availability:     a.Availability,
		}
	}
	return candidates, nil
}

func (s *Service) getActivity(ctx context.Context, id int64) (*models.Activity, error) {
	a, err := guard(s, "get_activity", func() (*models.Activity, error) {
		return s.store.GetActivity(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrActivityNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load activity %d: %w", id, err)
	}
	return a, nil
}

// hydrateScored loads full activities for a page of results. Activities
// deleted since ranking are dropped.
func (s *Service) hydrateScored(ctx context.Context, ranked []recommend.Scored) ([]ActivityRecommendation, error) {
	ids := make([]int64, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	byID, err := s.activitiesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ActivityRecommendation, 0, len(ranked))
	for _, r := range ranked {
		if a, ok := byID[r.ID]; ok {
			out = append(out, ActivityRecommendation{Activity: a, Score: r.Score})
		}
	}
	return out, nil
}

func (s *Service) hydrateGroup(ctx context.Context, ranked []recommend.GroupScore) ([]GroupRecommendation, error) {
	ids := make([]int64, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	byID, err := s.activitiesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]GroupRecommendation, 0, len(ranked))
	for _, r := range ranked {
		a, ok := byID[r.ID]
		if !ok {
			continue
		}
		out = append(out, GroupRecommendation{
			Activity: a,
			GroupScore: GroupScoreSummary{
				AvailableUsers:          r.AvailableUsers,
				AvailabilityCount:       r.AvailabilityCount,
				AggregatedCategoryScore: r.AggregatedCategoryScore,
				FinalScore:              r.FinalScore,
			},
		})
	}
	return out, nil
}

func (s *Service) activitiesByIDs(ctx context.Context, ids []int64) (map[int64]models.Activity, error) {
	if len(ids) == 0 {
		return map[int64]models.Activity{}, nil
	}
	byID, err := guard(s, "get_activities", func() (map[int64]models.Activity, error) {
		return s.store.GetActivitiesByIDs(ctx, ids)
	})
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}
	return byID, nil
}

// distinctUsers removes duplicates, keeping first-seen order, and enforces
// the two-user minimum.
// distinctUsers returns the unique ids in ascending order so that every
// permutation of a group yields the same profiles, cache key and
// available_users order.
func distinctUsers(ids []int64) ([]int64, error) {
	out := slices.Clone(ids)
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewUsers, len(out))
	}
	return out, nil
}

func pageOf[T any](items []T, p pagination.Params) []T {
	if p.Skip < 0 || p.Skip >= len(items) {
		return nil
	}
	end := p.Skip + min(p.Take, len(items)-p.Skip)
	return items[p.Skip:end]
}

func windowKey(w recommend.Window) string {
	return strconv.FormatInt(w.Start.Unix(), 10) + "-" + strconv.FormatInt(w.End.Unix(), 10)
}

// joinIDs expects ids already sorted by distinctUsers.
func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
