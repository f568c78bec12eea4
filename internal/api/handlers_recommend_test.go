// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/rendezvous/internal/pagination"
	"github.com/tomtom215/rendezvous/internal/recommend"
)

type scoredItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type groupItem struct {
	ID         int64 `json:"id"`
	GroupScore struct {
		AvailabilityCount int     `json:"availability_count"`
		AvailableUsers    []int64 `json:"available_users"`
		FinalScore        float64 `json:"final_score"`
	} `json:"group_score"`
}

func TestRecommendSingle(t *testing.T) {
	h, _ := newTestServer(t)

	rec, env := do(t, h, http.MethodPost, "/api/v1/recommendations/single?page=1&limit=2", 1, "", augustRange)
	if rec.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("status = %d %q, body %s", rec.Code, env.Status, rec.Body.String())
	}

	var page struct {
		Data       []scoredItem    `json:"data"`
		Pagination pagination.Meta `json:"pagination"`
	}
	decodeData(t, env, &page)
	if len(page.Data) != 2 || page.Data[0].ID != 100 || page.Data[0].Score != 1.0 || page.Data[1].ID != 101 {
		t.Errorf("data = %+v", page.Data)
	}
	want := pagination.Meta{Page: 1, Limit: 2, Total: 3, TotalPages: 2, HasNext: true}
	if page.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", page.Pagination, want)
	}
}

func TestRecommendSingle_Errors(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name     string
		user     int64
		body     interface{}
		wantCode int
		wantErr  string
	}{
		{"anonymous", 0, augustRange, http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{"unknown user", 42, augustRange, http.StatusNotFound, "NOT_FOUND"},
		{"inverted range", 1, map[string]string{"range_start": "2024-08-08", "range_end": "2024-08-01"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad date", 1, map[string]string{"range_start": "yesterday"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed json", 1, "{", http.StatusBadRequest, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/api/v1/recommendations/single", tt.user, "", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
			}
		})
	}
}

func TestRecommendSingle_EmptyBodyUsesDefaultWindow(t *testing.T) {
	h, _ := newTestServer(t)
	// The fixture activities are in 2024, outside the default window.
	rec, env := do(t, h, http.MethodPost, "/api/v1/recommendations/single", 1, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var page struct {
		Data       []scoredItem    `json:"data"`
		Pagination pagination.Meta `json:"pagination"`
	}
	decodeData(t, env, &page)
	if len(page.Data) != 0 || page.Pagination.Total != 0 || page.Pagination.Page != 1 {
		t.Errorf("page = %+v", page)
	}
}

func TestRecommendGroup(t *testing.T) {
	h, _ := newTestServer(t)

	body := map[string]interface{}{
		"user_ids":    []int64{1, 2, 3},
		"range_start": "2024-08-01",
		"range_end":   "2024-08-08",
	}
	rec, env := do(t, h, http.MethodPost, "/api/v1/recommendations/group", 1, "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var page struct {
		Data []groupItem `json:"data"`
	}
	decodeData(t, env, &page)
	if len(page.Data) != 3 || page.Data[0].ID != 100 || page.Data[1].ID != 102 || page.Data[2].ID != 101 {
		t.Fatalf("data = %+v", page.Data)
	}
	if page.Data[0].GroupScore.AvailabilityCount != 3 || page.Data[0].GroupScore.FinalScore < 3000 {
		t.Errorf("group score = %+v", page.Data[0].GroupScore)
	}
}

func TestRecommendGroup_Validation(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode int
	}{
		{"one user", map[string]interface{}{"user_ids": []int64{1}}, http.StatusBadRequest},
		{"duplicate users", map[string]interface{}{"user_ids": []int64{1, 1}}, http.StatusBadRequest},
		{"non-positive id", map[string]interface{}{"user_ids": []int64{1, 0}}, http.StatusBadRequest},
		{"bad min_participants", map[string]interface{}{"user_ids": []int64{1, 2}, "min_participants": -1}, http.StatusBadRequest},
		{"unknown user", map[string]interface{}{"user_ids": []int64{1, 99}}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, h, http.MethodPost, "/api/v1/recommendations/group", 1, "", tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestRecommendGroupByParticipantsAndStats(t *testing.T) {
	h, _ := newTestServer(t)

	// User 3 cannot make the hike.
	rec, _ := do(t, h, http.MethodPost, "/api/v1/calendar", 3, "", map[string]string{
		"start_time": "2024-08-02T09:00:00Z",
		"end_time":   "2024-08-02T11:00:00Z",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed booking status = %d: %s", rec.Code, rec.Body.String())
	}

	body := map[string]interface{}{
		"user_ids":    []int64{1, 2, 3},
		"range_start": "2024-08-01",
		"range_end":   "2024-08-08",
	}
	rec, env := do(t, h, http.MethodPost, "/api/v1/recommendations/group/by-participants", 1, "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var buckets map[string][]groupItem
	decodeData(t, env, &buckets)
	if len(buckets["2"]) != 1 || buckets["2"][0].ID != 100 || len(buckets["3"]) != 2 {
		t.Errorf("buckets = %+v", buckets)
	}

	rec, env = do(t, h, http.MethodPost, "/api/v1/recommendations/group/stats", 1, "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var stats recommend.GroupStats
	decodeData(t, env, &stats)
	if stats.TotalActivities != 3 || stats.ActivitiesForAllUsers != 2 || stats.ActivitiesByParticipantCount[2] != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
