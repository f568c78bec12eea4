// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rendezvous/internal/auth"
	"github.com/tomtom215/rendezvous/internal/availability"
	"github.com/tomtom215/rendezvous/internal/config"
	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/planner"
	"github.com/tomtom215/rendezvous/internal/store"
)

func int64Ptr(v int64) *int64 { return &v }

func onDate(date, start, end string) *availability.Spec {
	d, err := availability.ParseInstant(date)
	if err != nil {
		panic(err)
	}
	w, err := availability.NewWindow(start, end)
	if err != nil {
		panic(err)
	}
	return availability.NewSpec(availability.Dates{Entries: []availability.DateSlot{{Date: d, Window: w}}})
}

// newTestServer builds the full router over an in-memory store with header
// authentication:
//
//	categories: 1 Outdoor > 10 Hiking, 11 Climbing; 2 Arts > 20 Pottery
//	activity 100 Hiking   2024-08-02 10:00-12:00
//	activity 101 Climbing 2024-08-03 10:00-12:00
//	activity 102 Pottery  2024-08-04 10:00-12:00
//	user 1 likes Hiking, user 2 likes Pottery, user 3 has no preferences
func newTestServer(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	st, err := store.Open(store.Options{InMemory: true})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	for _, c := range []models.Category{
		{ID: 1, Name: "Outdoor"},
		{ID: 10, Name: "Hiking", ParentID: int64Ptr(1)},
		{ID: 11, Name: "Climbing", ParentID: int64Ptr(1)},
		{ID: 2, Name: "Arts"},
		{ID: 20, Name: "Pottery", ParentID: int64Ptr(2)},
	} {
		c := c
		if err := st.PutCategory(ctx, &c); err != nil {
			t.Fatal(err)
		}
	}
	for _, a := range []models.Activity{
		{ID: 100, Name: "Ridge hike", CategoryID: 10, Availability: onDate("2024-08-02", "10:00", "12:00")},
		{ID: 101, Name: "Bouldering", CategoryID: 11, Availability: onDate("2024-08-03", "10:00", "12:00")},
		{ID: 102, Name: "Wheel throwing", CategoryID: 20, Availability: onDate("2024-08-04", "10:00", "12:00")},
	} {
		a := a
		if err := st.PutActivity(ctx, &a); err != nil {
			t.Fatal(err)
		}
	}
	for _, u := range []models.User{
		{ID: 1, Name: "ann", Preferences: []int64{10}},
		{ID: 2, Name: "bob", Preferences: []int64{20}},
		{ID: 3, Name: "cat"},
	} {
		u := u
		if err := st.PutUser(ctx, &u); err != nil {
			t.Fatal(err)
		}
	}

	svc := planner.New(st, nil, config.RecommendConfig{
		WindowSpan:      7 * 24 * time.Hour,
		MinParticipants: 2,
		TopLogged:       3,
	}, config.BreakerConfig{MaxRequests: 3, Interval: time.Minute, Timeout: 30 * time.Second, MinRequests: 10, FailureRatio: 0.6})

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	router := NewRouter(NewHandler(svc, st, 5*time.Second, "test"), auth.NewMiddleware(nil, "none"), NewChiMiddleware(cfg))
	return router.SetupChi(), st
}

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

// do sends a request as userID (0 for anonymous) with role, and decodes the
// envelope when the response has a body.
func do(t *testing.T, h http.Handler, method, path string, userID int64, role string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set(auth.UserIDHeader, strconv.FormatInt(userID, 10))
	}
	if role != "" {
		req.Header.Set(auth.UserRoleHeader, role)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

var augustRange = map[string]string{
	"range_start": "2024-08-01",
	"range_end":   "2024-08-08",
}
