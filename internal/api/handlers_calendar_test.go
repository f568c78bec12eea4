// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/pagination"
)

func createBooking(t *testing.T, h http.Handler, user int64, body map[string]interface{}) models.CalendarEvent {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/api/v1/calendar", user, "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var ev models.CalendarEvent
	decodeData(t, env, &ev)
	return ev
}

func TestCalendarLifecycle(t *testing.T) {
	h, _ := newTestServer(t)

	ev := createBooking(t, h, 1, map[string]interface{}{
		"activity_id": 100,
		"start_time":  "2024-08-02T10:00:00Z",
		"end_time":    "2024-08-02T11:00:00Z",
	})
	if ev.ID == "" || ev.UserID != 1 || ev.ActivityID == nil || *ev.ActivityID != 100 {
		t.Fatalf("created = %+v", ev)
	}

	rec, env := do(t, h, http.MethodGet, "/api/v1/calendar/"+ev.ID, 1, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec, env = do(t, h, http.MethodPut, "/api/v1/calendar/"+ev.ID, 1, "", map[string]string{"end_time": "2024-08-02T12:00:00Z"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.CalendarEvent
	decodeData(t, env, &updated)
	if updated.EndTime.Hour() != 12 || !updated.StartTime.Equal(ev.StartTime) {
		t.Errorf("updated = %+v", updated)
	}

	rec, env = do(t, h, http.MethodGet, "/api/v1/calendar", 1, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var page struct {
		Data       []models.CalendarEvent `json:"data"`
		Pagination pagination.Meta        `json:"pagination"`
	}
	decodeData(t, env, &page)
	if len(page.Data) != 1 || page.Pagination.Total != 1 {
		t.Errorf("list = %+v", page)
	}

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/calendar/"+ev.ID, 1, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec, _ = do(t, h, http.MethodGet, "/api/v1/calendar/"+ev.ID, 1, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestCreateBooking_Errors(t *testing.T) {
	h, _ := newTestServer(t)

	createBooking(t, h, 1, map[string]interface{}{
		"start_time": "2024-08-05T09:00:00Z",
		"end_time":   "2024-08-05T10:00:00Z",
	})

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantCode   int
		wantErr    string
		wantReason string
	}{
		{
			name:     "missing end",
			body:     map[string]interface{}{"start_time": "2024-08-06T09:00:00Z"},
			wantCode: http.StatusBadRequest, wantErr: "VALIDATION_ERROR",
		},
		{
			name:     "inverted",
			body:     map[string]interface{}{"start_time": "2024-08-06T10:00:00Z", "end_time": "2024-08-06T09:00:00Z"},
			wantCode: http.StatusBadRequest, wantErr: "BOOKING_REJECTED", wantReason: "invalid interval",
		},
		{
			name:     "outside window",
			body:     map[string]interface{}{"activity_id": 100, "start_time": "2024-08-02T11:00:00Z", "end_time": "2024-08-02T12:30:00Z"},
			wantCode: http.StatusBadRequest, wantErr: "BOOKING_REJECTED", wantReason: "outside time window",
		},
		{
			name:     "self conflict",
			body:     map[string]interface{}{"start_time": "2024-08-05T09:30:00Z", "end_time": "2024-08-05T10:30:00Z"},
			wantCode: http.StatusConflict, wantErr: "BOOKING_CONFLICT",
		},
		{
			name:     "unknown activity",
			body:     map[string]interface{}{"activity_id": 999, "start_time": "2024-08-06T09:00:00Z", "end_time": "2024-08-06T10:00:00Z"},
			wantCode: http.StatusNotFound, wantErr: "NOT_FOUND",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/api/v1/calendar", 1, "", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantErr {
				t.Fatalf("error = %+v, want %s", env.Error, tt.wantErr)
			}
			if tt.wantReason != "" && env.Error.Details["reason"] != tt.wantReason {
				t.Errorf("reason = %v, want %q", env.Error.Details["reason"], tt.wantReason)
			}
		})
	}
}

func TestBookingOwnership(t *testing.T) {
	h, _ := newTestServer(t)
	ev := createBooking(t, h, 1, map[string]interface{}{
		"start_time": "2024-08-06T09:00:00Z",
		"end_time":   "2024-08-06T10:00:00Z",
	})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var body interface{}
		if method == http.MethodPut {
			body = map[string]string{}
		}
		rec, _ := do(t, h, method, "/api/v1/calendar/"+ev.ID, 2, "", body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s by other user status = %d, want 404", method, rec.Code)
		}
	}
}
