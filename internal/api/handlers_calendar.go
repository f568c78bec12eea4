// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/rendezvous/internal/planner"
)

// ListBookings handles GET /api/v1/calendar.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.svc.ListBookings(ctx, callerID(r), pageOptions(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, result, start)
}

// GetBooking handles GET /api/v1/calendar/{id}.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	ev, err := h.svc.GetBooking(ctx, callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, ev, start)
}

// CreateBooking handles POST /api/v1/calendar.
//
// A booking linked to an activity must fit inside one of the activity's
// occurrences; any booking must not overlap another of the caller's.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req BookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	ev, err := h.svc.CreateBooking(ctx, callerID(r), planner.BookingInput{
		ActivityID: req.ActivityID,
		Start:      *instantPtr(req.StartTime),
		End:        *instantPtr(req.EndTime),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, ev, start)
}

// UpdateBooking handles PUT /api/v1/calendar/{id}.
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req BookingUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	ev, err := h.svc.UpdateBooking(ctx, callerID(r), chi.URLParam(r, "id"), planner.BookingUpdate{
		ActivityID: req.ActivityID,
		Start:      instantPtr(req.StartTime),
		End:        instantPtr(req.EndTime),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, ev, start)
}

// DeleteBooking handles DELETE /api/v1/calendar/{id}.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	if err := h.svc.DeleteBooking(ctx, callerID(r), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
