// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/rendezvous/internal/auth"
	"github.com/tomtom215/rendezvous/internal/models"
)

// GetActivity handles GET /api/v1/activities/{id}.
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid activity ID", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	a, err := h.svc.GetActivity(ctx, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, a, start)
}

// CheckAvailability handles POST /api/v1/activities/{id}/availability/check.
// A rejected slot is a successful response with valid=false and the reason.
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid activity ID", nil)
		return
	}

	var req IntervalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	res, err := h.svc.CheckAvailability(ctx, id, *instantPtr(req.StartTime), *instantPtr(req.EndTime))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"activity_id": id,
		"valid":       res.Valid,
		"reason":      string(res.Reason),
		"message":     res.Message(),
	}, start)
}

// PutActivity handles PUT /api/v1/activities/{id}. Vendors always publish
// under their own id; admins may set vendor_id.
func (h *Handler) PutActivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid activity ID", nil)
		return
	}

	var req ActivityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	vendorID := req.VendorID
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil && claims.Role != auth.RoleAdmin {
		vendorID = claims.UserID
	}

	a := &models.Activity{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Capacity:     req.Capacity,
		Location:     req.Location,
		VendorID:     vendorID,
		CategoryID:   req.CategoryID,
		Availability: req.Availability,
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	if err := h.svc.PutActivity(ctx, a); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, a, start)
}

// PutCategory handles PUT /api/v1/categories/{id}.
func (h *Handler) PutCategory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category ID", nil)
		return
	}

	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	c := &models.Category{ID: id, Name: req.Name, ParentID: req.ParentID}
	if err := h.svc.PutCategory(ctx, c); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, c, start)
}

// GetMe handles GET /api/v1/users/me.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	u, err := h.svc.GetUser(ctx, callerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, u, start)
}

// PutPreferences handles PUT /api/v1/users/me/preferences.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PreferencesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	u, err := h.svc.SetPreferences(ctx, callerID(r), req.Name, req.CategoryIDs)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, u, start)
}
