// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"net/http"
	"strconv"
	"time"
)

// RecommendSingle handles POST /api/v1/recommendations/single.
// Returns the caller's ranked activities for the optional range.
func (h *Handler) RecommendSingle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RangeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.inverted() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "range_end must not be before range_start", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	rangeStart, rangeEnd := req.bounds()
	result, err := h.svc.Recommend(ctx, callerID(r), rangeStart, rangeEnd, pageOptions(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, result, start)
}

// RecommendGroup handles POST /api/v1/recommendations/group.
func (h *Handler) RecommendGroup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeGroupRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.svc.RecommendGroup(ctx, req.query(), pageOptions(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, result, start)
}

// RecommendGroupByParticipants handles POST
// /api/v1/recommendations/group/by-participants. Buckets are keyed by
// attendee count.
func (h *Handler) RecommendGroupByParticipants(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeGroupRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	buckets, err := h.svc.GroupByParticipants(ctx, req.query())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	out := make(map[string]interface{}, len(buckets))
	for count, bucket := range buckets {
		out[strconv.Itoa(count)] = bucket
	}
	respondData(w, http.StatusOK, out, start)
}

// RecommendGroupStats handles POST /api/v1/recommendations/group/stats.
func (h *Handler) RecommendGroupStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeGroupRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	stats, err := h.svc.GroupStats(ctx, req.query())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, stats, start)
}

func decodeGroupRequest(w http.ResponseWriter, r *http.Request) (GroupRequest, bool) {
	var req GroupRequest
	if !decodeAndValidate(w, r, &req) {
		return req, false
	}
	if req.inverted() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "range_end must not be before range_start", nil)
		return req, false
	}
	return req, true
}
