// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/rendezvous/internal/logging"
	"github.com/tomtom215/rendezvous/internal/models"
	"github.com/tomtom215/rendezvous/internal/planner"
	"github.com/tomtom215/rendezvous/internal/recommend"
	"github.com/tomtom215/rendezvous/internal/store"
)

// respondServiceError maps planner errors to HTTP responses.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		rejected *planner.BookingRejectedError
		conflict *planner.SelfConflictError
		invalid  *planner.InvalidInputError
	)

	switch {
	case errors.As(err, &rejected):
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    "BOOKING_REJECTED",
			Message: rejected.Result.Message(),
			Details: map[string]interface{}{
				"reason": string(rejected.Result.Reason),
				"detail": rejected.Result.Detail,
			},
		})
	case errors.As(err, &conflict):
		respondAPIError(w, http.StatusConflict, &models.APIError{
			Code:    "BOOKING_CONFLICT",
			Message: conflict.Error(),
			Details: map[string]interface{}{
				"existing_booking_id": conflict.Existing.ID,
				"existing_start":      conflict.Existing.Start,
				"existing_end":        conflict.Existing.End,
			},
		})
	case errors.As(err, &invalid):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", invalid.Error(), nil)
	case errors.Is(err, planner.ErrTooFewUsers), errors.Is(err, recommend.ErrTooFewProfiles):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, planner.ErrStorageUnavailable):
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Storage temporarily unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "TIMEOUT", "Request timed out", err)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Unhandled service error")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
