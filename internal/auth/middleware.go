// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package auth

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rendezvous/internal/logging"
	"github.com/tomtom215/rendezvous/internal/models"
)

type contextKey string

// ClaimsContextKey holds the authenticated *Claims.
const ClaimsContextKey contextKey = "claims"

// Headers read in "none" mode.
const (
	UserIDHeader   = "X-User-ID"
	UserRoleHeader = "X-User-Role"
)

// Middleware authenticates requests.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
}

// NewMiddleware creates the middleware. jwtManager may be nil when authMode
// is "none".
func NewMiddleware(jwtManager *JWTManager, authMode string) *Middleware {
	return &Middleware{jwtManager: jwtManager, authMode: authMode}
}

// Authenticate rejects unauthenticated requests with 401 and stores the
// claims in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			claims *Claims
			msg    string
		)
		if m.authMode == "none" {
			claims, msg = headerClaims(r)
		} else {
			claims, msg = m.bearerClaims(r)
		}
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", msg)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		ctx = logging.ContextWithUserID(ctx, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests whose role is not in roles with 403. It must
// run after Authenticate.
func (m *Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "authentication required")
				return
			}
			if claims.Role != RoleAdmin && !slices.Contains(roles, claims.Role) {
				writeError(w, http.StatusForbidden, "AUTHORIZATION_ERROR", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) bearerClaims(r *http.Request) (*Claims, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, "authentication required"
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, "invalid authorization header format"
	}
	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		logging.Debug().Err(err).Msg("Token validation failed")
		return nil, "invalid or expired token"
	}
	return claims, ""
}

func headerClaims(r *http.Request) (*Claims, string) {
	raw := r.Header.Get(UserIDHeader)
	if raw == "" {
		return nil, UserIDHeader + " header is required"
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, UserIDHeader + " must be a positive integer"
	}
	role := r.Header.Get(UserRoleHeader)
	if role == "" {
		role = RoleUser
	}
	return &Claims{UserID: id, Role: role}, ""
}

// ClaimsFromContext returns the authenticated claims or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims)
	return claims
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.UserID, true
	}
	return 0, false
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // response already committed
	json.NewEncoder(w).Encode(models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	})
}
