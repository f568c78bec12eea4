// Rendezvous - Activity Availability Matching and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rendezvous

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/rendezvous/internal/auth"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: chiMiddleware,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger())
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())
		r.Use(chimiddleware.Compress(5, "application/json"))
		r.Use(router.auth.Authenticate)

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/single", router.handler.RecommendSingle)
			r.Post("/group", router.handler.RecommendGroup)
			r.Post("/group/by-participants", router.handler.RecommendGroupByParticipants)
			r.Post("/group/stats", router.handler.RecommendGroupStats)
		})

		r.Route("/activities/{id}", func(r chi.Router) {
			r.Get("/", router.handler.GetActivity)
			r.Post("/availability/check", router.handler.CheckAvailability)
			r.With(
				router.chiMiddleware.RateLimitCustom(RateLimitWrite),
				router.auth.RequireRole(auth.RoleVendor),
			).Put("/", router.handler.PutActivity)
		})

		r.With(
			router.chiMiddleware.RateLimitCustom(RateLimitWrite),
			router.auth.RequireRole(auth.RoleAdmin),
		).Put("/categories/{id}", router.handler.PutCategory)

		r.Get("/users/me", router.handler.GetMe)
		r.Put("/users/me/preferences", router.handler.PutPreferences)

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", router.handler.ListBookings)
			r.Get("/{id}", router.handler.GetBooking)
			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitCustom(RateLimitWrite))
				r.Post("/", router.handler.CreateBooking)
				r.Put("/{id}", router.handler.UpdateBooking)
				r.Delete("/{id}", router.handler.DeleteBooking)
			})
		})
	})

	return r
}
