// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/sponsordesk/internal/auth"
	"github.com/tomtom215/sponsordesk/internal/content"
	"github.com/tomtom215/sponsordesk/internal/middleware"
)

// Router wires handlers, authentication and middleware into a chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	login         *auth.Handlers
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, login *auth.Handlers, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		login:         login,
		chiMiddleware: chiMW,
	}
}

// SetupChi builds the HTTP handler.
//
// Method mismatches are answered with 405 before any route middleware runs,
// so an unauthenticated GET on an admin-only POST route gets 405, not 401.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler
	cm := router.chiMiddleware

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cm.CORS()) // global so that OPTIONS preflight is answered on every route
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ========================
	// Authentication
	// ========================
	r.With(cm.RateLimitLogin()).Post("/api/auth", router.login.Login)

	// ========================
	// Site Configuration Documents
	// ========================
	for _, kind := range content.Kinds() {
		router.configRoutes(r, "/api/"+string(kind), kind)
	}

	// ========================
	// Inquiries and Sponsor Snapshots
	// ========================
	r.With(cm.RateLimitWrite()).Post("/api/inquiry", h.CreateInquiry)
	r.With(router.auth.RequireAdmin).Get("/api/inquiry", h.ListInquiries)

	r.With(router.auth.RequireAdmin, cm.RateLimitWrite()).Post("/api/publish", h.Publish)
	r.Get("/api/sponsor-data", h.SponsorData)

	// ========================
	// Public Newsletter Stats
	// ========================
	r.Get("/api/stats", h.Stats)
	r.Get("/api/newsletter-opens", h.NewsletterOpens)

	// ========================
	// Admin Beehiiv Sync
	// ========================
	// Full sync returns up to 500 raw posts with stats; compress it.
	r.Group(func(r chi.Router) {
		r.Use(router.auth.RequireAdmin)
		r.Use(cm.RateLimitSync())
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Post("/api/sync", h.Sync)
		r.Post("/api/quick-sync", h.QuickSync)
		r.Post("/api/debug", h.Debug)
	})

	return r
}

func (router *Router) configRoutes(r chi.Router, path string, kind content.Kind) {
	h := router.handler
	r.Get(path, h.GetConfig(kind))
	r.Group(func(r chi.Router) {
		r.Use(router.auth.RequireAdmin)
		r.Use(router.chiMiddleware.RateLimitWrite())
		r.Post(path, h.SetConfig(kind))
		r.Delete(path, h.ResetConfig(kind))
	})
}
