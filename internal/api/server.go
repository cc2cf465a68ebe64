// Package api provides the HTTP API server and handlers for the Shopmate application.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shopmateapp/shopmate-server/internal/http/response"
	"github.com/shopmateapp/shopmate-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		store:           st,
		services:        services,
		router:          chi.NewRouter(),
		logger:          logger,
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Shopmate API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Use(s.authenticate)
	s.router.Use(s.limitAuthEndpoints)
}

// limitAuthEndpoints applies the auth rate limiter to credential endpoints
// only. They take passwords, so brute force protection matters there and
// nowhere else.
func (s *Server) limitAuthEndpoints(next http.Handler) http.Handler {
	limited := RateLimitMiddleware(s.authRateLimiter, s.logger)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v1/auth/") {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Typed endpoints (huma).
	s.registerAuthRoutes()
	s.registerAssistantRoutes()

	// API v1 resource endpoints.
	s.router.Route("/api/v1", func(r chi.Router) {
		// User management (admins only).
		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Use(s.requireAdmin)
			r.Post("/", s.handleCreateUser)
		})

		// Contacts.
		r.Route("/contacts", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListContacts)
			r.Get("/{id}", s.handleGetContact)
			r.Get("/{id}/transactions", s.handleContactTransactions)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/", s.handleCreateContact)
				r.Put("/{id}", s.handleUpdateContact)
				r.Delete("/{id}", s.handleDeleteContact)
			})
		})

		// Books.
		r.Route("/books", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListBooks)
			r.Get("/{id}", s.handleGetBook)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/", s.handleCreateBook)
				r.Put("/{id}", s.handleUpdateBook)
				r.Delete("/{id}", s.handleDeleteBook)
				r.Post("/{id}/stock", s.handleAdjustStock)
			})
		})

		// Transactions.
		r.Route("/transactions", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListTransactions)
			r.Get("/{id}", s.handleGetTransaction)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/", s.handleCreateTransaction)
				r.Put("/{id}", s.handleReplaceTransaction)
				r.Delete("/{id}", s.handleDeleteTransaction)
			})
		})

		// Events.
		r.Route("/events", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListEvents)
			r.Get("/{id}", s.handleGetEvent)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/", s.handleCreateEvent)
				r.Put("/{id}", s.handleUpdateEvent)
				r.Delete("/{id}", s.handleDeleteEvent)
				r.Put("/{id}/attendees/{contactID}", s.handleAddAttendee)
				r.Delete("/{id}/attendees/{contactID}", s.handleRemoveAttendee)
			})
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
