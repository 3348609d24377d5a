// Package handler implements the HTTP handlers for the trademark registry.
// Handlers decode and validate requests, call the service layer, and map
// domain outcomes to HTTP statuses. No business logic lives here.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mkarpenko/trademark-registry/backend/internal/domain"
	"github.com/mkarpenko/trademark-registry/backend/internal/service"
)

// RegisterServicer defines the registration operation the handler depends
// on. Defining the interface here (in the consumer package) lets handler
// tests inject a mock without touching the database or service layer.
type RegisterServicer interface {
	Register(ctx context.Context, req service.RegisterRequest) (domain.Trademark, error)
}

// SearchServicer defines the lookup operation the handler depends on.
type SearchServicer interface {
	Search(ctx context.Context, req service.SearchRequest) ([]domain.Trademark, error)
}

// Server holds the handler dependencies. Methods live in domain-specific
// files (trademark.go, health.go) but all operate on this struct.
type Server struct {
	log      *slog.Logger
	validate *validator.Validate
	register RegisterServicer
	search   SearchServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(log *slog.Logger, register RegisterServicer, search SearchServicer) *Server {
	return &Server{
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		register: register,
		search:   search,
	}
}

// Routes registers all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1/trademarks", func(r chi.Router) {
		r.Post("/", s.handleRegisterTrademark)
		r.Get("/search", s.handleSearchTrademark)
	})
}
