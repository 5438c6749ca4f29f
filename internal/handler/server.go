// Package handler implements the HTTP layer of the trip planner API.
// All handlers are methods on Server; they decode requests, call the
// service interfaces, and map domain errors onto HTTP status codes.
// Methods are split into endpoint-specific files (plan.go, export.go, ...)
// but all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

// PlannerServicer defines the business operations the plan handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or the outbound clients.
type PlannerServicer interface {
	Plan(ctx context.Context, req domain.TripRequest) (domain.Plan, []domain.LinkRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error)
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ResearchLinks(ctx context.Context, query string) ([]domain.LinkRecord, error)
}

// ExportServicer defines the PDF export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, id uuid.UUID) (filename string, data []byte, err error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	planner  PlannerServicer
	exporter ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(planner PlannerServicer, exporter ExportServicer) *Server {
	return &Server{planner: planner, exporter: exporter}
}

// Routes returns the API route tree. Middleware is applied by the caller
// (main.go in production, nothing in handler tests) so tests exercise the
// same routing table production uses.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/plans", s.CreatePlan)
		r.Get("/plans", s.ListPlans)
		r.Get("/plans/{id}", s.GetPlan)
		r.Delete("/plans/{id}", s.DeletePlan)
		r.Get("/plans/{id}/export", s.ExportPlan)
		r.Post("/research", s.Research)
	})

	return r
}
