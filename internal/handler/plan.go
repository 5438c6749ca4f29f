package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

// planResponse is the full plan payload returned by POST and GET-by-id.
// Links are attached to the response only; they are never stored with the
// plan, so a later GET returns an empty list.
type planResponse struct {
	domain.Plan
	Links []domain.LinkRecord `json:"links"`
}

// planSummary is the trimmed listing shape: no raw text, no sections.
type planSummary struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	Truncated   bool      `json:"truncated"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePlan handles POST /api/plans.
// It decodes a TripRequest, runs the full planning pipeline, and returns
// HTTP 201 with the persisted plan plus any research links.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req domain.TripRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	plan, links, err := s.planner.Plan(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		writeValidation(w, err)
		return
	case errors.Is(err, domain.ErrGenerationBlocked):
		writeBlocked(w, err)
		return
	case errors.Is(err, domain.ErrGenerationFailed):
		writeUpstreamFailed(w, err)
		return
	default:
		writeInternal(w)
		return
	}

	if links == nil {
		links = []domain.LinkRecord{}
	}
	writeJSON(w, http.StatusCreated, planResponse{Plan: plan, Links: links})
}

// GetPlan handles GET /api/plans/{id}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}

	plan, err := s.planner.GetByID(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeNotFound(w, "plan not found")
		return
	default:
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{Plan: plan, Links: []domain.LinkRecord{}})
}

// ListPlans handles GET /api/plans.
// Supports ?page= and ?limit= query params; returns summaries, most recent first.
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	page := domain.NewPaginationParams(
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)

	plans, err := s.planner.List(r.Context(), page)
	if err != nil {
		writeInternal(w)
		return
	}

	summaries := lo.Map(plans, func(p domain.Plan, _ int) planSummary {
		return planSummary{
			ID:          p.ID,
			Destination: p.Destination,
			Truncated:   p.Truncated,
			CreatedAt:   p.CreatedAt,
		}
	})
	writeJSON(w, http.StatusOK, summaries)
}

// DeletePlan handles DELETE /api/plans/{id}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}

	err := s.planner.Delete(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeNotFound(w, "plan not found")
		return
	default:
		writeInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// planID parses the {id} path parameter, writing a 400 on failure.
func planID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid plan id")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst, rejecting empty bodies.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return errors.New("request body is required")
	}
	if err != nil {
		return errors.New("malformed JSON body")
	}
	return nil
}

// queryInt returns a pointer to the parsed integer query param, or nil when
// the param is absent or not a number.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
