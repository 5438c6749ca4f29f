package handler

import (
	"errors"
	"net/http"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

type researchRequest struct {
	Query string `json:"query"`
}

type researchResponse struct {
	Links []domain.LinkRecord `json:"links"`
}

// Research handles POST /api/research.
// It runs a standalone booking-link lookup. An empty links list is a normal
// response: enrichment is best-effort and may be disabled entirely.
func (s *Server) Research(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	links, err := s.planner.ResearchLinks(r.Context(), req.Query)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		writeValidation(w, err)
		return
	default:
		writeInternal(w)
		return
	}

	if links == nil {
		links = []domain.LinkRecord{}
	}
	writeJSON(w, http.StatusOK, researchResponse{Links: links})
}
