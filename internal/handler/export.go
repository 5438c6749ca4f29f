package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

// ExportPlan handles GET /api/plans/{id}/export.
// It streams the plan rendered as a PDF with a download filename derived
// from the destination.
func (s *Server) ExportPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}

	filename, data, err := s.exporter.Export(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeNotFound(w, "plan not found")
		return
	default:
		writeInternal(w)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
