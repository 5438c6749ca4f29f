package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Ath-12/ai-planner-final/internal/pdf"
	"github.com/Ath-12/ai-planner-final/internal/repo"
)

// ExportService turns a stored plan into a downloadable PDF.
type ExportService struct {
	plans repo.PlanRepo
}

// NewExportService constructs an ExportService backed by the provided PlanRepo.
func NewExportService(plans repo.PlanRepo) *ExportService {
	return &ExportService{plans: plans}
}

// Export renders the plan's raw completion text as a PDF and returns the
// document bytes plus a download filename derived from the destination.
// Returns domain.ErrNotFound when no plan with that ID exists.
func (s *ExportService) Export(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return "", nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	title := plan.Destination + " Travel Itinerary"
	data, err := pdf.Render(plan.Raw, title)
	if err != nil {
		return "", nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	return exportFilename(plan.Destination), data, nil
}

// exportFilename derives a safe download filename from the destination:
// every character that is not a letter, digit, or underscore becomes an
// underscore, so "Goa, India" exports as "Goa__India_itinerary.pdf".
func exportFilename(destination string) string {
	var b strings.Builder
	for _, r := range destination {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + "_itinerary.pdf"
}
