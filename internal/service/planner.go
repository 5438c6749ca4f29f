// Package service contains the business logic for the trip planner API.
// Services validate inputs, orchestrate the outbound clients, and persist
// results through repo interfaces. No SQL and no HTTP wire handling lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Ath-12/ai-planner-final/internal/domain"
	"github.com/Ath-12/ai-planner-final/internal/prompt"
	"github.com/Ath-12/ai-planner-final/internal/repo"
	"github.com/Ath-12/ai-planner-final/internal/research"
	"github.com/Ath-12/ai-planner-final/internal/sections"
)

// RateSource resolves a conversion rate between two currencies.
// Satisfied by *currency.Converter; mocked in tests.
type RateSource interface {
	GetRate(ctx context.Context, home, dest string) domain.ExchangeQuote
}

// Completer sends one prompt to the text-generation provider.
// Satisfied by *genai.Client; mocked in tests.
type Completer interface {
	Complete(ctx context.Context, promptText string) domain.CompletionResult
}

// Researcher looks up booking links for a query.
// Satisfied by *research.Client; mocked in tests.
type Researcher interface {
	Enabled() bool
	Research(ctx context.Context, query string, maxResults int) []domain.LinkRecord
}

// PlannerService runs the full planning pipeline: validate the request,
// resolve the budget currency, build the prompt, call the completion
// provider and the link researcher, split the response, and persist the plan.
type PlannerService struct {
	plans      repo.PlanRepo
	rates      RateSource
	completer  Completer
	researcher Researcher
	log        *slog.Logger
}

// NewPlannerService constructs a PlannerService from its collaborators.
func NewPlannerService(plans repo.PlanRepo, rates RateSource, completer Completer, researcher Researcher, log *slog.Logger) *PlannerService {
	return &PlannerService{
		plans:      plans,
		rates:      rates,
		completer:  completer,
		researcher: researcher,
		log:        log,
	}
}

// Plan generates, splits, and persists one itinerary for the request.
// The returned links are response-only enrichment: they are not stored with
// the plan, and an empty slice is normal when research is disabled or failed.
//
// Blocked and failed completions are never persisted; they surface as
// domain.ErrGenerationBlocked and domain.ErrGenerationFailed respectively.
func (s *PlannerService) Plan(ctx context.Context, req domain.TripRequest) (domain.Plan, []domain.LinkRecord, error) {
	if err := validateRequest(req); err != nil {
		return domain.Plan{}, nil, fmt.Errorf("service.PlannerService.Plan: %w", err)
	}

	quote := s.rates.GetRate(ctx, req.Currency, req.DestCurrency)
	budgetDest := req.DailyBudget * quote.Rate
	promptText := prompt.Build(req, budgetDest, quote.DestCurrency)

	// The completion and the link lookup are independent given the request,
	// so they run concurrently. Neither client returns an error: the
	// completion outcome is classified below, and research degrades to an
	// empty slice on its own.
	var (
		result domain.CompletionResult
		links  []domain.LinkRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result = s.completer.Complete(gctx, promptText)
		return nil
	})
	g.Go(func() error {
		links = s.researchLinks(gctx, req.Destination)
		return nil
	})
	_ = g.Wait()

	switch result.Outcome {
	case domain.OutcomeBlocked:
		return domain.Plan{}, nil, fmt.Errorf("service.PlannerService.Plan: reason %q: %w",
			result.BlockReason, domain.ErrGenerationBlocked)
	case domain.OutcomeFailed:
		return domain.Plan{}, nil, fmt.Errorf("service.PlannerService.Plan: %s: %s: %w",
			result.ErrClass, result.ErrMessage, domain.ErrGenerationFailed)
	}

	secs := sections.Split(result.Raw, prompt.Headings())
	if !secs.Complete() {
		s.log.Warn("completion missing one or more section headings",
			"destination", req.Destination,
			"overview", secs.OverviewPresent,
			"daily_plan", secs.DailyPlanPresent,
			"tips", secs.TipsPresent)
	}

	plan := domain.Plan{
		Destination:  req.Destination,
		Request:      req,
		Raw:          result.Raw,
		Sections:     secs,
		Truncated:    result.Truncated,
		Rate:         quote.Rate,
		DestCurrency: quote.DestCurrency,
	}

	created, err := s.plans.Create(ctx, plan)
	if err != nil {
		return domain.Plan{}, nil, fmt.Errorf("service.PlannerService.Plan: %w", err)
	}
	return created, links, nil
}

// GetByID returns a single stored plan.
func (s *PlannerService) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlannerService.GetByID: %w", err)
	}
	return plan, nil
}

// List returns one page of stored plans, most recent first.
func (s *PlannerService) List(ctx context.Context, page domain.PaginationParams) ([]domain.Plan, error) {
	plans, err := s.plans.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("service.PlannerService.List: %w", err)
	}
	return plans, nil
}

// Delete removes a stored plan.
func (s *PlannerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PlannerService.Delete: %w", err)
	}
	return nil
}

// ResearchLinks runs a standalone booking-link lookup for a free-text query.
// Used by the research endpoint; always succeeds, possibly with no results.
func (s *PlannerService) ResearchLinks(ctx context.Context, query string) ([]domain.LinkRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("service.PlannerService.ResearchLinks: query is required: %w", domain.ErrValidation)
	}
	return s.researcher.Research(ctx, query, research.DefaultMaxResults), nil
}

func (s *PlannerService) researchLinks(ctx context.Context, destination string) []domain.LinkRecord {
	if !s.researcher.Enabled() {
		return []domain.LinkRecord{}
	}
	return s.researcher.Research(ctx, destination, research.DefaultMaxResults)
}

// validateRequest enforces the form's invariants before any network call.
func validateRequest(req domain.TripRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("destination is required: %w", domain.ErrValidation)
	}
	if req.DurationDays < 1 {
		return fmt.Errorf("duration_days must be at least 1: %w", domain.ErrValidation)
	}
	if req.PartySize < 1 {
		return fmt.Errorf("party_size must be at least 1: %w", domain.ErrValidation)
	}
	if req.DailyBudget <= 0 {
		return fmt.Errorf("daily_budget must be positive: %w", domain.ErrValidation)
	}
	if !domain.AllowedCurrencies[strings.ToUpper(req.Currency)] {
		return fmt.Errorf("currency %q is not supported: %w", req.Currency, domain.ErrValidation)
	}
	if req.DestCurrency != "" && len(req.DestCurrency) != 3 {
		return fmt.Errorf("dest_currency must be a 3-letter code: %w", domain.ErrValidation)
	}
	if req.ArrivalMonth < 1 || req.ArrivalMonth > 12 {
		return fmt.Errorf("arrival_month must be 1-12: %w", domain.ErrValidation)
	}
	return nil
}
