package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ath-12/ai-planner-final/internal/domain"
	"github.com/Ath-12/ai-planner-final/internal/prompt"
	"github.com/Ath-12/ai-planner-final/internal/repo"
	"github.com/Ath-12/ai-planner-final/internal/service"
)

// mockPlanRepo is a hand-written test double for repo.PlanRepo.
// Each method is a function field — set only the ones your test needs.
type mockPlanRepo struct {
	create  func(ctx context.Context, plan domain.Plan) (domain.Plan, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Plan, error)
	list    func(ctx context.Context, page domain.PaginationParams) ([]domain.Plan, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlanRepo) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	return m.create(ctx, plan)
}
func (m *mockPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlanRepo) List(ctx context.Context, page domain.PaginationParams) ([]domain.Plan, error) {
	return m.list(ctx, page)
}
func (m *mockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockPlanRepo must satisfy repo.PlanRepo.
var _ repo.PlanRepo = (*mockPlanRepo)(nil)

type mockRates struct {
	getRate func(ctx context.Context, home, dest string) domain.ExchangeQuote
}

func (m *mockRates) GetRate(ctx context.Context, home, dest string) domain.ExchangeQuote {
	return m.getRate(ctx, home, dest)
}

var _ service.RateSource = (*mockRates)(nil)

type mockCompleter struct {
	complete func(ctx context.Context, promptText string) domain.CompletionResult
}

func (m *mockCompleter) Complete(ctx context.Context, promptText string) domain.CompletionResult {
	return m.complete(ctx, promptText)
}

var _ service.Completer = (*mockCompleter)(nil)

type mockResearcher struct {
	enabled  func() bool
	research func(ctx context.Context, query string, maxResults int) []domain.LinkRecord
}

func (m *mockResearcher) Enabled() bool { return m.enabled() }
func (m *mockResearcher) Research(ctx context.Context, query string, maxResults int) []domain.LinkRecord {
	return m.research(ctx, query, maxResults)
}

var _ service.Researcher = (*mockResearcher)(nil)

// ---- helpers ---------------------------------------------------------------

func validRequest() domain.TripRequest {
	return domain.TripRequest{
		Destination:   "Goa, India",
		DurationDays:  3,
		PartySize:     2,
		DailyBudget:   2000,
		Currency:      "INR",
		Vibes:         []string{"Relax & Recharge"},
		Accommodation: []string{"budget hotels"},
		Pace:          domain.PaceModerate,
		Transport:     domain.TransportWalking,
		ArrivalMonth:  time.December,
	}
}

const cleanCompletion = "### Trip Overview\nA calm beach break.\n" +
	"### Daily Itinerary\nDay 1: north beaches.\n" +
	"### Details & Tips\nCarry cash."

func identityRates() *mockRates {
	return &mockRates{getRate: func(_ context.Context, home, dest string) domain.ExchangeQuote {
		if dest == "" {
			dest = home
		}
		return domain.Identity(home, dest)
	}}
}

func cleanCompleter() *mockCompleter {
	return &mockCompleter{complete: func(_ context.Context, _ string) domain.CompletionResult {
		return domain.CompletionResult{Outcome: domain.OutcomeClean, Raw: cleanCompletion}
	}}
}

func disabledResearcher() *mockResearcher {
	return &mockResearcher{
		enabled: func() bool { return false },
		research: func(_ context.Context, _ string, _ int) []domain.LinkRecord {
			return []domain.LinkRecord{}
		},
	}
}

// echoRepo echoes the plan it receives back with a generated ID, which lets
// tests inspect exactly what the service chose to persist.
func echoRepo() *mockPlanRepo {
	return &mockPlanRepo{
		create: func(_ context.Context, p domain.Plan) (domain.Plan, error) {
			p.ID = uuid.New()
			p.CreatedAt = time.Now()
			return p, nil
		},
	}
}

func newPlanner(plans *mockPlanRepo, rates *mockRates, c *mockCompleter, r *mockResearcher) *service.PlannerService {
	return service.NewPlannerService(plans, rates, c, r, slog.New(slog.DiscardHandler))
}

// ---- Plan tests ------------------------------------------------------------

func TestPlannerService_Plan_CleanCompletion(t *testing.T) {
	svc := newPlanner(echoRepo(), identityRates(), cleanCompleter(), disabledResearcher())

	plan, links, err := svc.Plan(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Goa, India", plan.Destination)
	assert.Equal(t, cleanCompletion, plan.Raw)
	assert.True(t, plan.Sections.Complete())
	assert.Equal(t, "A calm beach break.", plan.Sections.Overview)
	assert.False(t, plan.Truncated)
	assert.Equal(t, 1.0, plan.Rate)
	assert.Equal(t, "INR", plan.DestCurrency)
	assert.Empty(t, links)
}

func TestPlannerService_Plan_ConvertsBudgetBeforePrompting(t *testing.T) {
	var seenPrompt string
	completer := &mockCompleter{complete: func(_ context.Context, p string) domain.CompletionResult {
		seenPrompt = p
		return domain.CompletionResult{Outcome: domain.OutcomeClean, Raw: cleanCompletion}
	}}
	rates := &mockRates{getRate: func(_ context.Context, home, dest string) domain.ExchangeQuote {
		return domain.ExchangeQuote{HomeCurrency: home, DestCurrency: dest, Rate: 4.5}
	}}
	svc := newPlanner(echoRepo(), rates, completer, disabledResearcher())

	req := validRequest()
	req.Currency = "USD"
	req.DestCurrency = "THB"
	req.DailyBudget = 100

	plan, _, err := svc.Plan(context.Background(), req)

	require.NoError(t, err)
	// 100 USD at 4.5 = 450 THB in the prompt.
	assert.Contains(t, seenPrompt, "450")
	assert.Contains(t, seenPrompt, "THB")
	assert.Equal(t, 4.5, plan.Rate)
	assert.Equal(t, "THB", plan.DestCurrency)
}

func TestPlannerService_Plan_TruncatedStillPersisted(t *testing.T) {
	completer := &mockCompleter{complete: func(_ context.Context, _ string) domain.CompletionResult {
		return domain.CompletionResult{Outcome: domain.OutcomeTruncated, Raw: cleanCompletion, Truncated: true}
	}}
	svc := newPlanner(echoRepo(), identityRates(), completer, disabledResearcher())

	plan, _, err := svc.Plan(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, plan.Truncated)
}

func TestPlannerService_Plan_BlockedNotPersisted(t *testing.T) {
	var created bool
	plans := &mockPlanRepo{create: func(_ context.Context, _ domain.Plan) (domain.Plan, error) {
		created = true
		return domain.Plan{}, nil
	}}
	completer := &mockCompleter{complete: func(_ context.Context, _ string) domain.CompletionResult {
		return domain.CompletionResult{Outcome: domain.OutcomeBlocked, BlockReason: "SAFETY"}
	}}
	svc := newPlanner(plans, identityRates(), completer, disabledResearcher())

	_, _, err := svc.Plan(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrGenerationBlocked)
	assert.Contains(t, err.Error(), "SAFETY")
	assert.False(t, created, "a blocked completion must never reach the repo")
}

func TestPlannerService_Plan_FailedNotPersisted(t *testing.T) {
	var created bool
	plans := &mockPlanRepo{create: func(_ context.Context, _ domain.Plan) (domain.Plan, error) {
		created = true
		return domain.Plan{}, nil
	}}
	completer := &mockCompleter{complete: func(_ context.Context, _ string) domain.CompletionResult {
		return domain.CompletionResult{
			Outcome:    domain.OutcomeFailed,
			ErrClass:   "*url.Error",
			ErrMessage: "connection refused",
		}
	}}
	svc := newPlanner(plans, identityRates(), completer, disabledResearcher())

	_, _, err := svc.Plan(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, created, "a failed completion must never reach the repo")
}

func TestPlannerService_Plan_MissingHeadingsStillPersisted(t *testing.T) {
	completer := &mockCompleter{complete: func(_ context.Context, _ string) domain.CompletionResult {
		return domain.CompletionResult{Outcome: domain.OutcomeClean, Raw: "just prose, no headings"}
	}}
	svc := newPlanner(echoRepo(), identityRates(), completer, disabledResearcher())

	plan, _, err := svc.Plan(context.Background(), validRequest())

	require.NoError(t, err)
	assert.False(t, plan.Sections.Complete())
	assert.Equal(t, "just prose, no headings", plan.Raw, "raw text survives for single-pane fallback")
	// No section may silently swallow the whole raw text.
	assert.Empty(t, plan.Sections.Overview)
	assert.Empty(t, plan.Sections.DailyPlan)
	assert.Empty(t, plan.Sections.Tips)
}

func TestPlannerService_Plan_LinksAttachedButNotStored(t *testing.T) {
	want := []domain.LinkRecord{{Title: "Goa Tourism", URL: "https://goa.example"}}
	researcher := &mockResearcher{
		enabled:  func() bool { return true },
		research: func(_ context.Context, _ string, _ int) []domain.LinkRecord { return want },
	}
	var stored domain.Plan
	plans := &mockPlanRepo{create: func(_ context.Context, p domain.Plan) (domain.Plan, error) {
		stored = p
		return p, nil
	}}
	svc := newPlanner(plans, identityRates(), cleanCompleter(), researcher)

	_, links, err := svc.Plan(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, want, links)
	assert.Equal(t, "Goa, India", stored.Destination)
}

func TestPlannerService_Plan_ResearcherDisabledNotCalled(t *testing.T) {
	var called bool
	researcher := &mockResearcher{
		enabled: func() bool { return false },
		research: func(_ context.Context, _ string, _ int) []domain.LinkRecord {
			called = true
			return nil
		},
	}
	svc := newPlanner(echoRepo(), identityRates(), cleanCompleter(), researcher)

	_, links, err := svc.Plan(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Empty(t, links)
	assert.False(t, called)
}

func TestPlannerService_Plan_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	plans := &mockPlanRepo{create: func(_ context.Context, _ domain.Plan) (domain.Plan, error) {
		return domain.Plan{}, repoErr
	}}
	svc := newPlanner(plans, identityRates(), cleanCompleter(), disabledResearcher())

	_, _, err := svc.Plan(context.Background(), validRequest())

	assert.ErrorIs(t, err, repoErr)
}

// ---- validation tests ------------------------------------------------------

func TestPlannerService_Plan_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.TripRequest)
	}{
		{"blank destination", func(r *domain.TripRequest) { r.Destination = "   " }},
		{"zero duration", func(r *domain.TripRequest) { r.DurationDays = 0 }},
		{"zero party size", func(r *domain.TripRequest) { r.PartySize = 0 }},
		{"zero budget", func(r *domain.TripRequest) { r.DailyBudget = 0 }},
		{"negative budget", func(r *domain.TripRequest) { r.DailyBudget = -5 }},
		{"unknown currency", func(r *domain.TripRequest) { r.Currency = "XYZ" }},
		{"bad dest currency", func(r *domain.TripRequest) { r.DestCurrency = "RUPEES" }},
		{"month too small", func(r *domain.TripRequest) { r.ArrivalMonth = 0 }},
		{"month too large", func(r *domain.TripRequest) { r.ArrivalMonth = 13 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newPlanner(echoRepo(), identityRates(), cleanCompleter(), disabledResearcher())
			req := validRequest()
			tc.mutate(&req)

			_, _, err := svc.Plan(context.Background(), req)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPlannerService_Plan_LowercaseCurrencyAccepted(t *testing.T) {
	svc := newPlanner(echoRepo(), identityRates(), cleanCompleter(), disabledResearcher())

	req := validRequest()
	req.Currency = "inr"

	_, _, err := svc.Plan(context.Background(), req)

	assert.NoError(t, err)
}

// ---- passthrough tests -----------------------------------------------------

func TestPlannerService_GetByID_NotFound(t *testing.T) {
	plans := &mockPlanRepo{getByID: func(_ context.Context, _ uuid.UUID) (domain.Plan, error) {
		return domain.Plan{}, domain.ErrNotFound
	}}
	svc := newPlanner(plans, identityRates(), cleanCompleter(), disabledResearcher())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlannerService_List_PassesPagination(t *testing.T) {
	var seen domain.PaginationParams
	plans := &mockPlanRepo{list: func(_ context.Context, page domain.PaginationParams) ([]domain.Plan, error) {
		seen = page
		return []domain.Plan{}, nil
	}}
	svc := newPlanner(plans, identityRates(), cleanCompleter(), disabledResearcher())

	_, err := svc.List(context.Background(), domain.PaginationParams{Page: 3, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 3, seen.Page)
	assert.Equal(t, 10, seen.Limit)
}

func TestPlannerService_Delete_NotFound(t *testing.T) {
	plans := &mockPlanRepo{delete: func(_ context.Context, _ uuid.UUID) error {
		return domain.ErrNotFound
	}}
	svc := newPlanner(plans, identityRates(), cleanCompleter(), disabledResearcher())

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- research endpoint tests -----------------------------------------------

func TestPlannerService_ResearchLinks_EmptyQuery(t *testing.T) {
	svc := newPlanner(echoRepo(), identityRates(), cleanCompleter(), disabledResearcher())

	_, err := svc.ResearchLinks(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlannerService_ResearchLinks_PassesTrimmedQuery(t *testing.T) {
	var seenQuery string
	researcher := &mockResearcher{
		enabled: func() bool { return true },
		research: func(_ context.Context, q string, _ int) []domain.LinkRecord {
			seenQuery = q
			return []domain.LinkRecord{{Title: "x", URL: "https://x.example"}}
		},
	}
	svc := newPlanner(echoRepo(), identityRates(), cleanCompleter(), researcher)

	links, err := svc.ResearchLinks(context.Background(), "  Goa hotels  ")

	require.NoError(t, err)
	assert.Equal(t, "Goa hotels", seenQuery)
	assert.Len(t, links, 1)
}

// Sanity check that the prompt the service sends actually carries the
// heading tokens the splitter will look for.
func TestPlannerService_Plan_PromptCarriesHeadingTokens(t *testing.T) {
	var seenPrompt string
	completer := &mockCompleter{complete: func(_ context.Context, p string) domain.CompletionResult {
		seenPrompt = p
		return domain.CompletionResult{Outcome: domain.OutcomeClean, Raw: cleanCompletion}
	}}
	svc := newPlanner(echoRepo(), identityRates(), completer, disabledResearcher())

	_, _, err := svc.Plan(context.Background(), validRequest())

	require.NoError(t, err)
	h := prompt.Headings()
	assert.Contains(t, seenPrompt, h.Overview)
	assert.Contains(t, seenPrompt, h.DailyPlan)
	assert.Contains(t, seenPrompt, h.Tips)
}
