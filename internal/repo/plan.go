// Package repo contains all database access logic for the trip planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlanRepo defines the persistence operations for generated plans.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type PlanRepo interface {
	// Create inserts a new plan and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, plan domain.Plan) (domain.Plan, error)

	// GetByID retrieves a single plan by its UUID primary key.
	// Returns domain.ErrNotFound if no plan with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error)

	// List returns one page of plans ordered by created_at descending.
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Plan, error)

	// Delete removes a plan by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPlanRepo is the Postgres implementation of PlanRepo.
type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

// Create inserts a new plan row and returns the full persisted record.
// The original trip request and the section split are stored as jsonb so a
// plan row is self-contained for later display and export.
func (r *pgPlanRepo) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	const q = `
		INSERT INTO plans (destination, request, raw, sections, truncated, rate, dest_currency)
		VALUES (@destination, @request, @raw, @sections, @truncated, @rate, @dest_currency)
		RETURNING id, destination, request, raw, sections, truncated, rate, dest_currency, created_at`

	args := pgx.NamedArgs{
		"destination":   plan.Destination,
		"request":       plan.Request,
		"raw":           plan.Raw,
		"sections":      plan.Sections,
		"truncated":     plan.Truncated,
		"rate":          plan.Rate,
		"dest_currency": plan.DestCurrency,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a plan by primary key.
func (r *pgPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	const q = `
		SELECT id, destination, request, raw, sections, truncated, rate, dest_currency, created_at
		FROM plans
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of plans, most recent first.
func (r *pgPlanRepo) List(ctx context.Context, page domain.PaginationParams) ([]domain.Plan, error) {
	const q = `
		SELECT id, destination, request, raw, sections, truncated, rate, dest_currency, created_at
		FROM plans
		ORDER BY created_at DESC, id DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.List: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PlanRepo.List: scan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.List: rows: %w", err)
	}

	return plans, nil
}

// Delete removes a plan by primary key.
func (r *pgPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM plans WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanPlan to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlan maps a single database row into a domain.Plan.
// The request and sections jsonb columns unmarshal straight into their
// domain structs via pgx's json codec.
func scanPlan(s scanner) (domain.Plan, error) {
	var (
		p  domain.Plan
		id pgtype.UUID
	)

	err := s.Scan(&id, &p.Destination, &p.Request, &p.Raw, &p.Sections,
		&p.Truncated, &p.Rate, &p.DestCurrency, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plan{}, domain.ErrNotFound
		}
		return domain.Plan{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
