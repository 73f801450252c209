package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/roster-solver/internal/domain"
)

// SolveRunRepository persists completed solves and their rosters.
type SolveRunRepository interface {
	Create(ctx context.Context, run *domain.SolveRun, roster []domain.Assignment) error
	GetLatestByRosterID(ctx context.Context, rosterID string) (*domain.SolveRun, error)
	ListRecent(ctx context.Context, limit int) ([]domain.SolveRun, error)
}

type solveRunRepository struct {
	pool *pgxpool.Pool
}

// NewSolveRunRepository instantiates repository.
func NewSolveRunRepository(pool *pgxpool.Pool) SolveRunRepository {
	return &solveRunRepository{pool: pool}
}

func (r *solveRunRepository) Create(ctx context.Context, run *domain.SolveRun, roster []domain.Assignment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const runQuery = `
        INSERT INTO solve_runs (id, roster_id, solver, status, coverage, total_required, filled, bottleneck_count, result)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at`
	if err := tx.QueryRow(ctx, runQuery,
		run.ID,
		run.RosterID,
		run.Solver,
		run.Status,
		run.Coverage,
		run.TotalRequired,
		run.Filled,
		run.BottleneckCount,
		run.Result,
	).Scan(&run.CreatedAt); err != nil {
		return err
	}

	const assignmentQuery = `
        INSERT INTO solve_assignments (run_id, id, slot_date, part_of_day, service, employee_id, locked)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	for _, assignment := range roster {
		if _, err := tx.Exec(ctx, assignmentQuery,
			run.ID,
			assignment.ID,
			assignment.Slot.Date,
			string(assignment.Slot.PartOfDay),
			assignment.Slot.Service,
			assignment.EmployeeID,
			assignment.Locked,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *solveRunRepository) GetLatestByRosterID(ctx context.Context, rosterID string) (*domain.SolveRun, error) {
	const query = `
        SELECT id, roster_id, solver, status, coverage, total_required, filled, bottleneck_count, result, created_at
        FROM solve_runs
        WHERE roster_id = $1
        ORDER BY created_at DESC
        LIMIT 1`
	run := &domain.SolveRun{}
	err := r.pool.QueryRow(ctx, query, rosterID).Scan(
		&run.ID,
		&run.RosterID,
		&run.Solver,
		&run.Status,
		&run.Coverage,
		&run.TotalRequired,
		&run.Filled,
		&run.BottleneckCount,
		&run.Result,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (r *solveRunRepository) ListRecent(ctx context.Context, limit int) ([]domain.SolveRun, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
        SELECT id, roster_id, solver, status, coverage, total_required, filled, bottleneck_count, created_at
        FROM solve_runs
        ORDER BY created_at DESC
        LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]domain.SolveRun, 0, limit)
	for rows.Next() {
		var run domain.SolveRun
		if err := rows.Scan(
			&run.ID,
			&run.RosterID,
			&run.Solver,
			&run.Status,
			&run.Coverage,
			&run.TotalRequired,
			&run.Filled,
			&run.BottleneckCount,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
