package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostRow is one timesheet row joined with worker and stage identity for
// grouping.
type CostRow struct {
	WorkerID    uuid.UUID
	WorkerName  string
	Role        string
	StageNumber *int
	Date        time.Time
	Hours       decimal.Decimal
	DayRate     decimal.Decimal
	Idle        bool
	Rework      bool
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	JobStatusCounts(ctx context.Context) (map[string]int, error)
	ActiveWorkerCount(ctx context.Context) (int, error)
	TimesheetRowsInRange(ctx context.Context, from, to time.Time) ([]CostRow, error)
	JobTimesheetRows(ctx context.Context, jobID string, from, to *time.Time) ([]CostRow, error)
	WorkerTimesheetRows(ctx context.Context, workerID string, from, to time.Time) ([]CostRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) JobStatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT status, COUNT(1)
        FROM jobs
        WHERE deleted_at IS NULL
        GROUP BY status`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

func (r *repository) ActiveWorkerCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
        SELECT COUNT(1) FROM workers WHERE active = true AND deleted_at IS NULL`,
	).Scan(&count)
	return count, err
}

const costRowSelect = `
    SELECT t.worker_id, w.full_name, w.role, s.stage_number, t.date, t.hours, t.day_rate, t.idle, t.rework
    FROM timesheets t
    JOIN workers w ON w.id = t.worker_id AND w.deleted_at IS NULL
    LEFT JOIN stages s ON s.id = t.stage_id
    WHERE t.deleted_at IS NULL`

func (r *repository) TimesheetRowsInRange(ctx context.Context, from, to time.Time) ([]CostRow, error) {
	rows, err := r.db.QueryContext(ctx,
		costRowSelect+` AND t.date >= $1 AND t.date <= $2`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	return scanCostRows(rows)
}

func (r *repository) JobTimesheetRows(ctx context.Context, jobID string, from, to *time.Time) ([]CostRow, error) {
	query := costRowSelect + ` AND t.job_id = $1`
	args := []any{jobID}
	if from != nil {
		args = append(args, *from)
		query += ` AND t.date >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND t.date <= $3`
		} else {
			query += ` AND t.date <= $2`
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanCostRows(rows)
}

func (r *repository) WorkerTimesheetRows(ctx context.Context, workerID string, from, to time.Time) ([]CostRow, error) {
	rows, err := r.db.QueryContext(ctx,
		costRowSelect+` AND t.worker_id = $1 AND t.date >= $2 AND t.date <= $3`,
		workerID, from, to,
	)
	if err != nil {
		return nil, err
	}
	return scanCostRows(rows)
}

func scanCostRows(rows *sql.Rows) ([]CostRow, error) {
	defer rows.Close()

	var out []CostRow
	for rows.Next() {
		var row CostRow
		if err := rows.Scan(&row.WorkerID, &row.WorkerName, &row.Role, &row.StageNumber,
			&row.Date, &row.Hours, &row.DayRate, &row.Idle, &row.Rework); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
