package timesheet

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListFilter narrows timesheet listings.
type ListFilter struct {
	WorkerID string
	JobID    string
	DateFrom *time.Time
	DateTo   *time.Time
}

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, t *Timesheet) error
	FindByID(ctx context.Context, id string) (*Timesheet, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Timesheet, error)
	Update(ctx context.Context, t *Timesheet) error
	Delete(ctx context.Context, id string) error

	// Normalizer support. Runs against the stored transaction when set.
	AcquireDayLock(ctx context.Context, workerID uuid.UUID, date time.Time) error
	ListDayRows(ctx context.Context, workerID uuid.UUID, date time.Time) ([]DayRow, error)
	ApplyDayRateChanges(ctx context.Context, changes []DayRateChange) error

	WorkerRate(ctx context.Context, workerID uuid.UUID) (decimal.Decimal, string, error)
	JobExists(ctx context.Context, jobID uuid.UUID) (bool, error)
}

type repository struct {
	gdb *gorm.DB
	db  *sql.DB
	tx  *sql.Tx
}

func NewRepository(gdb *gorm.DB, db *sql.DB) Repository {
	return &repository{gdb: gdb, db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{gdb: r.gdb, db: r.db, tx: tx}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) Create(ctx context.Context, t *Timesheet) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	_, err := r.execer().ExecContext(ctx, `
        INSERT INTO timesheets (
            id, worker_id, job_id, stage_id, date, hours, weather,
            idle, idle_note, rework, rework_note, area_executed, day_rate,
            batch_id, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)`,
		t.ID, t.WorkerID, t.JobID, uuidOrNil(t.StageID), t.Date, t.Hours, t.Weather,
		t.Idle, t.IdleNote, t.Rework, t.ReworkNote, t.AreaExecuted, t.DayRate,
		uuidOrNil(t.BatchID), now,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	var t Timesheet
	err := r.gdb.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Timesheet, error) {
	q := r.gdb.WithContext(ctx).Order("date DESC, created_at DESC")
	if filter.WorkerID != "" {
		q = q.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.JobID != "" {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date <= ?", *filter.DateTo)
	}

	var rows []Timesheet
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, t *Timesheet) error {
	_, err := r.execer().ExecContext(ctx, `
        UPDATE timesheets
        SET worker_id = $2, job_id = $3, stage_id = $4, date = $5, hours = $6,
            weather = $7, idle = $8, idle_note = $9, rework = $10,
            rework_note = $11, area_executed = $12, day_rate = $13, updated_at = $14
        WHERE id = $1 AND deleted_at IS NULL`,
		t.ID, t.WorkerID, t.JobID, uuidOrNil(t.StageID), t.Date, t.Hours,
		t.Weather, t.Idle, t.IdleNote, t.Rework,
		t.ReworkNote, t.AreaExecuted, t.DayRate, time.Now().UTC(),
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.execer().ExecContext(ctx, `
        UPDATE timesheets SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now().UTC(),
	)
	return err
}

// AcquireDayLock serializes normalizer runs on one (worker, date) bucket.
func (r *repository) AcquireDayLock(ctx context.Context, workerID uuid.UUID, date time.Time) error {
	_, err := r.execer().ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		workerID.String()+":"+date.Format("2006-01-02"),
	)
	return err
}

func (r *repository) ListDayRows(ctx context.Context, workerID uuid.UUID, date time.Time) ([]DayRow, error) {
	rows, err := r.execer().QueryContext(ctx, `
        SELECT id, created_at, day_rate
        FROM timesheets
        WHERE worker_id = $1 AND date = $2 AND deleted_at IS NULL`,
		workerID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRow
	for rows.Next() {
		var row DayRow
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.DayRate); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) ApplyDayRateChanges(ctx context.Context, changes []DayRateChange) error {
	for _, change := range changes {
		_, err := r.execer().ExecContext(ctx, `
            UPDATE timesheets SET day_rate = $2, updated_at = $3 WHERE id = $1`,
			change.ID, change.DayRate, time.Now().UTC(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) WorkerRate(ctx context.Context, workerID uuid.UUID) (decimal.Decimal, string, error) {
	var rate decimal.Decimal
	var role string
	err := r.execer().QueryRowContext(ctx, `
        SELECT daily_rate, role FROM workers WHERE id = $1 AND deleted_at IS NULL`,
		workerID,
	).Scan(&rate, &role)
	return rate, role, err
}

func (r *repository) JobExists(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var count int
	err := r.execer().QueryRowContext(ctx, `
        SELECT COUNT(1) FROM jobs WHERE id = $1 AND deleted_at IS NULL`,
		jobID,
	).Scan(&count)
	return count > 0, err
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
