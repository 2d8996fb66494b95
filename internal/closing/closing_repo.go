package closing

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WeekRow is one timesheet row inside the closing window.
type WeekRow struct {
	Date   time.Time
	Hours  decimal.Decimal
	Idle   bool
	Rework bool
}

//go:generate mockgen -source=closing_repo.go -destination=mock/closing_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, c *WeeklyClosing) error
	Update(ctx context.Context, c *WeeklyClosing) error
	FindByID(ctx context.Context, id string) (*WeeklyClosing, error)
	FindByWorkerPeriod(ctx context.Context, workerID uuid.UUID, start, end time.Time) (*WeeklyClosing, error)
	FindByWorker(ctx context.Context, workerID string) ([]WeeklyClosing, error)

	WeekRows(ctx context.Context, workerID uuid.UUID, start, end time.Time) ([]WeekRow, error)
	WorkerRate(ctx context.Context, workerID uuid.UUID) (decimal.Decimal, error)
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

func (r *repository) Create(ctx context.Context, c *WeeklyClosing) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	_, err := r.execer().ExecContext(ctx, `
        INSERT INTO weekly_closings (
            id, worker_id, start_date, end_date, total_days, total_hours,
            total_value, idle_days, rework_days, status, pay_date, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
		c.ID, c.WorkerID, c.StartDate, c.EndDate, c.TotalDays, c.TotalHours,
		c.TotalValue, c.IdleDays, c.ReworkDays, c.Status, timeOrNil(c.PayDate), now,
	)
	return err
}

func (r *repository) Update(ctx context.Context, c *WeeklyClosing) error {
	_, err := r.execer().ExecContext(ctx, `
        UPDATE weekly_closings
        SET total_days = $2, total_hours = $3, total_value = $4, idle_days = $5,
            rework_days = $6, status = $7, pay_date = $8, updated_at = $9
        WHERE id = $1`,
		c.ID, c.TotalDays, c.TotalHours, c.TotalValue, c.IdleDays,
		c.ReworkDays, c.Status, timeOrNil(c.PayDate), time.Now().UTC(),
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*WeeklyClosing, error) {
	var c WeeklyClosing
	err := r.gdb.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByWorkerPeriod(ctx context.Context, workerID uuid.UUID, start, end time.Time) (*WeeklyClosing, error) {
	var c WeeklyClosing
	err := r.gdb.WithContext(ctx).
		Where("worker_id = ? AND start_date = ? AND end_date = ?", workerID, start, end).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByWorker(ctx context.Context, workerID string) ([]WeeklyClosing, error) {
	var rows []WeeklyClosing
	err := r.gdb.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) WeekRows(ctx context.Context, workerID uuid.UUID, start, end time.Time) ([]WeekRow, error) {
	rows, err := r.execer().QueryContext(ctx, `
        SELECT date, hours, idle, rework
        FROM timesheets
        WHERE worker_id = $1 AND date >= $2 AND date <= $3 AND deleted_at IS NULL`,
		workerID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WeekRow
	for rows.Next() {
		var row WeekRow
		if err := rows.Scan(&row.Date, &row.Hours, &row.Idle, &row.Rework); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) WorkerRate(ctx context.Context, workerID uuid.UUID) (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := r.execer().QueryRowContext(ctx, `
        SELECT daily_rate FROM workers WHERE id = $1 AND deleted_at IS NULL`,
		workerID,
	).Scan(&rate)
	return rate, err
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
