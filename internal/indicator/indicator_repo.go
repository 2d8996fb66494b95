package indicator

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows analytics selections. Zero values mean "no constraint".
type Filter struct {
	JobID    string
	StageID  string
	WorkerID string
	DateFrom *time.Time
	DateTo   *time.Time
	Weather  string
}

// Row is the projection analytics reductions run over.
type Row struct {
	WorkerID   uuid.UUID
	WorkerName string
	JobID      uuid.UUID
	Indicator  string
	Date       time.Time
	Qty        decimal.Decimal
}

// TimesheetRow is the timesheet projection for summary and cross reductions.
type TimesheetRow struct {
	WorkerID   uuid.UUID
	WorkerName string
	JobID      uuid.UUID
	Date       time.Time
	Hours      decimal.Decimal
	Idle       bool
	Rework     bool
}

// StageDayRow is one distinct (stage-number, job, date) of mason work on an
// incomplete stage of an active job.
type StageDayRow struct {
	StageNumber int
	JobID       uuid.UUID
	Date        time.Time
}

//go:generate mockgen -source=indicator_repo.go -destination=mock/indicator_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// UpsertAdd creates the bucket with qty, or adds qty into it.
	UpsertAdd(ctx context.Context, rec *IndicatorRecord) error

	MasonRecords(ctx context.Context, code string, f Filter) ([]Row, error)
	MasonRecordsAllIndicators(ctx context.Context, f Filter) ([]Row, error)
	WorkerRecords(ctx context.Context, workerID string, f Filter) ([]Row, error)
	MasonTimesheets(ctx context.Context, f Filter) ([]TimesheetRow, error)
	// WorkerTimesheets returns one worker's rows regardless of role.
	WorkerTimesheets(ctx context.Context, workerID string, f Filter) ([]TimesheetRow, error)
	OpenStageWorkDays(ctx context.Context, f Filter) ([]StageDayRow, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) UpsertAdd(ctx context.Context, rec *IndicatorRecord) error {
	now := time.Now().UTC()
	_, err := r.execer().ExecContext(ctx, `
        INSERT INTO indicator_records (
            id, worker_id, date, job_id, indicator, qty, stage_id, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        ON CONFLICT (worker_id, date, job_id, indicator)
        DO UPDATE SET qty = indicator_records.qty + EXCLUDED.qty, updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.WorkerID, rec.Date, rec.JobID, rec.Indicator, rec.Qty, uuidOrNil(rec.StageID), now,
	)
	return err
}

// recordFilterClauses renders the shared filter into WHERE fragments for
// queries aliased ir (indicator_records) and w (workers).
func recordFilterClauses(f Filter, args *[]any) []string {
	var clauses []string
	add := func(clause string, value any) {
		*args = append(*args, value)
		clauses = append(clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(*args))))
	}

	if f.JobID != "" {
		add("ir.job_id = ?", f.JobID)
	}
	if f.StageID != "" {
		add("ir.stage_id = ?", f.StageID)
	}
	if f.WorkerID != "" {
		add("ir.worker_id = ?", f.WorkerID)
	}
	if f.DateFrom != nil {
		add("ir.date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("ir.date <= ?", *f.DateTo)
	}
	if f.Weather != "" {
		add(`EXISTS (
            SELECT 1 FROM timesheets t
            WHERE t.worker_id = ir.worker_id AND t.date = ir.date
              AND t.job_id = ir.job_id AND t.weather = ? AND t.deleted_at IS NULL
        )`, f.Weather)
	}
	return clauses
}

func (r *repository) MasonRecords(ctx context.Context, code string, f Filter) ([]Row, error) {
	args := []any{code}
	query := `
        SELECT ir.worker_id, w.full_name, ir.job_id, ir.indicator, ir.date, ir.qty
        FROM indicator_records ir
        JOIN workers w ON w.id = ir.worker_id AND w.deleted_at IS NULL
        WHERE ir.indicator = $1 AND ir.qty > 0 AND w.role = 'MASON'`
	for _, clause := range recordFilterClauses(f, &args) {
		query += " AND " + clause
	}
	query += " ORDER BY ir.date ASC"

	return r.queryRows(ctx, query, args)
}

func (r *repository) MasonRecordsAllIndicators(ctx context.Context, f Filter) ([]Row, error) {
	args := []any{}
	query := `
        SELECT ir.worker_id, w.full_name, ir.job_id, ir.indicator, ir.date, ir.qty
        FROM indicator_records ir
        JOIN workers w ON w.id = ir.worker_id AND w.deleted_at IS NULL
        WHERE ir.qty > 0 AND w.role = 'MASON'`
	for _, clause := range recordFilterClauses(f, &args) {
		query += " AND " + clause
	}
	query += " ORDER BY ir.date ASC"

	return r.queryRows(ctx, query, args)
}

func (r *repository) WorkerRecords(ctx context.Context, workerID string, f Filter) ([]Row, error) {
	args := []any{workerID}
	query := `
        SELECT ir.worker_id, w.full_name, ir.job_id, ir.indicator, ir.date, ir.qty
        FROM indicator_records ir
        JOIN workers w ON w.id = ir.worker_id AND w.deleted_at IS NULL
        WHERE ir.worker_id = $1 AND ir.qty > 0`
	for _, clause := range recordFilterClauses(f, &args) {
		query += " AND " + clause
	}
	query += " ORDER BY ir.date ASC"

	return r.queryRows(ctx, query, args)
}

func (r *repository) queryRows(ctx context.Context, query string, args []any) ([]Row, error) {
	rows, err := r.execer().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.WorkerID, &row.WorkerName, &row.JobID, &row.Indicator, &row.Date, &row.Qty); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) MasonTimesheets(ctx context.Context, f Filter) ([]TimesheetRow, error) {
	return r.timesheetRows(ctx, f, true)
}

func (r *repository) WorkerTimesheets(ctx context.Context, workerID string, f Filter) ([]TimesheetRow, error) {
	f.WorkerID = workerID
	return r.timesheetRows(ctx, f, false)
}

func (r *repository) timesheetRows(ctx context.Context, f Filter, masonsOnly bool) ([]TimesheetRow, error) {
	var args []any
	query := `
        SELECT t.worker_id, w.full_name, t.job_id, t.date, t.hours, t.idle, t.rework
        FROM timesheets t
        JOIN workers w ON w.id = t.worker_id AND w.deleted_at IS NULL
        WHERE t.deleted_at IS NULL`
	if masonsOnly {
		query += " AND w.role = 'MASON'"
	}
	add := func(clause string, value any) {
		args = append(args, value)
		query += " AND " + strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args)))
	}
	if f.JobID != "" {
		add("t.job_id = ?", f.JobID)
	}
	if f.StageID != "" {
		add("t.stage_id = ?", f.StageID)
	}
	if f.WorkerID != "" {
		add("t.worker_id = ?", f.WorkerID)
	}
	if f.DateFrom != nil {
		add("t.date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("t.date <= ?", *f.DateTo)
	}
	if f.Weather != "" {
		add("t.weather = ?", f.Weather)
	}

	rows, err := r.execer().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TimesheetRow
	for rows.Next() {
		var row TimesheetRow
		if err := rows.Scan(&row.WorkerID, &row.WorkerName, &row.JobID, &row.Date, &row.Hours, &row.Idle, &row.Rework); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) OpenStageWorkDays(ctx context.Context, f Filter) ([]StageDayRow, error) {
	var args []any
	query := `
        SELECT DISTINCT s.stage_number, t.job_id, t.date
        FROM timesheets t
        JOIN workers w ON w.id = t.worker_id AND w.deleted_at IS NULL
        JOIN stages s ON s.id = t.stage_id
        JOIN jobs j ON j.id = t.job_id AND j.deleted_at IS NULL
        WHERE t.deleted_at IS NULL
          AND w.role = 'MASON'
          AND s.completed = false
          AND j.status IN ('PLANNING', 'IN_PROGRESS')`
	add := func(clause string, value any) {
		args = append(args, value)
		query += " AND " + strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args)))
	}
	if f.JobID != "" {
		add("t.job_id = ?", f.JobID)
	}
	if f.StageID != "" {
		add("t.stage_id = ?", f.StageID)
	}
	if f.WorkerID != "" {
		add("t.worker_id = ?", f.WorkerID)
	}
	if f.DateFrom != nil {
		add("t.date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("t.date <= ?", *f.DateTo)
	}
	if f.Weather != "" {
		add("t.weather = ?", f.Weather)
	}

	rows, err := r.execer().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StageDayRow
	for rows.Next() {
		var row StageDayRow
		if err := rows.Scan(&row.StageNumber, &row.JobID, &row.Date); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
