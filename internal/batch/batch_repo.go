package batch

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RosterWorkerInfo is what the splitter needs to know about each worker.
type RosterWorkerInfo struct {
	ID        uuid.UUID
	FullName  string
	Role      string
	DailyRate decimal.Decimal
}

//go:generate mockgen -source=batch_repo.go -destination=mock/batch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateBatch(ctx context.Context, b *BatchEntry) error
	CreateRoster(ctx context.Context, roster []BatchWorker) error
	FindByID(ctx context.Context, id string) (*BatchEntry, error)
	FindByJob(ctx context.Context, jobID string) ([]BatchEntry, error)

	WorkersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]RosterWorkerInfo, error)
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

func (r *repository) CreateBatch(ctx context.Context, b *BatchEntry) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	_, err := r.execer().ExecContext(ctx, `
        INSERT INTO batch_entries (
            id, job_id, stage_id, date, total_output, unit, weather,
            idle, idle_note, rework, rework_note, created_by, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.JobID, uuidOrNil(b.StageID), b.Date, decimalOrNil(b.TotalOutput), b.Unit,
		b.Weather, b.Idle, b.IdleNote, b.Rework, b.ReworkNote, b.CreatedBy, now,
	)
	return err
}

func (r *repository) CreateRoster(ctx context.Context, roster []BatchWorker) error {
	for _, entry := range roster {
		_, err := r.execer().ExecContext(ctx, `
            INSERT INTO batch_workers (id, batch_id, worker_id, hours)
            VALUES ($1, $2, $3, $4)`,
			entry.ID, entry.BatchID, entry.WorkerID, entry.Hours,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*BatchEntry, error) {
	var b BatchEntry
	err := r.gdb.WithContext(ctx).Preload("Roster").Where("id = ?", id).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByJob(ctx context.Context, jobID string) ([]BatchEntry, error) {
	var rows []BatchEntry
	err := r.gdb.WithContext(ctx).
		Preload("Roster").
		Where("job_id = ?", jobID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) WorkersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]RosterWorkerInfo, error) {
	out := make(map[uuid.UUID]RosterWorkerInfo, len(ids))
	for _, id := range ids {
		var info RosterWorkerInfo
		err := r.execer().QueryRowContext(ctx, `
            SELECT id, full_name, role, daily_rate
            FROM workers
            WHERE id = $1 AND active = true AND deleted_at IS NULL`,
			id,
		).Scan(&info.ID, &info.FullName, &info.Role, &info.DailyRate)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = info
	}
	return out, nil
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

func decimalOrNil(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}
