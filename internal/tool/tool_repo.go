package tool

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tool_repo.go -destination=mock/tool_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateTool(ctx context.Context, t *ToolModel) error
	FindToolByID(ctx context.Context, id string) (*ToolModel, error)
	FindAllTools(ctx context.Context, activeOnly bool) ([]ToolModel, error)
	UpdateTool(ctx context.Context, t *ToolModel) error

	// Ledger primitives. Everything below must run inside a transaction
	// holding the per-tool advisory lock.
	AcquireToolLock(ctx context.Context, toolID uuid.UUID) error
	LocationQty(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID) (int, error)
	DecrementLocation(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error
	IncrementLocation(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error
	AddToTotal(ctx context.Context, toolID uuid.UUID, delta int) error
	TotalQty(ctx context.Context, toolID uuid.UUID) (int, error)
	SumLocations(ctx context.Context, toolID uuid.UUID) (int, error)
	CreateMove(ctx context.Context, m *LedgerMove) error

	ListLocations(ctx context.Context, toolID string) ([]ToolLocation, error)
	ListMoves(ctx context.Context, toolID string, limit int) ([]LedgerMove, error)
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

func (r *repository) CreateTool(ctx context.Context, t *ToolModel) error {
	return r.gdb.WithContext(ctx).Create(t).Error
}

func (r *repository) FindToolByID(ctx context.Context, id string) (*ToolModel, error) {
	var t ToolModel
	err := r.gdb.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindAllTools(ctx context.Context, activeOnly bool) ([]ToolModel, error) {
	q := r.gdb.WithContext(ctx).Order("code ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var rows []ToolModel
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateTool(ctx context.Context, t *ToolModel) error {
	return r.gdb.WithContext(ctx).Save(t).Error
}

// AcquireToolLock serializes concurrent moves on the same tool for the rest
// of the transaction. Released automatically at commit or rollback.
func (r *repository) AcquireToolLock(ctx context.Context, toolID uuid.UUID) error {
	_, err := r.execer().ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		toolID.String(),
	)
	return err
}

func (r *repository) LocationQty(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID) (int, error) {
	query := `
        SELECT COALESCE(SUM(qty), 0)
        FROM tool_locations
        WHERE tool_id = $1 AND location_type = $2 AND job_id IS NOT DISTINCT FROM $3`

	var qty int
	err := r.execer().QueryRowContext(ctx, query, toolID, locationType, uuidOrNil(jobID)).Scan(&qty)
	return qty, err
}

func (r *repository) DecrementLocation(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error {
	_, err := r.execer().ExecContext(ctx, `
        UPDATE tool_locations
        SET qty = qty - $4, updated_at = $5
        WHERE tool_id = $1 AND location_type = $2 AND job_id IS NOT DISTINCT FROM $3`,
		toolID, locationType, uuidOrNil(jobID), qty, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	// rows at zero are removed, locations are transient
	_, err = r.execer().ExecContext(ctx, `
        DELETE FROM tool_locations
        WHERE tool_id = $1 AND location_type = $2 AND job_id IS NOT DISTINCT FROM $3 AND qty <= 0`,
		toolID, locationType, uuidOrNil(jobID),
	)
	return err
}

func (r *repository) IncrementLocation(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error {
	// check-then-act is safe here: the caller holds the per-tool advisory lock
	res, err := r.execer().ExecContext(ctx, `
        UPDATE tool_locations
        SET qty = qty + $4, updated_at = $5
        WHERE tool_id = $1 AND location_type = $2 AND job_id IS NOT DISTINCT FROM $3`,
		toolID, locationType, uuidOrNil(jobID), qty, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	_, err = r.execer().ExecContext(ctx, `
        INSERT INTO tool_locations (id, tool_id, location_type, job_id, qty, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		uuid.New(), toolID, locationType, uuidOrNil(jobID), qty, time.Now().UTC(),
	)
	return err
}

func (r *repository) AddToTotal(ctx context.Context, toolID uuid.UUID, delta int) error {
	_, err := r.execer().ExecContext(ctx, `
        UPDATE tool_models
        SET total_qty = total_qty + $2, updated_at = $3
        WHERE id = $1`,
		toolID, delta, time.Now().UTC(),
	)
	return err
}

func (r *repository) TotalQty(ctx context.Context, toolID uuid.UUID) (int, error) {
	var total int
	err := r.execer().QueryRowContext(ctx,
		`SELECT total_qty FROM tool_models WHERE id = $1`,
		toolID,
	).Scan(&total)
	return total, err
}

func (r *repository) SumLocations(ctx context.Context, toolID uuid.UUID) (int, error) {
	var sum int
	err := r.execer().QueryRowContext(ctx,
		`SELECT COALESCE(SUM(qty), 0) FROM tool_locations WHERE tool_id = $1`,
		toolID,
	).Scan(&sum)
	return sum, err
}

func (r *repository) CreateMove(ctx context.Context, m *LedgerMove) error {
	_, err := r.execer().ExecContext(ctx, `
        INSERT INTO ledger_moves (
            id, tool_id, qty, kind, source_type, source_job_id,
            dest_type, dest_job_id, responsible, note, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.ToolID, m.Qty, m.Kind, m.SourceType, uuidOrNil(m.SourceJobID),
		m.DestType, uuidOrNil(m.DestJobID), m.Responsible, m.Note, time.Now().UTC(),
	)
	return err
}

func (r *repository) ListLocations(ctx context.Context, toolID string) ([]ToolLocation, error) {
	var rows []ToolLocation
	err := r.gdb.WithContext(ctx).
		Where("tool_id = ?", toolID).
		Order("location_type ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListMoves(ctx context.Context, toolID string, limit int) ([]LedgerMove, error) {
	q := r.gdb.WithContext(ctx).
		Where("tool_id = ?", toolID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []LedgerMove
	err := q.Find(&rows).Error
	return rows, err
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
