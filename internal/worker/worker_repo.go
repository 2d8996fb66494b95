package worker

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=worker_repo.go -destination=mock/worker_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *Worker) error
	FindByID(ctx context.Context, id string) (*Worker, error)
	FindAll(ctx context.Context, activeOnly bool) ([]Worker, error)
	Update(ctx context.Context, w *Worker) error
	HasTimesheetRows(ctx context.Context, workerID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]Worker, error) {
	q := r.db.WithContext(ctx).Order("full_name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var rows []Worker
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// HasTimesheetRows reports whether any timesheet references the worker. The
// role becomes immutable once this is true.
func (r *repository) HasTimesheetRows(ctx context.Context, workerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("timesheets").
		Where("worker_id = ? AND deleted_at IS NULL", workerID).
		Count(&count).Error
	return count > 0, err
}
