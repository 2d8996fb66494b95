package job

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=job_repo.go -destination=mock/job_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateJob(ctx context.Context, j *Job) error
	CreateStages(ctx context.Context, stages []Stage) error
	FindByID(ctx context.Context, id string) (*Job, error)
	FindAll(ctx context.Context, status string) ([]Job, error)
	UpdateJob(ctx context.Context, j *Job) error
	FindStage(ctx context.Context, jobID string, stageNumber int) (*Stage, error)
	FindStagesByJob(ctx context.Context, jobID string) ([]Stage, error)
	UpdateStage(ctx context.Context, s *Stage) error
	FindStageDetail(ctx context.Context, stageID uuid.UUID) (*StageDetail, error)
	SaveStageDetail(ctx context.Context, d *StageDetail) error
	AppendStageHistory(ctx context.Context, e *StageHistoryEntry) error
	ListStageHistory(ctx context.Context, stageID string) ([]StageHistoryEntry, error)
	ClientExists(ctx context.Context, clientID string) (bool, error)
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

func (r *repository) CreateJob(ctx context.Context, j *Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *repository) CreateStages(ctx context.Context, stages []Stage) error {
	return r.db.WithContext(ctx).Create(&stages).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Job, error) {
	var j Job
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_number ASC")
		}).
		Preload("Stages.Detail").
		Preload("Client").
		Where("id = ?", id).
		First(&j).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *repository) FindAll(ctx context.Context, status string) ([]Job, error) {
	q := r.db.WithContext(ctx).Order("start_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []Job
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateJob(ctx context.Context, j *Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *repository) FindStage(ctx context.Context, jobID string, stageNumber int) (*Stage, error) {
	var s Stage
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND stage_number = ?", jobID, stageNumber).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindStagesByJob(ctx context.Context, jobID string) ([]Stage, error) {
	var rows []Stage
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("stage_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateStage(ctx context.Context, s *Stage) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) FindStageDetail(ctx context.Context, stageID uuid.UUID) (*StageDetail, error) {
	var d StageDetail
	err := r.db.WithContext(ctx).Where("stage_id = ?", stageID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) SaveStageDetail(ctx context.Context, d *StageDetail) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) AppendStageHistory(ctx context.Context, e *StageHistoryEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) ListStageHistory(ctx context.Context, stageID string) ([]StageHistoryEntry, error) {
	var rows []StageHistoryEntry
	err := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ClientRef{}).
		Where("id = ?", clientID).
		Count(&count).Error
	return count > 0, err
}
