package fiscalization

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=fiscalization_repo.go -destination=mock/fiscalization_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, v *Visit) error
	FindByID(ctx context.Context, id string) (*Visit, error)
	FindByJob(ctx context.Context, jobID string) ([]Visit, error)
	Update(ctx context.Context, v *Visit) error
	Delete(ctx context.Context, id string) error
	JobExists(ctx context.Context, jobID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Visit) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Visit, error) {
	var v Visit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) FindByJob(ctx context.Context, jobID string) ([]Visit, error) {
	var rows []Visit
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("visit_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, v *Visit) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Visit{}).Error
}

func (r *repository) JobExists(ctx context.Context, jobID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("jobs").
		Where("id = ? AND deleted_at IS NULL", jobID).
		Count(&count).Error
	return count > 0, err
}
