package fiscalization_test

import (
	"context"
	"testing"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/fiscalization"
	fiscerrors "github.com/vendas-sistemas/perroni-sub000/internal/fiscalization/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeVisitRepository struct {
	createFn    func(ctx context.Context, v *fiscalization.Visit) error
	findByIDFn  func(ctx context.Context, id string) (*fiscalization.Visit, error)
	findByJobFn func(ctx context.Context, jobID string) ([]fiscalization.Visit, error)
	updateFn    func(ctx context.Context, v *fiscalization.Visit) error
	deleteFn    func(ctx context.Context, id string) error
	jobExistsFn func(ctx context.Context, jobID string) (bool, error)
}

func (f *fakeVisitRepository) Create(ctx context.Context, v *fiscalization.Visit) error {
	if f.createFn != nil {
		return f.createFn(ctx, v)
	}
	return nil
}

func (f *fakeVisitRepository) FindByID(ctx context.Context, id string) (*fiscalization.Visit, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVisitRepository) FindByJob(ctx context.Context, jobID string) ([]fiscalization.Visit, error) {
	if f.findByJobFn != nil {
		return f.findByJobFn(ctx, jobID)
	}
	return nil, nil
}

func (f *fakeVisitRepository) Update(ctx context.Context, v *fiscalization.Visit) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, v)
	}
	return nil
}

func (f *fakeVisitRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeVisitRepository) JobExists(ctx context.Context, jobID string) (bool, error) {
	if f.jobExistsFn != nil {
		return f.jobExistsFn(ctx, jobID)
	}
	return true, nil
}

func TestFiscalizationService_Create(t *testing.T) {
	jobID := uuid.New()

	t.Run("records the visit", func(t *testing.T) {
		repo := &fakeVisitRepository{}
		svc := fiscalization.NewService(repo)

		var created *fiscalization.Visit
		repo.createFn = func(ctx context.Context, v *fiscalization.Visit) error {
			created = v
			return nil
		}

		resp, err := svc.Create(context.Background(), fiscalization.CreateVisitRequest{
			JobID:     jobID.String(),
			VisitDate: "2026-03-02",
			Inspector: "Eng. Ribeiro",
			Outcome:   "PENDING_FIXES",
			Notes:     "guarda-corpo da laje",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, jobID.String(), resp.JobID)
		assert.Equal(t, "2026-03-02", resp.VisitDate)
		assert.Equal(t, "PENDING_FIXES", resp.Outcome)
	})

	t.Run("bad date format", func(t *testing.T) {
		svc := fiscalization.NewService(&fakeVisitRepository{})

		_, err := svc.Create(context.Background(), fiscalization.CreateVisitRequest{
			JobID:     jobID.String(),
			VisitDate: "02/03/2026",
			Inspector: "Eng. Ribeiro",
			Outcome:   "APPROVED",
		})

		assert.ErrorIs(t, err, fiscerrors.ErrInvalidDateFormat)
	})

	t.Run("unknown job", func(t *testing.T) {
		repo := &fakeVisitRepository{
			jobExistsFn: func(ctx context.Context, jobID string) (bool, error) {
				return false, nil
			},
		}
		svc := fiscalization.NewService(repo)

		_, err := svc.Create(context.Background(), fiscalization.CreateVisitRequest{
			JobID:     jobID.String(),
			VisitDate: "2026-03-02",
			Inspector: "Eng. Ribeiro",
			Outcome:   "APPROVED",
		})

		assert.ErrorIs(t, err, fiscerrors.ErrJobNotFound)
	})
}

func TestFiscalizationService_Update(t *testing.T) {
	visit := &fiscalization.Visit{
		ID:        uuid.New(),
		JobID:     uuid.New(),
		VisitDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Inspector: "Eng. Ribeiro",
		Outcome:   "PENDING_FIXES",
	}

	t.Run("changes outcome and notes", func(t *testing.T) {
		repo := &fakeVisitRepository{
			findByIDFn: func(ctx context.Context, id string) (*fiscalization.Visit, error) {
				copied := *visit
				return &copied, nil
			},
		}
		svc := fiscalization.NewService(repo)

		resp, err := svc.Update(context.Background(), visit.ID.String(), fiscalization.UpdateVisitRequest{
			Outcome: "APPROVED",
			Notes:   "pendências resolvidas",
		})

		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Outcome)
		assert.Equal(t, "pendências resolvidas", resp.Notes)
		assert.Equal(t, "Eng. Ribeiro", resp.Inspector)
	})

	t.Run("unknown visit", func(t *testing.T) {
		svc := fiscalization.NewService(&fakeVisitRepository{})

		_, err := svc.Update(context.Background(), uuid.New().String(), fiscalization.UpdateVisitRequest{
			Outcome: "APPROVED",
		})

		assert.ErrorIs(t, err, fiscerrors.ErrVisitNotFound)
	})
}

func TestFiscalizationService_Delete(t *testing.T) {
	t.Run("removes a known visit", func(t *testing.T) {
		visitID := uuid.New()
		deleted := ""
		repo := &fakeVisitRepository{
			findByIDFn: func(ctx context.Context, id string) (*fiscalization.Visit, error) {
				return &fiscalization.Visit{ID: visitID}, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		svc := fiscalization.NewService(repo)

		assert.NoError(t, svc.Delete(context.Background(), visitID.String()))
		assert.Equal(t, visitID.String(), deleted)
	})

	t.Run("unknown visit", func(t *testing.T) {
		svc := fiscalization.NewService(&fakeVisitRepository{})

		err := svc.Delete(context.Background(), uuid.New().String())

		assert.ErrorIs(t, err, fiscerrors.ErrVisitNotFound)
	})
}
