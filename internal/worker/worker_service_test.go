package worker_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/vendas-sistemas/perroni-sub000/internal/config"
	"github.com/vendas-sistemas/perroni-sub000/internal/worker"
	workererrors "github.com/vendas-sistemas/perroni-sub000/internal/worker/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeWorkerRepository struct {
	createFn           func(ctx context.Context, w *worker.Worker) error
	findByIDFn         func(ctx context.Context, id string) (*worker.Worker, error)
	findAllFn          func(ctx context.Context, activeOnly bool) ([]worker.Worker, error)
	updateFn           func(ctx context.Context, w *worker.Worker) error
	hasTimesheetRowsFn func(ctx context.Context, workerID string) (bool, error)
}

func (f *fakeWorkerRepository) WithTx(tx *sql.Tx) worker.Repository { return f }

func (f *fakeWorkerRepository) Create(ctx context.Context, w *worker.Worker) error {
	if f.createFn != nil {
		return f.createFn(ctx, w)
	}
	return nil
}

func (f *fakeWorkerRepository) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerRepository) FindAll(ctx context.Context, activeOnly bool) ([]worker.Worker, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, activeOnly)
	}
	return nil, nil
}

func (f *fakeWorkerRepository) Update(ctx context.Context, w *worker.Worker) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, w)
	}
	return nil
}

func (f *fakeWorkerRepository) HasTimesheetRows(ctx context.Context, workerID string) (bool, error) {
	if f.hasTimesheetRowsFn != nil {
		return f.hasTimesheetRowsFn(ctx, workerID)
	}
	return false, nil
}

type workerServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service worker.Service
	repo    *fakeWorkerRepository
}

func setupWorkerServiceTest(t *testing.T) *workerServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeWorkerRepository{}
	svc := worker.NewService(db, repo)

	return &workerServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectWorkerTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func storedWorker(rate string) *worker.Worker {
	return &worker.Worker{
		ID:        uuid.New(),
		FullName:  "João Da Silva",
		TaxID:     "123.456.789-09",
		Role:      config.RoleMason,
		DailyRate: decimal.RequireFromString(rate),
		Active:    true,
	}
}

func TestWorkerService_Create(t *testing.T) {
	t.Run("titlecases the name and rounds the rate", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)
		expectWorkerTx(t, deps.sqlMock, true)

		var created *worker.Worker
		deps.repo.createFn = func(ctx context.Context, w *worker.Worker) error {
			created = w
			return nil
		}

		resp, err := deps.service.Create(context.Background(), worker.CreateWorkerRequest{
			FullName:  "  joão da silva ",
			TaxID:     " 123.456.789-09 ",
			Role:      config.RoleMason,
			DailyRate: "180.005",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "João Da Silva", resp.FullName)
		assert.Equal(t, "123.456.789-09", resp.TaxID)
		assert.Equal(t, "180.00", resp.DailyRate)
		assert.True(t, resp.Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid role fails before the transaction", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)

		_, err := deps.service.Create(context.Background(), worker.CreateWorkerRequest{
			FullName:  "João",
			TaxID:     "123.456.789-09",
			Role:      "FOREMAN",
			DailyRate: "180.00",
		})

		assert.ErrorIs(t, err, workererrors.ErrInvalidRole)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)

		_, err := deps.service.Create(context.Background(), worker.CreateWorkerRequest{
			FullName:  "João",
			TaxID:     "123.456.789-09",
			Role:      config.RoleHelper,
			DailyRate: "-10",
		})

		assert.ErrorIs(t, err, workererrors.ErrNegativeDailyRate)
	})

	t.Run("duplicate tax id maps to conflict", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)
		expectWorkerTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, w *worker.Worker) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_worker_tax_id"}
		}

		_, err := deps.service.Create(context.Background(), worker.CreateWorkerRequest{
			FullName:  "João",
			TaxID:     "123.456.789-09",
			Role:      config.RoleMason,
			DailyRate: "180.00",
		})

		assert.ErrorIs(t, err, workererrors.ErrTaxIDAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestWorkerService_Update(t *testing.T) {
	t.Run("role change is allowed while no timesheet references the worker", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)
		expectWorkerTx(t, deps.sqlMock, true)

		w := storedWorker("180.00")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*worker.Worker, error) {
			return w, nil
		}
		deps.repo.hasTimesheetRowsFn = func(ctx context.Context, workerID string) (bool, error) {
			return false, nil
		}

		resp, err := deps.service.Update(context.Background(), w.ID.String(), worker.UpdateWorkerRequest{
			FullName:  "João da Silva",
			Role:      config.RoleHelper,
			DailyRate: "120.00",
		})

		assert.NoError(t, err)
		assert.Equal(t, config.RoleHelper, resp.Role)
		assert.Equal(t, "120.00", resp.DailyRate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("role is immutable once timesheet rows exist", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)
		expectWorkerTx(t, deps.sqlMock, false)

		w := storedWorker("180.00")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*worker.Worker, error) {
			return w, nil
		}
		deps.repo.hasTimesheetRowsFn = func(ctx context.Context, workerID string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Update(context.Background(), w.ID.String(), worker.UpdateWorkerRequest{
			FullName:  "João da Silva",
			Role:      config.RoleHelper,
			DailyRate: "180.00",
		})

		assert.ErrorIs(t, err, workererrors.ErrRoleImmutable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("same role skips the timesheet check", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)
		expectWorkerTx(t, deps.sqlMock, true)

		w := storedWorker("180.00")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*worker.Worker, error) {
			return w, nil
		}
		checked := false
		deps.repo.hasTimesheetRowsFn = func(ctx context.Context, workerID string) (bool, error) {
			checked = true
			return true, nil
		}

		inactive := false
		resp, err := deps.service.Update(context.Background(), w.ID.String(), worker.UpdateWorkerRequest{
			FullName:  "João da Silva",
			Role:      config.RoleMason,
			DailyRate: "200.00",
			Active:    &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, checked)
		assert.Equal(t, "200.00", resp.DailyRate)
		assert.False(t, resp.Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id fails before the transaction", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)

		_, err := deps.service.Update(context.Background(), "not-a-uuid", worker.UpdateWorkerRequest{
			FullName:  "João",
			Role:      config.RoleMason,
			DailyRate: "180.00",
		})

		assert.ErrorIs(t, err, workererrors.ErrInvalidWorkerID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestWorkerService_Deactivate(t *testing.T) {
	t.Run("marks the worker inactive", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)
		expectWorkerTx(t, deps.sqlMock, true)

		w := storedWorker("180.00")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*worker.Worker, error) {
			return w, nil
		}
		var updated *worker.Worker
		deps.repo.updateFn = func(ctx context.Context, u *worker.Worker) error {
			updated = u
			return nil
		}

		err := deps.service.Deactivate(context.Background(), w.ID.String())

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.False(t, updated.Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown worker", func(t *testing.T) {
		deps := setupWorkerServiceTest(t)
		expectWorkerTx(t, deps.sqlMock, false)

		err := deps.service.Deactivate(context.Background(), uuid.New().String())

		assert.ErrorIs(t, err, workererrors.ErrWorkerNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestWorkerService_GetByID(t *testing.T) {
	deps := setupWorkerServiceTest(t)

	t.Run("invalid id", func(t *testing.T) {
		_, err := deps.service.GetByID(context.Background(), "abc")
		assert.ErrorIs(t, err, workererrors.ErrInvalidWorkerID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := deps.service.GetByID(context.Background(), uuid.New().String())
		assert.ErrorIs(t, err, workererrors.ErrWorkerNotFound)
	})
}
