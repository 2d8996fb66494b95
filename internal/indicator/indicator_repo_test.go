package indicator_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/indicator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIndicatorRepository_OpenStageWorkDays_AppliesAllFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := indicator.NewRepository(db)

	jobID := uuid.New().String()
	stageID := uuid.New().String()
	workerID := uuid.New().String()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT DISTINCT s\.stage_number.+t\.job_id = \$1.+t\.stage_id = \$2.+t\.worker_id = \$3.+t\.date >= \$4.+t\.date <= \$5.+t\.weather = \$6`).
		WithArgs(jobID, stageID, workerID, from, to, "RAIN").
		WillReturnRows(sqlmock.NewRows([]string{"stage_number", "job_id", "date"}).
			AddRow(2, jobID, from))

	rows, err := repo.OpenStageWorkDays(context.Background(), indicator.Filter{
		JobID:    jobID,
		StageID:  stageID,
		WorkerID: workerID,
		DateFrom: &from,
		DateTo:   &to,
		Weather:  "RAIN",
	})

	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, 2, rows[0].StageNumber)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIndicatorRepository_WorkerTimesheets_IgnoresRole(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(
		sqlmock.QueryMatcherFunc(func(expected, actual string) error {
			assert.NotContains(t, actual, "w.role")
			assert.Contains(t, actual, "t.worker_id = $1")
			return nil
		}),
	))
	assert.NoError(t, err)
	defer db.Close()

	repo := indicator.NewRepository(db)

	workerID := uuid.New()
	mock.ExpectQuery("").
		WithArgs(workerID.String()).
		WillReturnRows(sqlmock.NewRows(
			[]string{"worker_id", "full_name", "job_id", "date", "hours", "idle", "rework"}).
			AddRow(workerID.String(), "Carlos", uuid.New().String(),
				time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "8.0", false, false))

	rows, err := repo.WorkerTimesheets(context.Background(), workerID.String(), indicator.Filter{})

	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "Carlos", rows[0].WorkerName)
		assert.Equal(t, "8.0", rows[0].Hours.StringFixed(1))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIndicatorRepository_MasonTimesheets_KeepsRoleFilter(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(
		sqlmock.QueryMatcherFunc(func(expected, actual string) error {
			assert.True(t, strings.Contains(actual, "w.role = 'MASON'"))
			return nil
		}),
	))
	assert.NoError(t, err)
	defer db.Close()

	repo := indicator.NewRepository(db)

	mock.ExpectQuery("").
		WillReturnRows(sqlmock.NewRows(
			[]string{"worker_id", "full_name", "job_id", "date", "hours", "idle", "rework"}))

	rows, err := repo.MasonTimesheets(context.Background(), indicator.Filter{})

	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
