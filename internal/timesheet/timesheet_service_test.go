package timesheet_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/timesheet"
	tserrors "github.com/vendas-sistemas/perroni-sub000/internal/timesheet/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakeTimesheetRepository keeps rows in memory so the day-rate normalizer can
// be exercised end to end through the service.
type fakeTimesheetRepository struct {
	rows     map[uuid.UUID]*timesheet.Timesheet
	rate     decimal.Decimal
	role     string
	jobOK    bool
	locked   []string
	rateErr  error
	clock    time.Time
	clockInc time.Duration
}

func newFakeTimesheetRepository(rate string) *fakeTimesheetRepository {
	return &fakeTimesheetRepository{
		rows:     map[uuid.UUID]*timesheet.Timesheet{},
		rate:     decimal.RequireFromString(rate),
		role:     "MASON",
		jobOK:    true,
		clock:    time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		clockInc: time.Minute,
	}
}

func (f *fakeTimesheetRepository) WithTx(tx *sql.Tx) timesheet.Repository { return f }

func (f *fakeTimesheetRepository) Create(ctx context.Context, t *timesheet.Timesheet) error {
	cp := *t
	cp.CreatedAt = f.clock
	f.clock = f.clock.Add(f.clockInc)
	f.rows[cp.ID] = &cp
	return nil
}

func (f *fakeTimesheetRepository) FindByID(ctx context.Context, id string) (*timesheet.Timesheet, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	row, ok := f.rows[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeTimesheetRepository) FindAll(ctx context.Context, filter timesheet.ListFilter) ([]timesheet.Timesheet, error) {
	var out []timesheet.Timesheet
	for _, row := range f.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeTimesheetRepository) Update(ctx context.Context, t *timesheet.Timesheet) error {
	cp := *t
	if old, ok := f.rows[t.ID]; ok {
		cp.CreatedAt = old.CreatedAt
	}
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTimesheetRepository) Delete(ctx context.Context, id string) error {
	delete(f.rows, uuid.MustParse(id))
	return nil
}

func (f *fakeTimesheetRepository) AcquireDayLock(ctx context.Context, workerID uuid.UUID, date time.Time) error {
	f.locked = append(f.locked, workerID.String()+":"+date.Format("2006-01-02"))
	return nil
}

func (f *fakeTimesheetRepository) ListDayRows(ctx context.Context, workerID uuid.UUID, date time.Time) ([]timesheet.DayRow, error) {
	var out []timesheet.DayRow
	for _, row := range f.rows {
		if row.WorkerID == workerID && row.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, timesheet.DayRow{ID: row.ID, CreatedAt: row.CreatedAt, DayRate: row.DayRate})
		}
	}
	return out, nil
}

func (f *fakeTimesheetRepository) ApplyDayRateChanges(ctx context.Context, changes []timesheet.DayRateChange) error {
	for _, change := range changes {
		if row, ok := f.rows[change.ID]; ok {
			row.DayRate = change.DayRate
		}
	}
	return nil
}

func (f *fakeTimesheetRepository) WorkerRate(ctx context.Context, workerID uuid.UUID) (decimal.Decimal, string, error) {
	if f.rateErr != nil {
		return decimal.Zero, "", f.rateErr
	}
	return f.rate, f.role, nil
}

func (f *fakeTimesheetRepository) JobExists(ctx context.Context, jobID uuid.UUID) (bool, error) {
	return f.jobOK, nil
}

type timesheetServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service timesheet.Service
	repo    *fakeTimesheetRepository
}

func setupTimesheetServiceTest(t *testing.T) *timesheetServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := newFakeTimesheetRepository("180.00")
	svc := timesheet.NewService(db, repo)

	return &timesheetServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTimesheetTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func baseCreateRequest(workerID, jobID string, date string) timesheet.CreateTimesheetRequest {
	return timesheet.CreateTimesheetRequest{
		WorkerID: workerID,
		JobID:    jobID,
		Date:     date,
		Hours:    "8",
		Weather:  timesheet.WeatherSun,
	}
}

func TestTimesheetService_Create_FirstRowCarriesDayRate(t *testing.T) {
	ctx := context.Background()
	workerID := uuid.New().String()
	jobID := uuid.New().String()

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	expectTimesheetTx(t, deps.sqlMock, true)
	resp, err := deps.service.Create(ctx, baseCreateRequest(workerID, jobID, "2026-03-02"))

	assert.NoError(t, err)
	assert.Equal(t, "180.00", resp.DayRate)
	assert.Equal(t, "8.0", resp.Hours)
	assert.Contains(t, deps.repo.locked, workerID+":2026-03-02")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTimesheetService_Create_SecondRowSameDayStaysZero(t *testing.T) {
	ctx := context.Background()
	workerID := uuid.New().String()
	jobID := uuid.New().String()

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	expectTimesheetTx(t, deps.sqlMock, true)
	first, err := deps.service.Create(ctx, baseCreateRequest(workerID, jobID, "2026-03-02"))
	assert.NoError(t, err)

	expectTimesheetTx(t, deps.sqlMock, true)
	second, err := deps.service.Create(ctx, baseCreateRequest(workerID, uuid.New().String(), "2026-03-02"))
	assert.NoError(t, err)

	assert.Equal(t, "180.00", first.DayRate)
	assert.Equal(t, "0.00", second.DayRate)

	// the first row is untouched
	fresh, err := deps.service.GetByID(ctx, first.ID)
	assert.NoError(t, err)
	assert.Equal(t, "180.00", fresh.DayRate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTimesheetService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	workerID := uuid.New().String()
	jobID := uuid.New().String()

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	req := baseCreateRequest(workerID, jobID, "2026-03-02")
	req.Hours = "0.2"
	_, err := deps.service.Create(ctx, req)
	assert.ErrorIs(t, err, tserrors.ErrHoursOutOfRange)

	req = baseCreateRequest(workerID, jobID, "2026-03-02")
	req.Hours = "25"
	_, err = deps.service.Create(ctx, req)
	assert.ErrorIs(t, err, tserrors.ErrHoursOutOfRange)

	req = baseCreateRequest(workerID, jobID, "02/03/2026")
	_, err = deps.service.Create(ctx, req)
	assert.ErrorIs(t, err, tserrors.ErrInvalidDateFormat)

	negative := "-1.5"
	req = baseCreateRequest(workerID, jobID, "2026-03-02")
	req.AreaExecuted = &negative
	_, err = deps.service.Create(ctx, req)
	assert.ErrorIs(t, err, tserrors.ErrNegativeArea)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTimesheetService_Create_UnknownJob(t *testing.T) {
	ctx := context.Background()

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()
	deps.repo.jobOK = false

	expectTimesheetTx(t, deps.sqlMock, false)
	_, err := deps.service.Create(ctx, baseCreateRequest(uuid.New().String(), uuid.New().String(), "2026-03-02"))

	assert.ErrorIs(t, err, tserrors.ErrJobNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTimesheetService_Update_DateChangeRenormalizesBothBuckets(t *testing.T) {
	ctx := context.Background()
	workerID := uuid.New().String()
	jobID := uuid.New().String()

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	expectTimesheetTx(t, deps.sqlMock, true)
	first, err := deps.service.Create(ctx, baseCreateRequest(workerID, jobID, "2026-03-02"))
	assert.NoError(t, err)

	expectTimesheetTx(t, deps.sqlMock, true)
	second, err := deps.service.Create(ctx, baseCreateRequest(workerID, jobID, "2026-03-02"))
	assert.NoError(t, err)
	assert.Equal(t, "0.00", second.DayRate)

	// moving the principal away promotes the remaining row
	expectTimesheetTx(t, deps.sqlMock, true)
	moved, err := deps.service.Update(ctx, first.ID, timesheet.UpdateTimesheetRequest{
		JobID:   jobID,
		Date:    "2026-03-03",
		Hours:   "8",
		Weather: timesheet.WeatherRain,
	})
	assert.NoError(t, err)

	assert.Equal(t, "2026-03-03", moved.Date)
	assert.Equal(t, "180.00", moved.DayRate)

	promoted, err := deps.service.GetByID(ctx, second.ID)
	assert.NoError(t, err)
	assert.Equal(t, "180.00", promoted.DayRate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTimesheetService_Delete_PromotesNextRow(t *testing.T) {
	ctx := context.Background()
	workerID := uuid.New().String()
	jobID := uuid.New().String()

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	expectTimesheetTx(t, deps.sqlMock, true)
	first, err := deps.service.Create(ctx, baseCreateRequest(workerID, jobID, "2026-03-02"))
	assert.NoError(t, err)

	expectTimesheetTx(t, deps.sqlMock, true)
	second, err := deps.service.Create(ctx, baseCreateRequest(workerID, jobID, "2026-03-02"))
	assert.NoError(t, err)

	expectTimesheetTx(t, deps.sqlMock, true)
	err = deps.service.Delete(ctx, first.ID)
	assert.NoError(t, err)

	promoted, err := deps.service.GetByID(ctx, second.ID)
	assert.NoError(t, err)
	assert.Equal(t, "180.00", promoted.DayRate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTimesheetService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	err := deps.service.Delete(ctx, uuid.New().String())
	assert.ErrorIs(t, err, tserrors.ErrTimesheetNotFound)
}
