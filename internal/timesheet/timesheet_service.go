package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	tserrors "github.com/vendas-sistemas/perroni-sub000/internal/timesheet/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	minHours = decimal.NewFromFloat(0.5)
	maxHours = decimal.NewFromInt(24)
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTimesheetRequest) (TimesheetResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, id string) (TimesheetResponse, error)
	Update(ctx context.Context, id string, req UpdateTimesheetRequest) (TimesheetResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateTimesheetRequest) (TimesheetResponse, error) {
	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		return TimesheetResponse{}, tserrors.ErrWorkerNotFound
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return TimesheetResponse{}, tserrors.ErrJobNotFound
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return TimesheetResponse{}, err
	}
	hours, err := parseHours(req.Hours)
	if err != nil {
		return TimesheetResponse{}, err
	}
	area, err := parseArea(req.AreaExecuted)
	if err != nil {
		return TimesheetResponse{}, err
	}
	stageID, err := parseOptionalUUID(req.StageID)
	if err != nil {
		return TimesheetResponse{}, tserrors.ErrInvalidTimesheetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	baseRate, _, err := qtx.WorkerRate(ctx, workerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TimesheetResponse{}, tserrors.ErrWorkerNotFound
		}
		return TimesheetResponse{}, err
	}

	exists, err := qtx.JobExists(ctx, jobID)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !exists {
		return TimesheetResponse{}, tserrors.ErrJobNotFound
	}

	if err := qtx.AcquireDayLock(ctx, workerID, date); err != nil {
		return TimesheetResponse{}, err
	}

	t := &Timesheet{
		ID:           uuid.New(),
		WorkerID:     workerID,
		JobID:        jobID,
		StageID:      stageID,
		Date:         date,
		Hours:        hours,
		Weather:      req.Weather,
		Idle:         req.Idle,
		IdleNote:     req.IdleNote,
		Rework:       req.Rework,
		ReworkNote:   req.ReworkNote,
		AreaExecuted: area,
	}
	if err := qtx.Create(ctx, t); err != nil {
		return TimesheetResponse{}, err
	}

	if err := normalizeBucket(ctx, qtx, workerID, date, baseRate); err != nil {
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimesheetResponse{}, err
	}

	// the normalizer may have touched this row's rate
	fresh, err := s.repo.FindByID(ctx, t.ID.String())
	if err != nil {
		return TimesheetResponse{}, err
	}
	return mapToResponse(*fresh), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]TimesheetResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]TimesheetResponse, len(rows))
	for i, t := range rows {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TimesheetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, tserrors.ErrInvalidTimesheetID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, tserrors.ErrTimesheetNotFound
		}
		return TimesheetResponse{}, err
	}

	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTimesheetRequest) (TimesheetResponse, error) {
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return TimesheetResponse{}, tserrors.ErrJobNotFound
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return TimesheetResponse{}, err
	}
	hours, err := parseHours(req.Hours)
	if err != nil {
		return TimesheetResponse{}, err
	}
	area, err := parseArea(req.AreaExecuted)
	if err != nil {
		return TimesheetResponse{}, err
	}
	stageID, err := parseOptionalUUID(req.StageID)
	if err != nil {
		return TimesheetResponse{}, tserrors.ErrInvalidTimesheetID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, tserrors.ErrTimesheetNotFound
		}
		return TimesheetResponse{}, err
	}

	oldDate := t.Date

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	baseRate, _, err := qtx.WorkerRate(ctx, t.WorkerID)
	if err != nil {
		return TimesheetResponse{}, err
	}

	exists, err := qtx.JobExists(ctx, jobID)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !exists {
		return TimesheetResponse{}, tserrors.ErrJobNotFound
	}

	if err := lockBuckets(ctx, qtx, t.WorkerID, oldDate, date); err != nil {
		return TimesheetResponse{}, err
	}

	t.JobID = jobID
	t.StageID = stageID
	t.Date = date
	t.Hours = hours
	t.Weather = req.Weather
	t.Idle = req.Idle
	t.IdleNote = req.IdleNote
	t.Rework = req.Rework
	t.ReworkNote = req.ReworkNote
	t.AreaExecuted = area
	if err := qtx.Update(ctx, t); err != nil {
		return TimesheetResponse{}, err
	}

	// a date change moves the row between buckets; both need renormalizing
	if err := normalizeBucket(ctx, qtx, t.WorkerID, date, baseRate); err != nil {
		return TimesheetResponse{}, err
	}
	if !sameDay(oldDate, date) {
		if err := normalizeBucket(ctx, qtx, t.WorkerID, oldDate, baseRate); err != nil {
			return TimesheetResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return TimesheetResponse{}, err
	}

	fresh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	return mapToResponse(*fresh), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tserrors.ErrTimesheetNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	baseRate, _, err := qtx.WorkerRate(ctx, t.WorkerID)
	if err != nil {
		return err
	}

	if err := qtx.AcquireDayLock(ctx, t.WorkerID, t.Date); err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	// the principal may have been the deleted row
	if err := normalizeBucket(ctx, qtx, t.WorkerID, t.Date, baseRate); err != nil {
		return err
	}

	return tx.Commit()
}

// normalizeBucket runs the day-rate rule over one (worker, date) bucket and
// applies whatever corrections it yields.
func normalizeBucket(ctx context.Context, repo Repository, workerID uuid.UUID, date time.Time, base decimal.Decimal) error {
	rows, err := repo.ListDayRows(ctx, workerID, date)
	if err != nil {
		return err
	}
	return repo.ApplyDayRateChanges(ctx, NormalizeDay(rows, base))
}

// lockBuckets takes the day locks in a stable order so two updates crossing
// the same pair of dates cannot deadlock.
func lockBuckets(ctx context.Context, repo Repository, workerID uuid.UUID, a, b time.Time) error {
	dates := []time.Time{a}
	if !sameDay(a, b) {
		dates = append(dates, b)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	for _, d := range dates {
		if err := repo.AcquireDayLock(ctx, workerID, d); err != nil {
			return err
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, tserrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseHours(v string) (decimal.Decimal, error) {
	h, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, tserrors.ErrHoursOutOfRange
	}
	h = h.Round(1)
	if h.LessThan(minHours) || h.GreaterThan(maxHours) {
		return decimal.Zero, tserrors.ErrHoursOutOfRange
	}
	return h, nil
}

func parseArea(v *string) (decimal.Decimal, error) {
	if v == nil || *v == "" {
		return decimal.Zero, nil
	}
	area, err := decimal.NewFromString(*v)
	if err != nil || area.IsNegative() {
		return decimal.Zero, tserrors.ErrNegativeArea
	}
	return area.Round(2), nil
}

func parseOptionalUUID(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapToResponse(t Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:           t.ID.String(),
		WorkerID:     t.WorkerID.String(),
		JobID:        t.JobID.String(),
		Date:         t.Date.Format("2006-01-02"),
		Hours:        t.Hours.StringFixed(1),
		Weather:      t.Weather,
		Idle:         t.Idle,
		IdleNote:     t.IdleNote,
		Rework:       t.Rework,
		ReworkNote:   t.ReworkNote,
		AreaExecuted: t.AreaExecuted.StringFixed(2),
		DayRate:      t.DayRate.StringFixed(2),
	}
	if t.StageID != nil {
		v := t.StageID.String()
		resp.StageID = &v
	}
	if t.BatchID != nil {
		v := t.BatchID.String()
		resp.BatchID = &v
	}
	return resp
}
