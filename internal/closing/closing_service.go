package closing

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	closingerrors "github.com/vendas-sistemas/perroni-sub000/internal/closing/errors"
	"github.com/vendas-sistemas/perroni-sub000/internal/events"
	"github.com/vendas-sistemas/perroni-sub000/internal/messaging/kafka"
	"github.com/vendas-sistemas/perroni-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=closing_service.go -destination=mock/closing_service_mock.go -package=mock
type Service interface {
	Close(ctx context.Context, req CloseWeekRequest) (ClosingResponse, error)
	Recalculate(ctx context.Context, id string) (ClosingResponse, error)
	MarkAsPaid(ctx context.Context, id string, req MarkAsPaidRequest) (ClosingResponse, error)
	GetByID(ctx context.Context, id string) (ClosingResponse, error)
	GetByWorker(ctx context.Context, workerID string) ([]ClosingResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, outbox: outbox}
}

// weekTotals reduces the window's timesheet rows. The value is the daily
// rate times distinct worked days; hour counts never enter the payable
// amount.
func weekTotals(rows []WeekRow, rate decimal.Decimal) (days int, hours decimal.Decimal, value decimal.Decimal, idleDays, reworkDays int) {
	distinct := map[string]bool{}
	idle := map[string]bool{}
	rework := map[string]bool{}
	hours = decimal.Zero
	for _, row := range rows {
		key := row.Date.Format("2006-01-02")
		distinct[key] = true
		hours = hours.Add(row.Hours)
		if row.Idle {
			idle[key] = true
		}
		if row.Rework {
			rework[key] = true
		}
	}
	days = len(distinct)
	value = rate.Mul(decimal.NewFromInt(int64(days))).RoundBank(2)
	return days, hours, value, len(idle), len(rework)
}

func (s *service) Close(ctx context.Context, req CloseWeekRequest) (ClosingResponse, error) {
	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		return ClosingResponse{}, closingerrors.ErrWorkerNotFound
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ClosingResponse{}, closingerrors.ErrInvalidDateFormat
	}
	end := start.AddDate(0, 0, 6)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClosingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rate, err := qtx.WorkerRate(ctx, workerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ClosingResponse{}, closingerrors.ErrWorkerNotFound
		}
		return ClosingResponse{}, err
	}

	rows, err := qtx.WeekRows(ctx, workerID, start, end)
	if err != nil {
		return ClosingResponse{}, err
	}

	days, hours, value, idleDays, reworkDays := weekTotals(rows, rate)

	c := &WeeklyClosing{
		ID:         uuid.New(),
		WorkerID:   workerID,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  days,
		TotalHours: hours,
		TotalValue: value,
		IdleDays:   idleDays,
		ReworkDays: reworkDays,
		Status:     StatusClosed,
	}
	if err := qtx.Create(ctx, c); err != nil {
		return ClosingResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueEvent(ctx, tx, c, events.ClosingClosedEventType); err != nil {
		return ClosingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClosingResponse{}, err
	}

	return mapToResponse(*c), nil
}

// Recalculate recomputes a closing's totals from the current timesheet
// state. Safe to run any number of times while the closing is unpaid.
func (s *service) Recalculate(ctx context.Context, id string) (ClosingResponse, error) {
	c, err := s.findClosing(ctx, id)
	if err != nil {
		return ClosingResponse{}, err
	}
	if c.Status == StatusPaid {
		return ClosingResponse{}, closingerrors.ErrAlreadyPaid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClosingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rate, err := qtx.WorkerRate(ctx, c.WorkerID)
	if err != nil {
		return ClosingResponse{}, err
	}

	rows, err := qtx.WeekRows(ctx, c.WorkerID, c.StartDate, c.EndDate)
	if err != nil {
		return ClosingResponse{}, err
	}

	c.TotalDays, c.TotalHours, c.TotalValue, c.IdleDays, c.ReworkDays = weekTotals(rows, rate)
	if err := qtx.Update(ctx, c); err != nil {
		return ClosingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClosingResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) MarkAsPaid(ctx context.Context, id string, req MarkAsPaidRequest) (ClosingResponse, error) {
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return ClosingResponse{}, closingerrors.ErrInvalidDateFormat
	}

	c, err := s.findClosing(ctx, id)
	if err != nil {
		return ClosingResponse{}, err
	}
	if c.Status == StatusPaid {
		return ClosingResponse{}, closingerrors.ErrAlreadyPaid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClosingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c.Status = StatusPaid
	c.PayDate = &payDate
	if err := qtx.Update(ctx, c); err != nil {
		return ClosingResponse{}, err
	}

	if err := s.enqueueEvent(ctx, tx, c, events.ClosingPaidEventType); err != nil {
		return ClosingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClosingResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClosingResponse, error) {
	c, err := s.findClosing(ctx, id)
	if err != nil {
		return ClosingResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) GetByWorker(ctx context.Context, workerID string) ([]ClosingResponse, error) {
	rows, err := s.repo.FindByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	resp := make([]ClosingResponse, len(rows))
	for i, c := range rows {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) findClosing(ctx context.Context, id string) (*WeeklyClosing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, closingerrors.ErrInvalidClosingID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, closingerrors.ErrClosingNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, c *WeeklyClosing, eventType string) error {
	payload, err := json.Marshal(events.ClosingLifecycleEvent{
		EventType:  eventType,
		ClosingID:  c.ID.String(),
		WorkerID:   c.WorkerID.String(),
		StartDate:  c.StartDate.Format("2006-01-02"),
		EndDate:    c.EndDate.Format("2006-01-02"),
		TotalValue: c.TotalValue.StringFixed(2),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "closing",
		AggregateID:   c.ID.String(),
		EventType:     eventType,
		Topic:         events.ClosingLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_closing_worker_period" {
			return closingerrors.ErrDuplicateClosing
		}
	}
	return err
}

func mapToResponse(c WeeklyClosing) ClosingResponse {
	resp := ClosingResponse{
		ID:         c.ID.String(),
		WorkerID:   c.WorkerID.String(),
		StartDate:  c.StartDate.Format("2006-01-02"),
		EndDate:    c.EndDate.Format("2006-01-02"),
		TotalDays:  c.TotalDays,
		TotalHours: c.TotalHours.StringFixed(1),
		TotalValue: c.TotalValue.StringFixed(2),
		IdleDays:   c.IdleDays,
		ReworkDays: c.ReworkDays,
		Status:     c.Status,
	}
	if c.PayDate != nil {
		v := c.PayDate.Format("2006-01-02")
		resp.PayDate = &v
	}
	return resp
}
