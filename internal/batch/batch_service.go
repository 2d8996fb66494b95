package batch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	batcherrors "github.com/vendas-sistemas/perroni-sub000/internal/batch/errors"
	"github.com/vendas-sistemas/perroni-sub000/internal/config"
	"github.com/vendas-sistemas/perroni-sub000/internal/events"
	"github.com/vendas-sistemas/perroni-sub000/internal/indicator"
	"github.com/vendas-sistemas/perroni-sub000/internal/job"
	"github.com/vendas-sistemas/perroni-sub000/internal/messaging/kafka"
	"github.com/vendas-sistemas/perroni-sub000/internal/shared/contextutil"
	"github.com/vendas-sistemas/perroni-sub000/internal/timesheet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	minHours = decimal.NewFromFloat(0.5)
	maxHours = decimal.NewFromInt(24)
)

//go:generate mockgen -source=batch_service.go -destination=mock/batch_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, createdBy string, req RegisterBatchRequest) (RegisterBatchResponse, error)
	GetByID(ctx context.Context, id string) (BatchResponse, error)
	GetByJob(ctx context.Context, jobID string) ([]BatchResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	timesheetRepo timesheet.Repository
	indicatorRepo indicator.Repository
	jobRepo       job.Repository
	outbox        kafka.OutboxRepository
}

func NewService(
	db *sql.DB,
	repo Repository,
	timesheetRepo timesheet.Repository,
	indicatorRepo indicator.Repository,
	jobRepo job.Repository,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:            db,
		repo:          repo,
		timesheetRepo: timesheetRepo,
		indicatorRepo: indicatorRepo,
		jobRepo:       jobRepo,
		outbox:        outbox,
	}
}

// parsed request pieces
type rosterEntry struct {
	workerID uuid.UUID
	hours    decimal.Decimal
}

type fieldQty struct {
	field     string
	indicator string
	unit      string
	qty       decimal.Decimal
}

// Register runs the whole batch emission in one transaction: the batch entry
// itself, one timesheet per roster worker, day-rate normalization for every
// touched (worker, date) bucket, per-mason indicator shares, the stage audit
// line, and the outbox event.
func (s *service) Register(ctx context.Context, createdBy string, req RegisterBatchRequest) (RegisterBatchResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return RegisterBatchResponse{}, batcherrors.ErrInvalidDateFormat
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return RegisterBatchResponse{}, batcherrors.ErrJobNotFound
	}

	roster, err := parseRoster(req.Roster)
	if err != nil {
		return RegisterBatchResponse{}, err
	}

	fields, unitTotals, err := parseFields(req.Fields)
	if err != nil {
		return RegisterBatchResponse{}, err
	}

	// area carries over to timesheets only when the day produced m2 and
	// nothing else
	area := decimal.Zero
	if len(unitTotals) == 1 {
		if m2, ok := unitTotals[UnitM2]; ok {
			area = m2
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RegisterBatchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	tsTx := s.timesheetRepo.WithTx(tx)
	indTx := s.indicatorRepo.WithTx(tx)

	exists, err := qtx.JobExists(ctx, jobID)
	if err != nil {
		return RegisterBatchResponse{}, err
	}
	if !exists {
		return RegisterBatchResponse{}, batcherrors.ErrJobNotFound
	}

	var stageID *uuid.UUID
	if req.StageNumber != nil {
		stage, err := s.jobRepo.FindStage(ctx, req.JobID, *req.StageNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RegisterBatchResponse{}, batcherrors.ErrStageNotFound
			}
			return RegisterBatchResponse{}, err
		}
		stageID = &stage.ID
	}

	ids := make([]uuid.UUID, len(roster))
	for i, entry := range roster {
		ids[i] = entry.workerID
	}
	workers, err := qtx.WorkersByIDs(ctx, ids)
	if err != nil {
		return RegisterBatchResponse{}, err
	}
	if len(workers) != len(roster) {
		return RegisterBatchResponse{}, batcherrors.ErrWorkerNotFound
	}

	var masons []RosterWorkerInfo
	for _, entry := range roster {
		if workers[entry.workerID].Role == config.RoleMason {
			masons = append(masons, workers[entry.workerID])
		}
	}
	sort.Slice(masons, func(i, j int) bool {
		return masons[i].ID.String() < masons[j].ID.String()
	})

	b := &BatchEntry{
		ID:         uuid.New(),
		JobID:      jobID,
		StageID:    stageID,
		Date:       date,
		Weather:    req.Weather,
		Idle:       req.Idle,
		IdleNote:   req.IdleNote,
		Rework:     req.Rework,
		ReworkNote: req.ReworkNote,
		CreatedBy:  createdBy,
	}
	if len(unitTotals) == 1 {
		for unit, total := range unitTotals {
			u, t := unit, total
			b.Unit = &u
			b.TotalOutput = &t
		}
	}
	if err := qtx.CreateBatch(ctx, b); err != nil {
		return RegisterBatchResponse{}, err
	}

	rosterRows := make([]BatchWorker, len(roster))
	for i, entry := range roster {
		rosterRows[i] = BatchWorker{
			ID:       uuid.New(),
			BatchID:  b.ID,
			WorkerID: entry.workerID,
			Hours:    entry.hours,
		}
	}
	if err := qtx.CreateRoster(ctx, rosterRows); err != nil {
		return RegisterBatchResponse{}, err
	}

	// day locks in a stable order so concurrent batches over overlapping
	// rosters cannot deadlock
	lockOrder := make([]uuid.UUID, len(ids))
	copy(lockOrder, ids)
	sort.Slice(lockOrder, func(i, j int) bool {
		return lockOrder[i].String() < lockOrder[j].String()
	})
	for _, workerID := range lockOrder {
		if err := tsTx.AcquireDayLock(ctx, workerID, date); err != nil {
			return RegisterBatchResponse{}, err
		}
	}

	for _, entry := range roster {
		t := &timesheet.Timesheet{
			ID:           uuid.New(),
			WorkerID:     entry.workerID,
			JobID:        jobID,
			StageID:      stageID,
			Date:         date,
			Hours:        entry.hours,
			Weather:      req.Weather,
			Idle:         req.Idle,
			IdleNote:     req.IdleNote,
			Rework:       req.Rework,
			ReworkNote:   req.ReworkNote,
			AreaExecuted: area,
			BatchID:      &b.ID,
		}
		if err := tsTx.Create(ctx, t); err != nil {
			return RegisterBatchResponse{}, err
		}
	}

	for _, workerID := range lockOrder {
		rows, err := tsTx.ListDayRows(ctx, workerID, date)
		if err != nil {
			return RegisterBatchResponse{}, err
		}
		changes := timesheet.NormalizeDay(rows, workers[workerID].DailyRate)
		if err := tsTx.ApplyDayRateChanges(ctx, changes); err != nil {
			return RegisterBatchResponse{}, err
		}
	}

	var shares []ShareEntry
	if len(masons) > 0 {
		masonCount := decimal.NewFromInt(int64(len(masons)))
		for _, f := range fields {
			share := f.qty.Div(masonCount).RoundBank(2)
			for _, mason := range masons {
				if err := indTx.UpsertAdd(ctx, &indicator.IndicatorRecord{
					ID:        uuid.New(),
					WorkerID:  mason.ID,
					Date:      date,
					JobID:     jobID,
					Indicator: f.indicator,
					Qty:       share,
					StageID:   stageID,
				}); err != nil {
					return RegisterBatchResponse{}, err
				}
				shares = append(shares, ShareEntry{
					WorkerID:   mason.ID.String(),
					WorkerName: mason.FullName,
					Indicator:  f.indicator,
					Share:      share.StringFixed(2),
				})
			}
		}
	}

	if stageID != nil {
		if err := s.jobRepo.WithTx(tx).AppendStageHistory(ctx, &job.StageHistoryEntry{
			ID:        uuid.New(),
			StageID:   *stageID,
			Entry:     auditLine(date, req, unitTotals, len(masons), shares),
			CreatedBy: createdBy,
		}); err != nil {
			return RegisterBatchResponse{}, err
		}
	}

	if err := s.enqueueEvent(ctx, tx, b, len(roster), len(masons)); err != nil {
		return RegisterBatchResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RegisterBatchResponse{}, err
	}

	resp := RegisterBatchResponse{
		BatchID:      b.ID.String(),
		JobID:        jobID.String(),
		Date:         date.Format("2006-01-02"),
		UnitTotals:   map[string]string{},
		AreaExecuted: area.StringFixed(2),
		Timesheets:   len(roster),
		Masons:       len(masons),
		Shares:       shares,
	}
	if resp.Shares == nil {
		resp.Shares = []ShareEntry{}
	}
	for unit, total := range unitTotals {
		resp.UnitTotals[unit] = total.StringFixed(2)
	}
	return resp, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, b *BatchEntry, workerCount, masonCount int) error {
	payload, err := json.Marshal(events.BatchRegisteredEvent{
		EventType:  "BatchRegistered",
		BatchID:    b.ID.String(),
		JobID:      b.JobID.String(),
		WorkDate:   b.Date.Format("2006-01-02"),
		Workers:    workerCount,
		Masons:     masonCount,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "batch",
		AggregateID:   b.ID.String(),
		EventType:     "BatchRegistered",
		Topic:         events.BatchRegisteredTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetByID(ctx context.Context, id string) (BatchResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BatchResponse{}, batcherrors.ErrBatchNotFound
		}
		return BatchResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) GetByJob(ctx context.Context, jobID string) ([]BatchResponse, error) {
	rows, err := s.repo.FindByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := make([]BatchResponse, len(rows))
	for i, b := range rows {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func parseRoster(entries []RosterEntryRequest) ([]rosterEntry, error) {
	if len(entries) == 0 {
		return nil, batcherrors.ErrEmptyRoster
	}

	seen := map[uuid.UUID]bool{}
	out := make([]rosterEntry, len(entries))
	for i, entry := range entries {
		workerID, err := uuid.Parse(entry.WorkerID)
		if err != nil {
			return nil, batcherrors.ErrWorkerNotFound
		}
		if seen[workerID] {
			return nil, batcherrors.ErrDuplicateRosterWorker
		}
		seen[workerID] = true

		hours, err := decimal.NewFromString(entry.Hours)
		if err != nil {
			return nil, batcherrors.ErrHoursOutOfRange
		}
		hours = hours.Round(1)
		if hours.LessThan(minHours) || hours.GreaterThan(maxHours) {
			return nil, batcherrors.ErrHoursOutOfRange
		}

		out[i] = rosterEntry{workerID: workerID, hours: hours}
	}
	return out, nil
}

// parseFields validates the field map and groups totals by inferred unit.
// Field order is made deterministic so shares and audit lines are stable.
func parseFields(raw map[string]string) ([]fieldQty, map[string]decimal.Decimal, error) {
	names := make([]string, 0, len(raw))
	for field := range raw {
		names = append(names, field)
	}
	sort.Strings(names)

	var fields []fieldQty
	totals := map[string]decimal.Decimal{}
	for _, field := range names {
		code, ok := config.IndicatorForField(field)
		if !ok {
			return nil, nil, batcherrors.ErrUnknownField
		}

		qty, err := decimal.NewFromString(raw[field])
		if err != nil || !qty.IsPositive() {
			return nil, nil, batcherrors.ErrNonPositiveQty
		}
		qty = qty.Round(2)

		unit := InferUnit(field)
		totals[unit] = totals[unit].Add(qty)
		fields = append(fields, fieldQty{field: field, indicator: code, unit: unit, qty: qty})
	}
	return fields, totals, nil
}

func auditLine(date time.Time, req RegisterBatchRequest, totals map[string]decimal.Decimal, masons int, shares []ShareEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Lote de %s: %d trabalhador(es), %d pedreiro(s).", date.Format("2006-01-02"), len(req.Roster), masons)

	units := make([]string, 0, len(totals))
	for unit := range totals {
		units = append(units, unit)
	}
	sort.Strings(units)
	for _, unit := range units {
		fmt.Fprintf(&sb, " Total %s: %s.", unit, totals[unit].StringFixed(2))
	}

	if len(shares) > 0 {
		fmt.Fprintf(&sb, " Cotas por pedreiro:")
		for _, share := range shares {
			fmt.Fprintf(&sb, " %s=%s (%s);", share.Indicator, share.Share, share.WorkerName)
		}
	}
	if req.Idle {
		fmt.Fprintf(&sb, " Ociosidade: %s.", req.IdleNote)
	}
	if req.Rework {
		fmt.Fprintf(&sb, " Retrabalho: %s.", req.ReworkNote)
	}
	return sb.String()
}

func mapToResponse(b BatchEntry) BatchResponse {
	resp := BatchResponse{
		ID:        b.ID.String(),
		JobID:     b.JobID.String(),
		Date:      b.Date.Format("2006-01-02"),
		Unit:      b.Unit,
		Weather:   b.Weather,
		Idle:      b.Idle,
		Rework:    b.Rework,
		CreatedBy: b.CreatedBy,
		Roster:    []RosterEntryResponse{},
	}
	if b.StageID != nil {
		v := b.StageID.String()
		resp.StageID = &v
	}
	for _, entry := range b.Roster {
		resp.Roster = append(resp.Roster, RosterEntryResponse{
			WorkerID: entry.WorkerID.String(),
			Hours:    entry.Hours.StringFixed(1),
		})
	}
	return resp
}
