package tool

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/counter"
	toolerrors "github.com/vendas-sistemas/perroni-sub000/internal/tool/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=tool_service.go -destination=mock/tool_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateToolRequest) (ToolResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]ToolResponse, error)
	GetByID(ctx context.Context, id string) (ToolResponse, error)
	Update(ctx context.Context, id string, req UpdateToolRequest) (ToolResponse, error)

	ApplyMove(ctx context.Context, toolID string, req MoveRequest) (MoveResponse, error)
	Availability(ctx context.Context, toolID string, locationType string, jobID *string) (int, error)
	Distribution(ctx context.Context, toolID string) (DistributionResponse, error)
	VerifyConsistency(ctx context.Context, toolID string) (ConsistencyResponse, error)
	ListMoves(ctx context.Context, toolID string, limit int) ([]MoveResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository) Service {
	return &service{db: db, repo: repo, counter: counterRepo}
}

func (s *service) Create(ctx context.Context, req CreateToolRequest) (ToolResponse, error) {
	code := req.Code
	if code == "" {
		next, err := s.counter.GetNextValue(ctx, "tool_code")
		if err != nil {
			return ToolResponse{}, err
		}
		code = fmt.Sprintf("FER-%04d", next)
	}

	var unitValue *decimal.Decimal
	if req.UnitValue != nil && *req.UnitValue != "" {
		v, err := decimal.NewFromString(*req.UnitValue)
		if err != nil || v.IsNegative() {
			return ToolResponse{}, toolerrors.ErrInvalidQty
		}
		rounded := v.Round(2)
		unitValue = &rounded
	}

	t := &ToolModel{
		ID:        uuid.New(),
		Code:      code,
		Name:      req.Name,
		Category:  req.Category,
		UnitValue: unitValue,
		Active:    true,
	}

	if err := s.repo.CreateTool(ctx, t); err != nil {
		return ToolResponse{}, mapRepositoryError(err)
	}

	return mapToolToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]ToolResponse, error) {
	rows, err := s.repo.FindAllTools(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]ToolResponse, len(rows))
	for i, t := range rows {
		resp[i] = mapToolToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ToolResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ToolResponse{}, toolerrors.ErrInvalidToolID
	}

	t, err := s.repo.FindToolByID(ctx, id)
	if err != nil {
		return ToolResponse{}, mapRepositoryError(err)
	}

	return mapToolToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateToolRequest) (ToolResponse, error) {
	t, err := s.repo.FindToolByID(ctx, id)
	if err != nil {
		return ToolResponse{}, mapRepositoryError(err)
	}

	t.Name = req.Name
	t.Category = req.Category
	if req.UnitValue != nil {
		v, err := decimal.NewFromString(*req.UnitValue)
		if err != nil || v.IsNegative() {
			return ToolResponse{}, toolerrors.ErrInvalidQty
		}
		rounded := v.Round(2)
		t.UnitValue = &rounded
	}
	if req.Active != nil {
		t.Active = *req.Active
	}

	if err := s.repo.UpdateTool(ctx, t); err != nil {
		return ToolResponse{}, mapRepositoryError(err)
	}

	return mapToolToResponse(*t), nil
}

// ApplyMove validates and applies one ledger move atomically: decrement the
// source row, increment or insert the destination row, adjust the tool total
// when the kind demands it, then record the move. The whole unit runs under
// the per-tool advisory lock and is checked against the location sum before
// commit.
func (s *service) ApplyMove(ctx context.Context, toolID string, req MoveRequest) (MoveResponse, error) {
	tid, err := uuid.Parse(toolID)
	if err != nil {
		return MoveResponse{}, toolerrors.ErrInvalidToolID
	}
	if req.Qty <= 0 {
		return MoveResponse{}, toolerrors.ErrInvalidQty
	}

	plan, err := resolveMove(req)
	if err != nil {
		return MoveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MoveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.AcquireToolLock(ctx, tid); err != nil {
		return MoveResponse{}, err
	}

	if _, err := qtx.TotalQty(ctx, tid); err != nil {
		if err == sql.ErrNoRows {
			return MoveResponse{}, toolerrors.ErrToolNotFound
		}
		return MoveResponse{}, err
	}

	if plan.Source != nil {
		available, err := qtx.LocationQty(ctx, tid, plan.Source.Type, plan.Source.JobID)
		if err != nil {
			return MoveResponse{}, err
		}
		if available < req.Qty {
			return MoveResponse{}, toolerrors.ErrInsufficientStock
		}
		if err := qtx.DecrementLocation(ctx, tid, plan.Source.Type, plan.Source.JobID, req.Qty); err != nil {
			return MoveResponse{}, err
		}
	}

	if plan.Dest != nil {
		if err := qtx.IncrementLocation(ctx, tid, plan.Dest.Type, plan.Dest.JobID, req.Qty); err != nil {
			return MoveResponse{}, err
		}
	}

	if plan.TotalDelta != 0 {
		if err := qtx.AddToTotal(ctx, tid, plan.TotalDelta*req.Qty); err != nil {
			return MoveResponse{}, err
		}
	}

	move := &LedgerMove{
		ID:          uuid.New(),
		ToolID:      tid,
		Qty:         req.Qty,
		Kind:        req.Kind,
		Responsible: req.Responsible,
		Note:        req.Note,
		CreatedAt:   time.Now().UTC(),
	}
	if plan.Source != nil {
		move.SourceType = &plan.Source.Type
		move.SourceJobID = plan.Source.JobID
	}
	if plan.Dest != nil {
		move.DestType = &plan.Dest.Type
		move.DestJobID = plan.Dest.JobID
	}
	if err := qtx.CreateMove(ctx, move); err != nil {
		return MoveResponse{}, err
	}

	// total must equal the location sum before this move becomes visible
	sum, err := qtx.SumLocations(ctx, tid)
	if err != nil {
		return MoveResponse{}, err
	}
	total, err := qtx.TotalQty(ctx, tid)
	if err != nil {
		return MoveResponse{}, err
	}
	if sum != total {
		return MoveResponse{}, toolerrors.ErrLedgerInconsistent
	}

	if err := tx.Commit(); err != nil {
		return MoveResponse{}, err
	}

	return mapMoveToResponse(*move), nil
}

func (s *service) Availability(ctx context.Context, toolID string, locationType string, jobID *string) (int, error) {
	tid, err := uuid.Parse(toolID)
	if err != nil {
		return 0, toolerrors.ErrInvalidToolID
	}

	var jid *uuid.UUID
	if jobID != nil && *jobID != "" {
		parsed, err := uuid.Parse(*jobID)
		if err != nil {
			return 0, toolerrors.ErrInvalidToolID
		}
		jid = &parsed
	}

	return s.repo.LocationQty(ctx, tid, locationType, jid)
}

func (s *service) Distribution(ctx context.Context, toolID string) (DistributionResponse, error) {
	t, err := s.repo.FindToolByID(ctx, toolID)
	if err != nil {
		return DistributionResponse{}, mapRepositoryError(err)
	}

	locations, err := s.repo.ListLocations(ctx, toolID)
	if err != nil {
		return DistributionResponse{}, err
	}

	resp := DistributionResponse{
		ToolID: t.ID.String(),
		PerJob: []JobQty{},
		Total:  t.TotalQty,
	}
	for _, loc := range locations {
		switch loc.LocationType {
		case LocationWarehouse:
			resp.Warehouse += loc.Qty
		case LocationJob:
			if loc.JobID != nil {
				resp.PerJob = append(resp.PerJob, JobQty{JobID: loc.JobID.String(), Qty: loc.Qty})
			}
		case LocationMaintenance:
			resp.Maintenance += loc.Qty
		case LocationLost:
			resp.Lost += loc.Qty
		}
	}
	return resp, nil
}

func (s *service) VerifyConsistency(ctx context.Context, toolID string) (ConsistencyResponse, error) {
	tid, err := uuid.Parse(toolID)
	if err != nil {
		return ConsistencyResponse{}, toolerrors.ErrInvalidToolID
	}

	total, err := s.repo.TotalQty(ctx, tid)
	if err != nil {
		if err == sql.ErrNoRows {
			return ConsistencyResponse{}, toolerrors.ErrToolNotFound
		}
		return ConsistencyResponse{}, err
	}

	sum, err := s.repo.SumLocations(ctx, tid)
	if err != nil {
		return ConsistencyResponse{}, err
	}

	resp := ConsistencyResponse{
		ToolID:       toolID,
		Ok:           total == sum,
		TotalQty:     total,
		LocationsSum: sum,
	}
	if !resp.Ok {
		resp.Message = fmt.Sprintf("total %d does not match location sum %d", total, sum)
	}
	return resp, nil
}

func (s *service) ListMoves(ctx context.Context, toolID string, limit int) ([]MoveResponse, error) {
	rows, err := s.repo.ListMoves(ctx, toolID, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]MoveResponse, len(rows))
	for i, m := range rows {
		resp[i] = mapMoveToResponse(m)
	}
	return resp, nil
}

func mapToolToResponse(t ToolModel) ToolResponse {
	resp := ToolResponse{
		ID:       t.ID.String(),
		Code:     t.Code,
		Name:     t.Name,
		Category: t.Category,
		TotalQty: t.TotalQty,
		Active:   t.Active,
	}
	if t.UnitValue != nil {
		v := t.UnitValue.StringFixed(2)
		resp.UnitValue = &v
	}
	return resp
}

func mapMoveToResponse(m LedgerMove) MoveResponse {
	resp := MoveResponse{
		ID:          m.ID.String(),
		ToolID:      m.ToolID.String(),
		Qty:         m.Qty,
		Kind:        m.Kind,
		SourceType:  m.SourceType,
		DestType:    m.DestType,
		Responsible: m.Responsible,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.SourceJobID != nil {
		v := m.SourceJobID.String()
		resp.SourceJobID = &v
	}
	if m.DestJobID != nil {
		v := m.DestJobID.String()
		resp.DestJobID = &v
	}
	return resp
}
