package worker

import (
	"context"
	"database/sql"
	"strings"

	"github.com/vendas-sistemas/perroni-sub000/internal/config"
	workererrors "github.com/vendas-sistemas/perroni-sub000/internal/worker/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:generate mockgen -source=worker_service.go -destination=mock/worker_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]WorkerResponse, error)
	GetByID(ctx context.Context, id string) (WorkerResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

var nameCaser = cases.Title(language.BrazilianPortuguese)

func (s *service) Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error) {
	if !config.ValidRole(req.Role) {
		return WorkerResponse{}, workererrors.ErrInvalidRole
	}

	rate, err := parseRate(req.DailyRate)
	if err != nil {
		return WorkerResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w := &Worker{
		ID:        uuid.New(),
		FullName:  nameCaser.String(strings.TrimSpace(req.FullName)),
		TaxID:     strings.TrimSpace(req.TaxID),
		Role:      req.Role,
		DailyRate: rate,
		Active:    true,
	}

	if err := qtx.Create(ctx, w); err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	return mapToResponse(*w), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]WorkerResponse, error) {
	rows, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]WorkerResponse, len(rows))
	for i, w := range rows {
		resp[i] = mapToResponse(w)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWorkerID
	}

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*w), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkerRequest) (WorkerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWorkerID
	}
	if !config.ValidRole(req.Role) {
		return WorkerResponse{}, workererrors.ErrInvalidRole
	}

	rate, err := parseRate(req.DailyRate)
	if err != nil {
		return WorkerResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByID(ctx, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if req.Role != w.Role {
		referenced, err := qtx.HasTimesheetRows(ctx, id)
		if err != nil {
			return WorkerResponse{}, err
		}
		if referenced {
			return WorkerResponse{}, workererrors.ErrRoleImmutable
		}
		w.Role = req.Role
	}

	w.FullName = nameCaser.String(strings.TrimSpace(req.FullName))
	w.DailyRate = rate
	if req.Active != nil {
		w.Active = *req.Active
	}

	if err := qtx.Update(ctx, w); err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	return mapToResponse(*w), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return workererrors.ErrInvalidWorkerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	w.Active = false
	if err := qtx.Update(ctx, w); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func parseRate(v string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, workererrors.ErrNegativeDailyRate
	}
	if rate.IsNegative() {
		return decimal.Zero, workererrors.ErrNegativeDailyRate
	}
	return rate.Round(2), nil
}

func mapToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:        w.ID.String(),
		FullName:  w.FullName,
		TaxID:     w.TaxID,
		Role:      w.Role,
		DailyRate: w.DailyRate.StringFixed(2),
		Active:    w.Active,
	}
}
