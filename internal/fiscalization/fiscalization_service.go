package fiscalization

import (
	"context"
	"errors"
	"time"

	fiscerrors "github.com/vendas-sistemas/perroni-sub000/internal/fiscalization/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=fiscalization_service.go -destination=mock/fiscalization_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateVisitRequest) (VisitResponse, error)
	GetByJob(ctx context.Context, jobID string) ([]VisitResponse, error)
	Update(ctx context.Context, id string, req UpdateVisitRequest) (VisitResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateVisitRequest) (VisitResponse, error) {
	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		return VisitResponse{}, fiscerrors.ErrInvalidDateFormat
	}

	exists, err := s.repo.JobExists(ctx, req.JobID)
	if err != nil {
		return VisitResponse{}, err
	}
	if !exists {
		return VisitResponse{}, fiscerrors.ErrJobNotFound
	}

	v := &Visit{
		ID:        uuid.New(),
		JobID:     uuid.MustParse(req.JobID),
		VisitDate: visitDate,
		Inspector: req.Inspector,
		Outcome:   req.Outcome,
		Notes:     req.Notes,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return VisitResponse{}, err
	}

	return mapToResponse(*v), nil
}

func (s *service) GetByJob(ctx context.Context, jobID string) ([]VisitResponse, error) {
	rows, err := s.repo.FindByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := make([]VisitResponse, len(rows))
	for i, v := range rows {
		resp[i] = mapToResponse(v)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateVisitRequest) (VisitResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VisitResponse{}, fiscerrors.ErrVisitNotFound
		}
		return VisitResponse{}, err
	}

	v.Outcome = req.Outcome
	v.Notes = req.Notes

	if err := s.repo.Update(ctx, v); err != nil {
		return VisitResponse{}, err
	}

	return mapToResponse(*v), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiscerrors.ErrVisitNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(v Visit) VisitResponse {
	return VisitResponse{
		ID:        v.ID.String(),
		JobID:     v.JobID.String(),
		VisitDate: v.VisitDate.Format("2006-01-02"),
		Inspector: v.Inspector,
		Outcome:   v.Outcome,
		Notes:     v.Notes,
	}
}
