package client

import (
	"context"
	"database/sql"

	clienterrors "github.com/vendas-sistemas/perroni-sub000/internal/client/errors"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameCaser = cases.Title(language.BrazilianPortuguese)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context) ([]ClientResponse, error)
	GetByID(ctx context.Context, id string) (ClientResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error) {
	c := &Client{
		ID:      uuid.New(),
		Name:    nameCaser.String(req.Name),
		TaxID:   req.TaxID,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]ClientResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ClientResponse, len(rows))
	for i, c := range rows {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	c.Name = nameCaser.String(req.Name)
	c.Phone = req.Phone
	c.Email = req.Email
	c.Address = req.Address

	if err := s.repo.Update(ctx, c); err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	hasJobs, err := s.repo.HasJobs(ctx, id)
	if err != nil {
		return err
	}
	if hasJobs {
		return clienterrors.ErrClientHasJobs
	}

	return s.repo.Delete(ctx, id)
}

func mapToResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		TaxID:   c.TaxID,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	}
}
