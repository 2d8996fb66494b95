package client_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/vendas-sistemas/perroni-sub000/internal/client"
	clienterrors "github.com/vendas-sistemas/perroni-sub000/internal/client/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeClientRepository struct {
	createFn   func(ctx context.Context, c *client.Client) error
	findByIDFn func(ctx context.Context, id string) (*client.Client, error)
	hasJobsFn  func(ctx context.Context, id string) (bool, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeClientRepository) WithTx(tx *sql.Tx) client.Repository { return f }

func (f *fakeClientRepository) Create(ctx context.Context, c *client.Client) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClientRepository) FindAll(ctx context.Context) ([]client.Client, error) {
	return nil, nil
}

func (f *fakeClientRepository) Update(ctx context.Context, c *client.Client) error {
	return nil
}

func (f *fakeClientRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeClientRepository) HasJobs(ctx context.Context, id string) (bool, error) {
	if f.hasJobsFn != nil {
		return f.hasJobsFn(ctx, id)
	}
	return false, nil
}

func TestClientService_Create(t *testing.T) {
	t.Run("titlecases the name", func(t *testing.T) {
		repo := &fakeClientRepository{}
		svc := client.NewService(nil, repo)

		resp, err := svc.Create(context.Background(), client.CreateClientRequest{
			Name:  "maria oliveira",
			TaxID: "987.654.321-00",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Maria Oliveira", resp.Name)
	})

	t.Run("duplicate tax id maps to conflict", func(t *testing.T) {
		repo := &fakeClientRepository{
			createFn: func(ctx context.Context, c *client.Client) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := client.NewService(nil, repo)

		_, err := svc.Create(context.Background(), client.CreateClientRequest{
			Name:  "Maria Oliveira",
			TaxID: "987.654.321-00",
		})

		assert.ErrorIs(t, err, clienterrors.ErrDuplicateTaxID)
	})
}

func TestClientService_Delete(t *testing.T) {
	existing := &client.Client{ID: uuid.New(), Name: "Maria Oliveira"}

	t.Run("client with jobs cannot be removed", func(t *testing.T) {
		repo := &fakeClientRepository{
			findByIDFn: func(ctx context.Context, id string) (*client.Client, error) {
				return existing, nil
			},
			hasJobsFn: func(ctx context.Context, id string) (bool, error) {
				return true, nil
			},
		}
		svc := client.NewService(nil, repo)

		err := svc.Delete(context.Background(), existing.ID.String())

		assert.ErrorIs(t, err, clienterrors.ErrClientHasJobs)
	})

	t.Run("client without jobs is removed", func(t *testing.T) {
		deleted := ""
		repo := &fakeClientRepository{
			findByIDFn: func(ctx context.Context, id string) (*client.Client, error) {
				return existing, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		svc := client.NewService(nil, repo)

		assert.NoError(t, svc.Delete(context.Background(), existing.ID.String()))
		assert.Equal(t, existing.ID.String(), deleted)
	})

	t.Run("unknown client", func(t *testing.T) {
		svc := client.NewService(nil, &fakeClientRepository{})

		err := svc.Delete(context.Background(), uuid.New().String())

		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})
}

func TestClientService_GetByID(t *testing.T) {
	svc := client.NewService(nil, &fakeClientRepository{})

	_, err := svc.GetByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, clienterrors.ErrInvalidClientID)
}
