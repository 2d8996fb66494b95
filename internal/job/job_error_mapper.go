package job

import (
	"errors"

	joberrors "github.com/vendas-sistemas/perroni-sub000/internal/job/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return joberrors.ErrJobNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return joberrors.ErrClientNotFound
	}

	return err
}

func mapStageLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return joberrors.ErrStageNotFound
	}
	return mapRepositoryError(err)
}
