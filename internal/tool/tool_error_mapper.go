package tool

import (
	"errors"

	toolerrors "github.com/vendas-sistemas/perroni-sub000/internal/tool/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return toolerrors.ErrToolNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_tool_code" {
			return toolerrors.ErrDuplicateCode
		}
	}

	return err
}
