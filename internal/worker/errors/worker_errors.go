package workererrors

import (
	"net/http"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
)

var (
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found",
		http.StatusNotFound,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid worker id",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be MASON or HELPER",
		http.StatusBadRequest,
	)
	ErrNegativeDailyRate = apperror.New(
		apperror.CodeInvalidInput,
		"daily rate cannot be negative",
		http.StatusBadRequest,
	)
	ErrTaxIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a worker with this tax id already exists",
		http.StatusConflict,
	)
	ErrRoleImmutable = apperror.New(
		apperror.CodeInvalidState,
		"role cannot change once the worker has timesheet rows",
		http.StatusBadRequest,
	)
)
