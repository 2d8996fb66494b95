package errors

import (
	"net/http"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
)

var (
	ErrClosingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Weekly closing not found",
		http.StatusNotFound,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Worker not found",
		http.StatusNotFound,
	)
	ErrDuplicateClosing = apperror.New(
		apperror.CodeConflict,
		"A closing for this worker and week already exists",
		http.StatusConflict,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"Closing is already paid",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidClosingID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid closing id",
		http.StatusBadRequest,
	)
)
