package errors

import (
	"net/http"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
)

var (
	ErrBatchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Batch entry not found",
		http.StatusNotFound,
	)
	ErrJobNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job not found",
		http.StatusNotFound,
	)
	ErrStageNotFound = apperror.New(
		apperror.CodeNotFound,
		"Stage not found",
		http.StatusNotFound,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"One or more roster workers were not found",
		http.StatusNotFound,
	)
	ErrEmptyRoster = apperror.New(
		apperror.CodeInvalidInput,
		"Roster must contain at least one worker",
		http.StatusBadRequest,
	)
	ErrDuplicateRosterWorker = apperror.New(
		apperror.CodeInvalidInput,
		"Roster lists the same worker more than once",
		http.StatusBadRequest,
	)
	ErrUnknownField = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown production field",
		http.StatusBadRequest,
	)
	ErrNonPositiveQty = apperror.New(
		apperror.CodeInvalidInput,
		"Production quantities must be positive",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrHoursOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"Hours must be between 0.5 and 24",
		http.StatusBadRequest,
	)
)
