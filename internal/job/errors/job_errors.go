package joberrors

import (
	"net/http"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
)

var (
	ErrJobNotFound = apperror.New(
		apperror.CodeNotFound,
		"job not found",
		http.StatusNotFound,
	)
	ErrStageNotFound = apperror.New(
		apperror.CodeNotFound,
		"stage not found",
		http.StatusNotFound,
	)
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"client not found",
		http.StatusNotFound,
	)
	ErrInvalidJobID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid job id",
		http.StatusBadRequest,
	)
	ErrInvalidStageNumber = apperror.New(
		apperror.CodeInvalidInput,
		"stage number must be between 1 and 5",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid job status",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid job status transition",
		http.StatusBadRequest,
	)
	ErrStageAlreadyCompleted = apperror.New(
		apperror.CodeInvalidState,
		"stage is already completed",
		http.StatusBadRequest,
	)
	ErrFieldNotAllowedForStage = apperror.New(
		apperror.CodeInvalidInput,
		"field does not belong to this stage",
		http.StatusBadRequest,
	)
	ErrPercentOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"percentage fields must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrNegativeFieldValue = apperror.New(
		apperror.CodeInvalidInput,
		"stage detail values cannot be negative",
		http.StatusBadRequest,
	)
)
