package errors

import (
	"net/http"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
)

var (
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Timesheet not found",
		http.StatusNotFound,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Worker not found",
		http.StatusNotFound,
	)
	ErrJobNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job not found",
		http.StatusNotFound,
	)
	ErrInvalidTimesheetID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid timesheet id",
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
	ErrInvalidWeather = apperror.New(
		apperror.CodeInvalidInput,
		"Weather must be SUN, RAIN or OVERCAST",
		http.StatusBadRequest,
	)
	ErrNegativeArea = apperror.New(
		apperror.CodeInvalidInput,
		"Executed area cannot be negative",
		http.StatusBadRequest,
	)
)
