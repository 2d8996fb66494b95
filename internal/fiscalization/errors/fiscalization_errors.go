package errors

import (
	"net/http"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
)

var (
	ErrVisitNotFound = apperror.New(
		apperror.CodeNotFound,
		"fiscalization visit not found",
		http.StatusNotFound,
	)
	ErrJobNotFound = apperror.New(
		apperror.CodeNotFound,
		"job not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"visit date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidOutcome = apperror.New(
		apperror.CodeInvalidInput,
		"invalid visit outcome",
		http.StatusBadRequest,
	)
)
