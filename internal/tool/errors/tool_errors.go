package errors

import (
	"net/http"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
)

var (
	ErrToolNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tool not found",
		http.StatusNotFound,
	)
	ErrDuplicateCode = apperror.New(
		apperror.CodeConflict,
		"A tool with this code already exists",
		http.StatusConflict,
	)
	ErrInvalidToolID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid tool id",
		http.StatusBadRequest,
	)
	ErrInvalidQty = apperror.New(
		apperror.CodeInvalidInput,
		"Move quantity must be positive",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeBadMove,
		"Unknown move kind",
		http.StatusBadRequest,
	)
	ErrMissingEndpoint = apperror.New(
		apperror.CodeBadMove,
		"Move kind requires an endpoint that was not provided",
		http.StatusBadRequest,
	)
	ErrSameEndpoint = apperror.New(
		apperror.CodeBadMove,
		"Source and destination jobs must differ",
		http.StatusBadRequest,
	)
	ErrInvalidSourceType = apperror.New(
		apperror.CodeBadMove,
		"Source location not allowed for this move kind",
		http.StatusBadRequest,
	)
	ErrInsufficientStock = apperror.New(
		apperror.CodeInsufficientStock,
		"Not enough units at the source location",
		http.StatusConflict,
	)
	ErrLedgerInconsistent = apperror.New(
		apperror.CodeConsistencyError,
		"Tool total does not match the sum of its locations",
		http.StatusInternalServerError,
	)
)
