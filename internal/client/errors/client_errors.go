package errors

import (
	"net/http"

	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
)

var (
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"Client not found",
		http.StatusNotFound,
	)
	ErrDuplicateTaxID = apperror.New(
		apperror.CodeConflict,
		"A client with this tax id already exists",
		http.StatusConflict,
	)
	ErrClientHasJobs = apperror.New(
		apperror.CodeConflict,
		"Client has jobs and cannot be removed",
		http.StatusConflict,
	)
	ErrInvalidClientID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid client id",
		http.StatusBadRequest,
	)
)
