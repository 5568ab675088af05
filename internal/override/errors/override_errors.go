package overrideerrors

import (
	"net/http"

	"guardshift/internal/shared/apperror"
)

var (
	ErrOverrideNotFound = apperror.New(
		apperror.CodeNotFound,
		"No active override found",
		http.StatusNotFound,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidLocation = apperror.New(
		apperror.CodeInvalidInput,
		"Override location must be a valid location id",
		http.StatusBadRequest,
	)
)
