package guarderrors

import (
	"net/http"

	"guardshift/internal/shared/apperror"
)

var (
	ErrGuardNotFound = apperror.New(
		apperror.CodeNotFound,
		"Guard not found",
		http.StatusNotFound,
	)
	ErrLocationNotAccessible = apperror.New(
		apperror.CodeForbidden,
		"Access denied: location is not accessible",
		http.StatusForbidden,
	)
	ErrInvalidShift = apperror.New(
		apperror.CodeInvalidInput,
		"Shift must be 'day' or 'night'",
		http.StatusBadRequest,
	)
	ErrGuardInactive = apperror.New(
		apperror.CodeInvalidInput,
		"Guard is not active",
		http.StatusBadRequest,
	)
)
