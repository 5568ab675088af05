package requesterrors

import (
	"net/http"

	"guardshift/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Request not found",
		http.StatusNotFound,
	)
	ErrNotRequestCreator = apperror.New(
		apperror.CodeForbidden,
		"You can only delete your own requests",
		http.StatusForbidden,
	)
)
