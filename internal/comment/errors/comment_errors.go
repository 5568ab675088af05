package commenterrors

import (
	"net/http"

	"guardshift/internal/shared/apperror"
)

var (
	ErrCommentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Comment not found",
		http.StatusNotFound,
	)
	ErrNotCommentCreator = apperror.New(
		apperror.CodeForbidden,
		"Access denied: only the comment creator can delete this note",
		http.StatusForbidden,
	)
)
