package notificationerrors

import (
	"net/http"

	"guardshift/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Notification not found",
		http.StatusNotFound,
	)
	ErrNotRecipient = apperror.New(
		apperror.CodeForbidden,
		"Access denied: not the notification recipient",
		http.StatusForbidden,
	)
)
