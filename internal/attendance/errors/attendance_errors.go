package attendanceerrors

import (
	"net/http"

	"guardshift/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrDeletedRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Deleted attendance record not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of: present, absent, off, leave",
		http.StatusBadRequest,
	)
	ErrRestoreConflict = apperror.New(
		apperror.CodeConflict,
		"An attendance record already exists for this guard, date and shift",
		http.StatusConflict,
	)
)
