package attendance

import (
	"net/http"
	"time"

	"guardshift/internal/authz"
	"guardshift/internal/shared/apperror"
	"guardshift/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func principalFrom(c *gin.Context) authz.Principal {
	return authz.Principal{
		Username: c.GetString("username"),
		Role:     c.GetString("role"),
	}
}

func (h *Handler) Mark(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(mapped)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	msg, err := h.service.Mark(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": msg}, nil)
}

func (h *Handler) BulkMark(c *gin.Context) {
	var req BulkMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(mapped)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	result, err := h.service.BulkMark(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		GuardID:    c.Query("guard_id"),
		LocationID: c.Query("location_id"),
	}
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Date must be in YYYY-MM-DD format", nil)
			return
		}
		filter.Date = &parsed
	}

	rows, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	// Body is optional; a bare DELETE carries no reason.
	_ = c.ShouldBindJSON(&req)

	if err := h.service.Delete(c.Request.Context(), principalFrom(c), c.Param("id"), req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Attendance record deleted"}, nil)
}

func (h *Handler) ListDeleted(c *gin.Context) {
	rows, err := h.service.ListDeleted(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}

func (h *Handler) Restore(c *gin.Context) {
	if err := h.service.Restore(c.Request.Context(), principalFrom(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Attendance record restored"}, nil)
}
