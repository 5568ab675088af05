package override

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

func (h *Handler) Create(c *gin.Context) {
	var req CreateOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(mapped)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.CreateOrUpdate(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Remove deactivates a guard's override. It targets today unless an explicit
// ?date= is supplied.
func (h *Handler) Remove(c *gin.Context) {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Date must be in YYYY-MM-DD format", nil)
			return
		}
		date = parsed
	}

	if err := h.service.Remove(c.Request.Context(), principalFrom(c), c.Param("guardID"), date); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Shift override removed"}, nil)
}

func (h *Handler) ShiftInfo(c *gin.Context) {
	resp, err := h.service.ShiftInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
