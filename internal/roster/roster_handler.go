package roster

import (
	"net/http"
	"time"

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

func (h *Handler) Resolve(c *gin.Context) {
	var date time.Time
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Date must be in YYYY-MM-DD format", nil)
			return
		}
		date = parsed
	}

	entries, err := h.service.Resolve(c.Request.Context(), c.Param("locationID"), c.Param("shift"), date)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, entries, nil)
}
