package location

import (
	"errors"
	"net/http"

	"guardshift/internal/guard"
	"guardshift/internal/shared/apperror"
	"guardshift/internal/shared/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "Location not found", nil)
		return
	}
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

// GetAll returns every location, including inaccessible ones, for admin
// display.
func (h *Handler) GetAll(c *gin.Context) {
	rows, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapAll(rows), nil)
}

// GetAccessible returns only the sites currently in rotation.
func (h *Handler) GetAccessible(c *gin.Context) {
	rows, err := h.repo.FindAccessible(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapAll(rows), nil)
}

// GetForShift returns accessible locations with at least one active guard on
// the given shift.
func (h *Handler) GetForShift(c *gin.Context) {
	shift := c.Param("shift")
	if !guard.ValidShift(shift) {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Shift must be 'day' or 'night'", nil)
		return
	}

	rows, err := h.repo.FindAccessibleForShift(c.Request.Context(), shift)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapAll(rows), nil)
}

func mapAll(rows []Location) []LocationResponse {
	res := make([]LocationResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res
}
