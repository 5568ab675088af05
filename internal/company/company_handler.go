package company

import (
	"errors"
	"net/http"

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

type CompanyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) GetAll(c *gin.Context) {
	rows, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	res := make([]CompanyResponse, len(rows))
	for i, row := range rows {
		res[i] = CompanyResponse{ID: row.ID.String(), Name: row.Name}
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	row, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "Company not found", nil)
			return
		}
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, CompanyResponse{ID: row.ID.String(), Name: row.Name}, nil)
}
