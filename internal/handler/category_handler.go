package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
	"github.com/noah-isme/fileflow-portal-api/pkg/response"
)

type categoryCatalogue interface {
	List() []models.CategoryInfo
}

// CategoryHandler serves the document category catalogue.
type CategoryHandler struct {
	catalogue categoryCatalogue
}

// NewCategoryHandler constructs the handler.
func NewCategoryHandler(catalogue categoryCatalogue) *CategoryHandler {
	return &CategoryHandler{catalogue: catalogue}
}

// List godoc
// @Summary List document categories with accepted extensions
// @Tags Categories
// @Produce json
// @Success 200 {array} models.CategoryInfo
// @Router /tipos-arquivos [get]
func (h *CategoryHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalogue.List())
}
