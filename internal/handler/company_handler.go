package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fileflow-portal-api/internal/dto"
	"github.com/noah-isme/fileflow-portal-api/internal/models"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
	"github.com/noah-isme/fileflow-portal-api/pkg/response"
)

type companyService interface {
	List(ctx context.Context) ([]models.Company, error)
	AllowedCategories(ctx context.Context, companyID string) ([]string, error)
	ReplaceAllowedCategories(ctx context.Context, companyID string, req dto.ReplaceCompanyCategoriesRequest) ([]string, error)
}

// CompanyHandler exposes company endpoints.
type CompanyHandler struct {
	service companyService
}

// NewCompanyHandler builds a new handler.
func NewCompanyHandler(service companyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// List godoc
// @Summary List companies
// @Tags Companies
// @Produce json
// @Success 200 {array} models.Company
// @Router /empresas [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, companies)
}

// Categories godoc
// @Summary List the categories a company must submit
// @Tags Companies
// @Produce json
// @Param id path string true "Company id"
// @Success 200 {array} string
// @Router /empresas/{id}/tipos-arquivos [get]
func (h *CompanyHandler) Categories(c *gin.Context) {
	categories, err := h.service.AllowedCategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories)
}

// ReplaceCategories godoc
// @Summary Replace the categories a company must submit
// @Tags Companies
// @Accept json
// @Produce json
// @Param id path string true "Company id"
// @Param payload body dto.ReplaceCompanyCategoriesRequest true "Categories"
// @Success 200 {array} string
// @Failure 400 {object} errors.Error
// @Router /empresas/{id}/tipos-arquivos [put]
func (h *CompanyHandler) ReplaceCategories(c *gin.Context) {
	var req dto.ReplaceCompanyCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid categories payload"))
		return
	}
	categories, err := h.service.ReplaceAllowedCategories(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories)
}
