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

type userService interface {
	List(ctx context.Context) ([]models.PortalUser, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.PortalUser, error)
	UpdateName(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.PortalUser, error)
	Companies(ctx context.Context, userID string) ([]models.Company, error)
	ReplaceCompanies(ctx context.Context, userID string, req dto.ReplaceUserCompaniesRequest) error
	IdentityUsers(ctx context.Context) ([]models.IdentityUser, error)
}

// UserHandler exposes portal user and permission endpoints.
type UserHandler struct {
	service userService
}

// NewUserHandler constructs the handler.
func NewUserHandler(service userService) *UserHandler {
	return &UserHandler{service: service}
}

// List godoc
// @Summary List portal users
// @Tags Users
// @Produce json
// @Success 200 {array} models.PortalUser
// @Router /usuarios [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Create godoc
// @Summary Register a portal user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.CreateUserRequest true "User"
// @Success 201 {object} models.PortalUser
// @Failure 400 {object} errors.Error
// @Router /usuarios [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "id, nome and email are required"))
		return
	}
	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Update godoc
// @Summary Rename a portal user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param payload body dto.UpdateUserRequest true "Name"
// @Success 200 {object} models.PortalUser
// @Router /usuarios/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid user payload"))
		return
	}
	user, err := h.service.UpdateName(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// Companies godoc
// @Summary List the companies a user may submit for
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {array} models.Company
// @Router /usuarios/{id}/empresas [get]
func (h *UserHandler) Companies(c *gin.Context) {
	companies, err := h.service.Companies(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, companies)
}

// ReplaceCompanies godoc
// @Summary Replace a user's company permissions
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param payload body dto.ReplaceUserCompaniesRequest true "Company ids"
// @Success 200 {array} models.Company
// @Router /usuarios/{id}/empresas [put]
func (h *UserHandler) ReplaceCompanies(c *gin.Context) {
	var req dto.ReplaceUserCompaniesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid permissions payload"))
		return
	}
	userID := c.Param("id")
	if err := h.service.ReplaceCompanies(c.Request.Context(), userID, req); err != nil {
		response.Error(c, err)
		return
	}
	companies, err := h.service.Companies(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, companies)
}

// IdentityUsers godoc
// @Summary List identity service accounts
// @Tags Users
// @Produce json
// @Success 200 {array} models.IdentityUser
// @Router /usuarios-auth [get]
func (h *UserHandler) IdentityUsers(c *gin.Context) {
	users, err := h.service.IdentityUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}
