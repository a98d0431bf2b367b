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

type submissionService interface {
	Submitted(ctx context.Context, query dto.SubmissionQuery) ([]models.SubmittedCategory, error)
	Status(ctx context.Context, query dto.SubmissionQuery) ([]models.CategoryStatus, error)
}

// SubmissionHandler answers what has been sent for a slot.
type SubmissionHandler struct {
	service submissionService
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service submissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// List godoc
// @Summary List categories already submitted for a slot
// @Tags Uploads
// @Produce json
// @Param usuario_id query string true "User id"
// @Param empresa_id query string true "Company id"
// @Param mes query string true "Reference month (YYYY-MM)"
// @Success 200 {array} models.SubmittedCategory
// @Router /uploads [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	query, ok := bindSubmissionQuery(c)
	if !ok {
		return
	}
	categories, err := h.service.Submitted(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories)
}

// Status godoc
// @Summary Per-category submission state for a slot
// @Tags Uploads
// @Produce json
// @Param usuario_id query string true "User id"
// @Param empresa_id query string true "Company id"
// @Param mes query string true "Reference month (YYYY-MM)"
// @Success 200 {array} models.CategoryStatus
// @Router /uploads/situacao [get]
func (h *SubmissionHandler) Status(c *gin.Context) {
	query, ok := bindSubmissionQuery(c)
	if !ok {
		return
	}
	statuses, err := h.service.Status(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, statuses)
}

func bindSubmissionQuery(c *gin.Context) (dto.SubmissionQuery, bool) {
	var query dto.SubmissionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return query, false
	}
	return query, true
}
