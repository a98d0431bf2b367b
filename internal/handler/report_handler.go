package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fileflow-portal-api/internal/dto"
	"github.com/noah-isme/fileflow-portal-api/internal/service"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
	"github.com/noah-isme/fileflow-portal-api/pkg/response"
)

type reportRenderer interface {
	Render(ctx context.Context, month, format string) (*service.RenderedReport, error)
}

// ReportHandler serves the monthly compliance report.
type ReportHandler struct {
	reports reportRenderer
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports reportRenderer) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Submissions godoc
// @Summary Download the monthly submission compliance report
// @Tags Reports
// @Produce text/csv,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param mes query string true "Reference month (YYYY-MM)"
// @Param formato query string false "csv (default), pdf or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} errors.Error
// @Router /relatorios/envios [get]
func (h *ReportHandler) Submissions(c *gin.Context) {
	var query dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	report, err := h.reports.Render(c.Request.Context(), query.Month, query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, report.ContentType, report.Data)
}
