package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fileflow-portal-api/internal/middleware"
	"github.com/noah-isme/fileflow-portal-api/internal/models"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
	"github.com/noah-isme/fileflow-portal-api/pkg/response"
)

// UploadFormField is the multipart field carrying the document.
const UploadFormField = "arquivo"

type relayService interface {
	Upload(ctx context.Context, req models.UploadRequest) (string, error)
}

// UploadHandler accepts documents and relays them to the remote store.
type UploadHandler struct {
	relay relayService
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(relay relayService) *UploadHandler {
	return &UploadHandler{relay: relay}
}

// Upload godoc
// @Summary Relay a fiscal document to the remote store
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param tipoArquivo path string true "Category id"
// @Param empresaId path string true "Company id"
// @Param mes path string true "Reference month (YYYY-MM)"
// @Param x-user-id header string false "Submitting user"
// @Param arquivo formData file true "Document"
// @Success 200 {object} response.UploadResult
// @Failure 400 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /upload/{tipoArquivo}/{empresaId}/{mes} [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile(UploadFormField)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrMissingFile, "no file was sent"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read file"))
		return
	}

	remotePath, err := h.relay.Upload(c.Request.Context(), models.UploadRequest{
		Category:  c.Param("tipoArquivo"),
		CompanyID: c.Param("empresaId"),
		Month:     c.Param("mes"),
		UserID:    middleware.UserID(c),
		Filename:  fileHeader.Filename,
		Content:   content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, response.UploadResult{
		Success:    true,
		Message:    "file sent successfully",
		RemotePath: remotePath,
	})
}
