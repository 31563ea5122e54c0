package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/service"
)

// UploadHandler handles media uploads.
type UploadHandler struct {
	mediaService service.MediaService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(mediaService service.MediaService) *UploadHandler {
	return &UploadHandler{mediaService: mediaService}
}

// Upload godoc
// @Summary Upload a media file
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file (jpg, png or gif, max 10 MB)"
// @Success 200 {object} service.UploadResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return httpError(c, apperrors.ErrNoFile)
	}

	src, err := file.Open()
	if err != nil {
		return httpError(c, err)
	}
	defer src.Close()

	result, err := h.mediaService.Upload(c.Request().Context(), file.Filename, src, file.Size)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
