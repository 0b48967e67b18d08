package handler

import (
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"ecofinds/internal/usecase"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/logger"
	"ecofinds/pkg/response"
)

type ImageHandler struct {
	imageUseCase *usecase.ImageUseCase
}

func NewImageHandler(imageUseCase *usecase.ImageUseCase) *ImageHandler {
	return &ImageHandler{
		imageUseCase: imageUseCase,
	}
}

func (h *ImageHandler) UploadProductImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}
	if file.Size > usecase.MaxImageSize {
		return response.Error(c, errors.BadRequest("File size exceeds maximum allowed (5MB)", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	// The declared Content-Type is client supplied; sniff the bytes instead.
	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	contentType := detected.String()
	logger.Debug("Received image %s: %d bytes, declared %s, detected %s",
		file.Filename, file.Size, file.Header.Get("Content-Type"), contentType)

	uid := c.Get("uid").(string)

	url, err := h.imageUseCase.UploadProductImage(c.Request().Context(), uid, src, file.Size, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}
