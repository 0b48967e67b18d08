package usecase

import (
	"context"
	"fmt"
	"io"

	"ecofinds/internal/domain/service"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/logger"
)

const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ImageUseCase struct {
	storage service.ImageStorage
}

// NewImageUseCase accepts a nil storage; uploads then fail with SERVICE_UNAVAILABLE.
func NewImageUseCase(storage service.ImageStorage) *ImageUseCase {
	return &ImageUseCase{storage: storage}
}

func (uc *ImageUseCase) UploadProductImage(ctx context.Context, userID string, file io.Reader, size int64, contentType string) (string, error) {
	if uc.storage == nil {
		return "", errors.ServiceUnavailable("Image storage is not configured")
	}
	if !allowedImageTypes[contentType] {
		return "", errors.BadRequest("Only JPEG, PNG, GIF and WebP images are allowed", nil)
	}
	if size <= 0 || size > MaxImageSize {
		return "", errors.BadRequest(fmt.Sprintf("Image must be between 1 byte and %d MB", MaxImageSize>>20), nil)
	}

	url, err := uc.storage.Upload(ctx, file, size, contentType, "products/"+userID)
	if err != nil {
		return "", errors.Internal("Failed to upload image", err)
	}

	logger.Info("Image uploaded: userID=%s, url=%s", userID, url)
	return url, nil
}
