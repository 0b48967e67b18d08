package usecase

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofinds/pkg/errors"
)

type recordingStorage struct {
	folder string
	body   []byte
}

func (s *recordingStorage) Upload(ctx context.Context, file io.Reader, size int64, contentType, folder string) (string, error) {
	s.folder = folder
	body, err := io.ReadAll(file)
	s.body = body
	return "https://cdn.test/" + folder + "/img.png", err
}

func (s *recordingStorage) Delete(ctx context.Context, fileURL string) error { return nil }

func (s *recordingStorage) Close() error { return nil }

func TestUploadProductImage(t *testing.T) {
	storage := &recordingStorage{}
	uc := NewImageUseCase(storage)
	data := []byte("\x89PNG fake")

	url, err := uc.UploadProductImage(context.Background(), "u1", bytes.NewReader(data), int64(len(data)), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/products/u1/img.png", url)
	assert.Equal(t, data, storage.body)
}

func TestUploadProductImageRejects(t *testing.T) {
	uc := NewImageUseCase(&recordingStorage{})
	ctx := context.Background()

	_, err := uc.UploadProductImage(ctx, "u1", bytes.NewReader(nil), 10, "application/pdf")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = uc.UploadProductImage(ctx, "u1", bytes.NewReader(nil), MaxImageSize+1, "image/jpeg")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = NewImageUseCase(nil).UploadProductImage(ctx, "u1", bytes.NewReader(nil), 10, "image/jpeg")
	assert.True(t, errors.Is(err, errors.CodeServiceUnavailable))
}
