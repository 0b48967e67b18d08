package service

import (
	"context"
	"io"
)

// ImageStorage keeps product images and hands back a URL clients can load directly.
type ImageStorage interface {
	Upload(ctx context.Context, file io.Reader, size int64, contentType, folder string) (string, error)
	Delete(ctx context.Context, fileURL string) error
	Close() error
}
