package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// objectName builds a collision-free key such as "products/<uuid>-20240301101500.png".
func objectName(folder, contentType string) string {
	ext, ok := imageExtensions[contentType]
	if !ok {
		ext = ".bin"
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%s-%s%s", folder, uuid.New().String(), time.Now().UTC().Format("20060102150405"), ext)
}

// objectFromURL strips "<base>/<bucket>/" off a public URL.
func objectFromURL(fileURL, base, bucket string) (string, error) {
	prefix := strings.TrimRight(base, "/") + "/" + bucket + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", fmt.Errorf("url %q does not belong to bucket %s", fileURL, bucket)
	}
	name := strings.TrimPrefix(fileURL, prefix)
	if name == "" {
		return "", fmt.Errorf("url %q has no object name", fileURL)
	}
	return name, nil
}
