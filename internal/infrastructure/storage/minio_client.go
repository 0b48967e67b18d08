package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"ecofinds/pkg/logger"
)

// MinioClient stores product images in an S3-compatible bucket.
type MinioClient struct {
	client     *minio.Client
	bucketName string
	baseURL    string
}

func NewMinioClient(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinioClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
		logger.Info("Created bucket: %s", bucketName)
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return &MinioClient{
		client:     client,
		bucketName: bucketName,
		baseURL:    fmt.Sprintf("%s://%s", scheme, endpoint),
	}, nil
}

func (c *MinioClient) Upload(ctx context.Context, file io.Reader, size int64, contentType, folder string) (string, error) {
	name := objectName(folder, contentType)

	_, err := c.client.PutObject(ctx, c.bucketName, name, file, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to MinIO: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.bucketName, name), nil
}

func (c *MinioClient) Delete(ctx context.Context, fileURL string) error {
	name, err := objectFromURL(fileURL, c.baseURL, c.bucketName)
	if err != nil {
		return err
	}
	if err := c.client.RemoveObject(ctx, c.bucketName, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Close is a no-op; the MinIO client holds no long-lived connections.
func (c *MinioClient) Close() error {
	return nil
}
