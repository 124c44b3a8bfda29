package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/meridianmag/meridian-backend/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage uploads objects to MinIO and returns a URL for them. When a public
// base URL is configured it is used instead of the raw endpoint address.
type Storage struct {
	client     *minio.Client
	publicBase string
}

func NewStorage(client *minio.Client, publicBaseURL string) *Storage {
	return &Storage{
		client:     client,
		publicBase: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	if s.publicBase != "" {
		return s.publicBase + "/" + bucket + "/" + strings.TrimLeft(objectName, "/"), nil
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.client.EndpointURL().String(), "/"), bucket, objectName), nil
}

var _ ports.ObjectStorage = (*Storage)(nil)
