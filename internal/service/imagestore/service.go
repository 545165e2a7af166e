package imagestore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"rentwheels/internal/config"
	"rentwheels/internal/domain"
)

const maxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Service stores vehicle photos and hands back the public URL that goes into
// the listing's images column.
type Service interface {
	Upload(ctx context.Context, ownerID uuid.UUID, fileName string, fileSize int64, contentType string, reader io.Reader) (string, error)
}

type service struct {
	client *minio.Client
	cfg    *config.Config
}

func NewService(client *minio.Client, cfg *config.Config) Service {
	return &service{client: client, cfg: cfg}
}

func (s *service) Upload(ctx context.Context, ownerID uuid.UUID, fileName string, fileSize int64, contentType string, reader io.Reader) (string, error) {
	if fileSize > maxImageSize {
		return "", domain.NewValidationError("file", "image must be 5MB or smaller")
	}
	if !allowedImageTypes[contentType] {
		return "", domain.NewValidationError("file", "only JPEG, PNG and WebP images are accepted")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	objectName := fmt.Sprintf("vehicles/%s/%s%s", ownerID.String(), uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.cfg.MinIOBucket, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.publicURL(objectName), nil
}

func (s *service) publicURL(objectName string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectName)
}
