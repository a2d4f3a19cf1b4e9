package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/unisolve/backend/internal/config"
)

// Storage stores an uploaded image and returns its durable URL.
type Storage interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// UploadError reports an upstream storage failure along with the status code
// the upstream returned (0 when it could not be reached at all).
type UploadError struct {
	StatusCode int
	Details    string
}

func (e *UploadError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("image upload failed: %s", e.Details)
	}
	return fmt.Sprintf("image upload failed with status %d: %s", e.StatusCode, e.Details)
}

// New selects the storage backend from config.
// Default is the external upload delegate; IMAGE_PROVIDER=s3 stores directly
// in an S3-compatible bucket instead.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.ImageProvider {
	case "s3":
		return NewS3Storage(S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Timeout:   cfg.UploadTimeout,
		})
	case "delegate":
		return NewDelegateStorage(cfg.ImageBaseURL, cfg.UploadTimeout), nil
	default:
		return nil, fmt.Errorf("unknown image provider %q", cfg.ImageProvider)
	}
}
