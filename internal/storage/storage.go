// Package storage keeps uploaded report images in a blob store.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inspection-back/internal/config"
)

// presignTTL bounds how long rendered image links stay usable.
const presignTTL = time.Hour

// Store is a flat key/value blob store.
type Store interface {
	// Put writes size bytes from r under key, replacing any previous object.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Open returns the object under key or errs.ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns a link a client can fetch the object from.
	URL(ctx context.Context, key string) (string, error)
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.Storage, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverMinIO:
		log.Info("using minio storage", zap.String("endpoint", cfg.MinIO.Endpoint), zap.String("bucket", cfg.MinIO.Bucket))
		return NewMinIOClient(ctx, cfg.MinIO)
	case config.DriverS3:
		log.Info("using s3 storage", zap.String("region", cfg.S3.Region), zap.String("bucket", cfg.S3.Bucket))
		return NewS3(ctx, cfg.S3)
	case config.DriverLocal:
		log.Info("using local storage", zap.String("root", cfg.MediaRoot))
		return NewLocal(cfg.MediaRoot, cfg.MediaURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ObjectName creates a unique object name with folder structure.
func ObjectName(userID uint, kind, ext string) string {
	return fmt.Sprintf("users/%d/%s/%s%s", userID, kind, uuid.NewString(), ext)
}
