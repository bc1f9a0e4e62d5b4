package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	miniocfg "github.com/jonesrussell/godeals/internal/config/minio"
	"github.com/jonesrussell/godeals/internal/logger"
)

// MinIOStore persists artifacts to a MinIO bucket.
type MinIOStore struct {
	client *miniogo.Client
	config *miniocfg.Config
	logger logger.Interface
}

// Ensure MinIOStore implements Interface
var _ Interface = (*MinIOStore)(nil)

// NewMinIOStore creates a new MinIO-backed artifact store.
func NewMinIOStore(cfg *miniocfg.Config, log logger.Interface) (*MinIOStore, error) {
	if cfg == nil {
		return nil, errors.New("minio config is nil")
	}

	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	log.Info("MinIO artifact store initialized",
		"endpoint", cfg.Endpoint,
		"bucket", cfg.Bucket)

	return &MinIOStore{
		client: client,
		config: cfg,
		logger: log,
	}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	if s.client == nil {
		return ErrNotConnected
	}

	exists, err := s.client.BucketExists(ctx, s.config.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if mkErr := s.client.MakeBucket(ctx, s.config.Bucket, miniogo.MakeBucketOptions{}); mkErr != nil {
		return fmt.Errorf("failed to create bucket %q: %w", s.config.Bucket, mkErr)
	}

	s.logger.Info("Created artifact bucket", "bucket", s.config.Bucket)
	return nil
}

// Get reads the object stored under key.
func (s *MinIOStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	obj, err := s.client.GetObject(ctx, s.config.Bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		var minioErr miniogo.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read object %q: %w", key, err)
	}

	return data, nil
}

// Put writes data under key, replacing any existing object.
func (s *MinIOStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if s.client == nil {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	_, err := s.client.PutObject(
		ctx,
		s.config.Bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		miniogo.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to put object %q: %w", key, err)
	}

	s.logger.Debug("Uploaded artifact",
		"key", key,
		"size", len(data))

	return nil
}

// Exists reports whether an object is stored under key.
func (s *MinIOStore) Exists(ctx context.Context, key string) (bool, error) {
	if s.client == nil {
		return false, ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	_, err := s.client.StatObject(ctx, s.config.Bucket, key, miniogo.StatObjectOptions{})
	if err != nil {
		var minioErr miniogo.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %q: %w", key, err)
	}

	return true, nil
}
