// Package storage uploads finished renders to MinIO-compatible object
// storage. Optional: when disabled in config, outputs stay on local disk.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"NoYaRender/config"
	"NoYaRender/logger"
)

// ArtifactStore holds the MinIO client and target bucket.
type ArtifactStore struct {
	client *minio.Client
	bucket string
}

// NewArtifactStore connects to MinIO and ensures the bucket exists.
func NewArtifactStore(cfg *config.Config) (*ArtifactStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("created artifact bucket", logger.String("bucket", cfg.MinioBucket))
	}

	return &ArtifactStore{client: client, bucket: cfg.MinioBucket}, nil
}

// UploadArtifact stores a finished render and returns its object path.
func (s *ArtifactStore) UploadArtifact(ctx context.Context, localPath, jobID string) (string, error) {
	objectName := fmt.Sprintf("renders/%s/%s", jobID, filepath.Base(localPath))

	info, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: "video/mp4",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	logger.Info("artifact uploaded",
		logger.String("object", objectName),
		logger.Int64("size", info.Size))
	return fmt.Sprintf("%s/%s", s.bucket, objectName), nil
}
