package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/histolook/go-api-server/internal/config"
)

// S3Storage issues presigned upload URLs on S3-compatible storage (S3/R2/MinIO)
type S3Storage struct {
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
}

func NewS3Storage(cfg config.StorageConfig) *S3Storage {
	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	slog.Info("S3 storage client 초기화", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)

	return &S3Storage{
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

func (s *S3Storage) GenerateUploadURLs(ctx context.Context, prefix Prefix, ownerID string, count int, ttl time.Duration) (*UploadURLs, error) {
	result := &UploadURLs{
		URLs:        make([]string, 0, count),
		ObjectNames: make([]string, 0, count),
	}

	for i := 0; i < count; i++ {
		objectName := NewObjectName(prefix, ownerID)

		req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectName),
		}, s3.WithPresignExpires(ttl))
		if err != nil {
			return nil, fmt.Errorf("presign put %s: %w", objectName, err)
		}

		result.URLs = append(result.URLs, req.URL)
		result.ObjectNames = append(result.ObjectNames, objectName)
	}

	return result, nil
}

func (s *S3Storage) ObjectNameToPublicURL(objectName string) string {
	return PublicURL(s.publicBaseURL, objectName)
}

var _ Storage = (*S3Storage)(nil)
