package integrations

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"picsync/backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/heic": ".heic",
}

// ImageArchive keeps a copy of every uploaded screenshot in an S3-compatible bucket.
type ImageArchive struct {
	bucket         string
	publicEndpoint string
	client         *s3.Client
	now            func() time.Time
}

// NewImageArchive creates image archive.
func NewImageArchive(cfg config.S3Config) (*ImageArchive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	endpoint := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	publicEndpoint := normalizeEndpoint(cfg.PublicEndpoint, cfg.UseSSL)
	if publicEndpoint == "" {
		publicEndpoint = endpoint
	}

	options := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if endpoint != "" {
		options.BaseEndpoint = aws.String(endpoint)
	}

	return &ImageArchive{
		bucket:         cfg.Bucket,
		publicEndpoint: publicEndpoint,
		client:         s3.New(options),
		now:            time.Now,
	}, nil
}

// Store uploads image and returns its public URL.
func (a *ImageArchive) Store(ctx context.Context, image []byte, contentType string) (string, error) {
	if a == nil {
		return "", fmt.Errorf("image archive is not configured")
	}
	if len(image) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	key := objectKey(a.now(), contentType)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(image),
		ContentLength: aws.Int64(int64(len(image))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := a.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return a.publicURLForKey(key), nil
}

func (a *ImageArchive) publicURLForKey(key string) string {
	if a.publicEndpoint == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", a.bucket, key)
	}
	u, err := url.Parse(a.publicEndpoint)
	if err != nil {
		return fmt.Sprintf("%s/%s/%s", a.publicEndpoint, a.bucket, key)
	}
	u.Path = path.Join(u.Path, a.bucket, key)
	return u.String()
}

// objectKey files uploads by day: uploads/2025/10/03/<uuid>.png
func objectKey(now time.Time, contentType string) string {
	now = now.UTC()
	ext := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), uuid.NewString(), ext)
}

func normalizeEndpoint(endpoint string, useSSL bool) string {
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "http") {
		return endpoint
	}
	scheme := "https"
	if !useSSL {
		scheme = "http"
	}
	return scheme + "://" + endpoint
}
