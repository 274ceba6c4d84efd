package infra

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Vovarama1992/voicebank_relay/internal/config"
	"github.com/Vovarama1992/voicebank_relay/internal/ports"
)

type s3Client struct {
	client *minio.Client
	bucket string
	host   string
}

// NewS3Client connects to the archive bucket. A missing bucket is a startup
// error, the relay never creates one.
func NewS3Client(ctx context.Context, cfg config.S3Config) (ports.S3Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("archive bucket %q does not exist", cfg.Bucket)
	}

	return &s3Client{
		client: client,
		bucket: cfg.Bucket,
		host:   endpointURL(cfg),
	}, nil
}

// локальный minio обычно без TLS
func endpointURL(cfg config.S3Config) string {
	if cfg.UseSSL {
		return "https://" + cfg.Endpoint
	}
	return "http://" + cfg.Endpoint
}

// PutObject streams r to key; size must be exact.
func (s *s3Client) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) (string, error) {
	userMeta := make(map[string]string, len(meta)+1)
	for k, v := range meta {
		userMeta[k] = v
	}
	userMeta["uploaded-at"] = time.Now().UTC().Format(time.RFC3339)

	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: userMeta,
	}); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return s.objectURL(key), nil
}

// ключ вида 2026-01-02/<uuid>.mp3, слэши остаются слэшами
func (s *s3Client) objectURL(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s/%s", s.host, s.bucket, strings.Join(segs, "/"))
}
