package pklfolio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// BlobStore holds uploaded project images. Keys are storage-relative paths
// like "project/1712345678901-a1b2c3d4.jpg"; URL resolves a key to something
// a browser can fetch.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewObjectKey builds a collision-resistant storage key for an uploaded
// image, following the original "project/<timestamp>.<ext>" convention with a
// short random suffix so two uploads in the same millisecond cannot clash.
func NewObjectKey(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "jpg"
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("project/%d-%s.%s", time.Now().UnixMilli(), suffix, ext)
}

// ResolveImageURL turns a stored image reference into a displayable URL.
// Absolute references are kept verbatim; storage-relative paths resolve
// through the blob store. An empty reference stays empty.
func ResolveImageURL(blobs BlobStore, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if blobs == nil {
		return ref
	}
	return blobs.URL(ref)
}

// --- Local filesystem implementation ---

// LocalBlobStore keeps uploads under <staticDir>/uploads and serves them from
// the /public static route. It is the fallback when no bucket is configured.
type LocalBlobStore struct {
	dir string
}

// NewLocalBlobStore creates the uploads directory under staticDir.
func NewLocalBlobStore(staticDir string) (*LocalBlobStore, error) {
	dir := filepath.Join(staticDir, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalBlobStore{dir: dir}, nil
}

func (l *LocalBlobStore) Put(_ context.Context, key, _ string, data []byte) error {
	full := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", key, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (l *LocalBlobStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *LocalBlobStore) URL(key string) string {
	return path.Join("/public/uploads", key)
}

// --- S3 implementation ---

// S3BlobStore stores uploads in an S3 (or S3-compatible) bucket, matching the
// hosted object storage the original site used for its "dokum" bucket.
type S3BlobStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3BlobStore builds a client from the storage settings in cfg.
func NewS3BlobStore(ctx context.Context, cfg Config) (*S3BlobStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.StorageRegion),
	}
	if cfg.StorageAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.StorageAccessKey, cfg.StorageSecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimSuffix(cfg.StorageBaseURL, "/")
	if baseURL == "" {
		if cfg.StorageEndpoint != "" {
			baseURL = strings.TrimSuffix(cfg.StorageEndpoint, "/") + "/" + cfg.StorageBucket
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.StorageBucket, cfg.StorageRegion)
		}
	}

	return &S3BlobStore{client: client, bucket: cfg.StorageBucket, baseURL: baseURL}, nil
}

func (b *S3BlobStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (b *S3BlobStore) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (b *S3BlobStore) URL(key string) string {
	return b.baseURL + "/" + key
}
