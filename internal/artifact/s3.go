package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const keyPrefix = "speech/"

type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool
}

type S3Store struct {
	client *minio.Client
	bucket string
	host   string
}

func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	// проверим, что бакет существует
	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", opts.Bucket)
	}

	scheme := "https"
	if !opts.Secure {
		scheme = "http"
	}

	return &S3Store{
		client: client,
		bucket: opts.Bucket,
		host:   fmt.Sprintf("%s://%s", scheme, opts.Endpoint),
	}, nil
}

// ObjectKey — путь в бакете
func ObjectKey(id string) string {
	return keyPrefix + id + fileExt
}

func idFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, keyPrefix) || !strings.HasSuffix(key, fileExt) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, keyPrefix), fileExt)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (s *S3Store) Save(ctx context.Context, r io.Reader) (Artifact, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return Artifact{}, fmt.Errorf("read audio: %w", err)
	}

	id := uuid.NewString()
	now := time.Now()

	_, err := s.client.PutObject(ctx, s.bucket, ObjectKey(id), bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType:  "audio/mpeg",
		UserMetadata: map[string]string{"uploaded-at": now.Format(time.RFC3339)},
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("upload failed: %w", err)
	}

	return Artifact{ID: id, Size: int64(buf.Len()), CreatedAt: now}, nil
}

func (s *S3Store) Open(ctx context.Context, id string) (io.ReadCloser, Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Artifact{}, ErrNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, ObjectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, Artifact{}, s.mapErr(err)
	}

	// GetObject ленивый: реальная ошибка всплывает только на Stat/Read
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, Artifact{}, s.mapErr(err)
	}

	return obj, Artifact{ID: id, Size: info.Size, CreatedAt: info.LastModified}, nil
}

func (s *S3Store) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.client.RemoveObject(ctx, s.bucket, ObjectKey(id), minio.RemoveObjectOptions{})
}

// Sweep reads the listing to the end before deleting: minio's listing
// goroutine only exits once its channel is drained.
func (s *S3Store) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)

	var (
		stale   []string
		listErr error
	)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: keyPrefix, Recursive: true}) {
		if obj.Err != nil {
			if listErr == nil {
				listErr = fmt.Errorf("list objects: %w", obj.Err)
			}
			continue
		}
		id, ok := idFromKey(obj.Key)
		if ok && obj.LastModified.Before(cutoff) {
			stale = append(stale, id)
		}
	}

	removed := 0
	firstErr := listErr
	for _, id := range stale {
		if err := s.Delete(ctx, id); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("delete %s: %w", id, err)
			}
			continue
		}
		removed++
	}

	return removed, firstErr
}

// PublicURL is only reachable when the bucket allows anonymous reads.
func (s *S3Store) PublicURL(id string) string {
	return fmt.Sprintf("%s/%s/%s", s.host, s.bucket, ObjectKey(id))
}

func (s *S3Store) mapErr(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return err
}
