package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/coccyx/gogen-api/internal/registry"
)

// S3API is the subset of the S3 client the blob store uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3BlobStore is the S3-backed blob store for configuration payloads.
type S3BlobStore struct {
	client S3API
	bucket string
}

var _ BlobStore = (*S3BlobStore)(nil)

// NewS3BlobStore creates a blob store over the given client and bucket.
func NewS3BlobStore(client S3API, bucket string) *S3BlobStore {
	return &S3BlobStore{
		client: client,
		bucket: bucket,
	}
}

// Download implements BlobStore. A missing object is an inconsistency, not
// unavailability: the store answered, but the data the caller was promised
// is not there.
func (s *S3BlobStore) Download(ctx context.Context, path string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", fmt.Errorf("%w: blob %q does not exist", registry.ErrUpstreamInconsistent, path)
		}
		return "", fmt.Errorf("%w: downloading blob %q: %v", registry.ErrUpstreamUnavailable, path, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading blob %q: %v", registry.ErrUpstreamUnavailable, path, err)
	}
	return string(body), nil
}

// Upload implements BlobStore.
func (s *S3BlobStore) Upload(ctx context.Context, path, body string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
		Body:   strings.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("%w: uploading blob %q: %v", registry.ErrUpstreamUnavailable, path, err)
	}
	return nil
}
