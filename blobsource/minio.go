package blobsource

import (
	"context"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
)

// Minio serves blobs from a bucket of an S3-compatible object store.
type Minio struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinio returns a source reading objects below prefix in bucket.
func NewMinio(client *minio.Client, bucket, prefix string) *Minio {
	return &Minio{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *Minio) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open starts a streaming download of the named object.
func (s *Minio) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, translate(err)
	}
	// GetObject is lazy; Stat surfaces a missing key before the first read.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, translate(err)
	}
	return obj, nil
}

func translate(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return ErrNotFound
	}
	return err
}
