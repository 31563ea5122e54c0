// Package storage abstracts the external media store behind a small
// object interface so the media service can be tested without a live
// backend.
package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the object operations the media service needs.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Bucket() string
}
