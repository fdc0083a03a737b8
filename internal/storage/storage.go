// Package storage abstracts the object store holding message images and
// report screenshots. Objects are referenced everywhere else by opaque keys.
package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Size int64
	ETag string
}

type ObjectStorage interface {
	Provider() string

	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	StatObject(ctx context.Context, key string) (ObjectInfo, error)
	RemoveObject(ctx context.Context, key string) error
	PresignGetObject(ctx context.Context, key string, expires time.Duration) (string, error)
}
