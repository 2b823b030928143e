// Package storage persists signed output artifacts. Two backends exist: a
// local directory served by the HTTP layer (the default) and an
// S3-compatible object store for deployments with shared storage.
package storage

import (
	"context"
	"errors"
)

// ErrPersistence wraps any failure to write or locate an artifact.
var ErrPersistence = errors.New("persistence failure")

// Store writes signed artifacts. Put returns the location (a URL) under
// which the artifact can be retrieved. Keys are unique per pass; artifacts
// are never overwritten.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
