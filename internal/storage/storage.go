// Package storage provides artifact persistence for the deal pipeline.
// Artifacts live under fixed well-known keys in an object store and are
// fully overwritten on every run.
package storage

import (
	"context"
	"errors"
)

// Common errors returned by storage implementations.
var (
	// ErrNotFound is returned when the requested key does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrNotConnected is returned when the store has no usable client.
	ErrNotConnected = errors.New("storage client not connected")
)

// Interface defines the narrow blob-store dependency used by the pipeline.
type Interface interface {
	// Get reads the object stored under key. Returns ErrNotFound when the
	// key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
