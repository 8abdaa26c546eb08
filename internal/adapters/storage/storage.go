// Package storage defines the key-value persistence port the stores
// write through, plus file-backed and in-memory implementations.
package storage

import (
	"context"
	"errors"
)

// Sentinel errors for storage operations.
var (
	ErrKeyNotFound = errors.New("storage key not found")
	ErrInvalidKey  = errors.New("invalid storage key")
)

// Store is the persistence port: a flat string-keyed blob store, the Go
// counterpart of the browser's localStorage facility.
type Store interface {
	// Load returns the blob saved under key, or ErrKeyNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save writes the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
