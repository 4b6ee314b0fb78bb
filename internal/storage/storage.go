package storage

import (
	"context"
	"io"
)

// Storage defines the interface for the receipt spool.
// Keys are slash-separated relative paths (e.g., "receipts/42.txt").
type Storage interface {
	// Put stores content under key, replacing any previous content.
	// Readers never observe a partially written file.
	Put(ctx context.Context, key string, content io.Reader) error

	// Get retrieves a file by its key.
	// Returns an io.ReadCloser that must be closed by the caller.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by its key.
	// Returns nil if the file doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}
