package services

import (
	"context"
	"io"
)

// ContentStore holds file bodies addressed by storage key.
type ContentStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error

	// URL returns the location a client is redirected to for the content.
	URL(key string) string
}

// ContentDetector derives a file's media type and size from its content.
type ContentDetector interface {
	Detect(filename string, content []byte) (mimeType string, size int64)
}
