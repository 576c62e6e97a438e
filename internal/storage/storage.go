package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobStore persists uploaded bytes under generated collision-free names.
type BlobStore interface {
	// Save writes data under a fresh name that preserves the original
	// extension and returns the stored path.
	Save(ctx context.Context, originalFilename string, data []byte) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}

func generatedName(originalFilename string) string {
	return uuid.New().String() + filepath.Ext(originalFilename)
}
