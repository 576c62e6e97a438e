package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type localStore struct {
	baseDir string
	log     *logger.Logger
}

// NewLocalStore stores blobs on the local filesystem under baseDir.
func NewLocalStore(baseDir string, baseLog *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	storeLog := baseLog.With("service", "LocalBlobStore")
	return &localStore{baseDir: baseDir, log: storeLog}, nil
}

func (ls *localStore) Save(_ context.Context, originalFilename string, data []byte) (string, error) {
	path := filepath.Join(ls.baseDir, generatedName(originalFilename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (ls *localStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (ls *localStore) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
