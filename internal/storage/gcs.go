package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type gcsStore struct {
	log        *logger.Logger
	client     *gcstorage.Client
	bucketName string
}

// NewGCSStore stores blobs in a Google Cloud Storage bucket named by
// UPLOAD_GCS_BUCKET_NAME. Credentials come from the ambient environment
// (GOOGLE_APPLICATION_CREDENTIALS or workload identity).
func NewGCSStore(ctx context.Context, baseLog *logger.Logger) (BlobStore, error) {
	storeLog := baseLog.With("service", "GCSBlobStore")

	bucketName := os.Getenv("UPLOAD_GCS_BUCKET_NAME")
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var UPLOAD_GCS_BUCKET_NAME")
	}

	opts := []option.ClientOption{option.WithScopes(gcstorage.ScopeReadWrite)}
	client, err := gcstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &gcsStore{log: storeLog, client: client, bucketName: bucketName}, nil
}

func (gs *gcsStore) Save(ctx context.Context, originalFilename string, data []byte) (string, error) {
	key := generatedName(originalFilename)
	w := gs.client.Bucket(gs.bucketName).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %q: %w", key, err)
	}
	return key, nil
}

func (gs *gcsStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return gs.client.Bucket(gs.bucketName).Object(path).NewReader(ctx)
}

func (gs *gcsStore) Exists(ctx context.Context, path string) (bool, error) {
	_, err := gs.client.Bucket(gs.bucketName).Object(path).Attrs(ctx)
	if errors.Is(err, gcstorage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
