package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"citas-operario/internal/domain/artifacts"
)

// blobStore guarda los bytes en memoria; para dev/tests.
type blobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewBlobStore() artifacts.BlobStore {
	return &blobStore{blobs: make(map[string][]byte)}
}

func (s *blobStore) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = buf.Bytes()

	return "/uploads/" + key, nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
