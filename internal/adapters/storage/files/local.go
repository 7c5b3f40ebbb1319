package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"citas-operario/internal/domain/artifacts"
)

// LocalStore implementa artifacts.BlobStore sobre el filesystem local.
// Intercambiable por S3/R2 sin tocar el dominio.
type LocalStore struct {
	baseDir   string // raíz en disco (ej: "./uploads")
	urlPrefix string // prefijo con el que se sirve por HTTP (ej: "/uploads")
}

func NewLocalStore(baseDir, urlPrefix string) artifacts.BlobStore {
	return &LocalStore{baseDir: baseDir, urlPrefix: urlPrefix}
}

func (s *LocalStore) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	dest := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("files: mkdir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("files: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("files: write: %w", err)
	}

	return s.urlPrefix + "/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	dest := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("files: remove: %w", err)
	}
	return nil
}
