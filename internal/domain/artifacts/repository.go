package artifacts

import (
	"context"
	"io"
)

type Repository interface {
	CreateFile(ctx context.Context, f File) error
	ListFilesByCita(ctx context.Context, citaID string) ([]File, error)

	CreateComment(ctx context.Context, c Comment) error
	ListCommentsByCita(ctx context.Context, citaID string) ([]Comment, error)
}

// BlobStore guarda los bytes de los archivos. El repositorio solo guarda
// metadatos; las implementaciones (disco local hoy, S3/R2 mañana) viven en
// adapters/storage/files.
type BlobStore interface {
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}
