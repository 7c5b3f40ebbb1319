package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"citas-operario/internal/domain/artifacts"
)

type artifactsRepo struct {
	mu       sync.RWMutex
	files    map[string]artifacts.File
	comments map[string]artifacts.Comment
}

func NewArtifactsRepo() artifacts.Repository {
	return &artifactsRepo{
		files:    make(map[string]artifacts.File),
		comments: make(map[string]artifacts.Comment),
	}
}

func (r *artifactsRepo) CreateFile(ctx context.Context, f artifacts.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.ID) == "" {
		return errors.New("file id required")
	}
	if _, exists := r.files[f.ID]; exists {
		return errors.New("file already exists")
	}
	r.files[f.ID] = f
	return nil
}

func (r *artifactsRepo) ListFilesByCita(ctx context.Context, citaID string) ([]artifacts.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]artifacts.File, 0)
	for _, f := range r.files {
		if f.CitaID == citaID {
			out = append(out, f)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out, nil
}

func (r *artifactsRepo) CreateComment(ctx context.Context, c artifacts.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("comment id required")
	}
	if _, exists := r.comments[c.ID]; exists {
		return errors.New("comment already exists")
	}
	r.comments[c.ID] = c
	return nil
}

func (r *artifactsRepo) ListCommentsByCita(ctx context.Context, citaID string) ([]artifacts.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]artifacts.Comment, 0)
	for _, c := range r.comments {
		if c.CitaID == citaID {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
