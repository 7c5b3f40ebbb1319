package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"citas-operario/internal/domain/auth"
)

type authRepo struct {
	mu        sync.RWMutex
	byID      map[string]auth.Operario
	byUsuario map[string]string // usuario -> id
	tokens    map[string]auth.Token
}

func NewAuthRepo() auth.Repository {
	return &authRepo{
		byID:      make(map[string]auth.Operario),
		byUsuario: make(map[string]string),
		tokens:    make(map[string]auth.Token),
	}
}

func (r *authRepo) CreateOperario(ctx context.Context, o auth.Operario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" || strings.TrimSpace(o.Usuario) == "" {
		return errors.New("operario id y usuario required")
	}
	if _, exists := r.byUsuario[o.Usuario]; exists {
		return errors.New("usuario already exists")
	}
	r.byID[o.ID] = o
	r.byUsuario[o.Usuario] = o.ID
	return nil
}

func (r *authRepo) GetOperarioByUsuario(ctx context.Context, usuario string) (auth.Operario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsuario[usuario]
	if !ok {
		return auth.Operario{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *authRepo) GetOperarioByID(ctx context.Context, id string) (auth.Operario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return auth.Operario{}, ErrNotFound
	}
	return o, nil
}

func (r *authRepo) CreateToken(ctx context.Context, t auth.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.Value) == "" {
		return errors.New("token value required")
	}
	r.tokens[t.Value] = t
	return nil
}

func (r *authRepo) GetToken(ctx context.Context, value string) (auth.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[value]
	if !ok {
		return auth.Token{}, ErrNotFound
	}
	return t, nil
}

func (r *authRepo) RevokeToken(ctx context.Context, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[value]
	if !ok {
		return nil // revocar un token desconocido no es error
	}
	now := time.Now()
	t.RevokedAt = &now
	r.tokens[value] = t
	return nil
}
