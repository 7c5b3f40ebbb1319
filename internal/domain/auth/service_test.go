package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID      map[string]Operario
	byUsuario map[string]Operario
	tokens    map[string]Token
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:      map[string]Operario{},
		byUsuario: map[string]Operario{},
		tokens:    map[string]Token{},
	}
}

func (r *testRepo) CreateOperario(ctx context.Context, o Operario) error {
	if _, ok := r.byUsuario[o.Usuario]; ok {
		return errors.New("repo: usuario taken")
	}
	r.byID[o.ID] = o
	r.byUsuario[o.Usuario] = o
	return nil
}

func (r *testRepo) GetOperarioByUsuario(ctx context.Context, usuario string) (Operario, error) {
	o, ok := r.byUsuario[usuario]
	if !ok {
		return Operario{}, errRepoNotFound
	}
	return o, nil
}

func (r *testRepo) GetOperarioByID(ctx context.Context, id string) (Operario, error) {
	o, ok := r.byID[id]
	if !ok {
		return Operario{}, errRepoNotFound
	}
	return o, nil
}

func (r *testRepo) CreateToken(ctx context.Context, t Token) error {
	r.tokens[t.Value] = t
	return nil
}

func (r *testRepo) GetToken(ctx context.Context, value string) (Token, error) {
	t, ok := r.tokens[value]
	if !ok {
		return Token{}, errRepoNotFound
	}
	return t, nil
}

func (r *testRepo) RevokeToken(ctx context.Context, value string) error {
	t, ok := r.tokens[value]
	if !ok {
		return nil
	}
	now := time.Now()
	t.RevokedAt = &now
	r.tokens[value] = t
	return nil
}

// -------------------------
// Tests
// -------------------------

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
}

func seedOperario(t *testing.T, svc *Service) Operario {
	t.Helper()
	o, err := svc.Register(context.Background(), RegisterInput{
		Nombre:   "Ana",
		Email:    "ana@example.com",
		Usuario:  "ana",
		Password: "secreto123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return o
}

func TestService_Login_EmitsToken(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = fixedNow
	o := seedOperario(t, svc)

	sess, err := svc.Login(context.Background(), "ana", "secreto123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if sess.Operario.ID != o.ID {
		t.Fatalf("expected operario %s, got %s", o.ID, sess.Operario.ID)
	}
	if got, want := sess.ExpiresAt, fixedNow().Add(defaultTokenTTL); !got.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, got)
	}
}

func TestService_Login_SameErrorForUnknownUserAndBadPassword(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = fixedNow
	seedOperario(t, svc)

	if _, err := svc.Login(context.Background(), "nadie", "secreto123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ana", "mal"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifier_ResolvesClaims(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = fixedNow
	o := seedOperario(t, svc)

	sess, err := svc.Login(context.Background(), "ana", "secreto123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	v := NewVerifier(svc)
	claims, err := v.Verify(context.Background(), sess.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.OperarioID != o.ID || claims.Nombre != "Ana" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifier_RejectsExpiredAndRevoked(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = fixedNow
	seedOperario(t, svc)

	sess, err := svc.Login(context.Background(), "ana", "secreto123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	v := NewVerifier(svc)

	// expirado
	svc.now = func() time.Time { return fixedNow().Add(defaultTokenTTL + time.Minute) }
	if _, err := v.Verify(context.Background(), sess.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}

	// revocado
	svc.now = fixedNow
	if err := svc.Logout(context.Background(), sess.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := v.Verify(context.Background(), sess.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for revoked token, got %v", err)
	}

	// desconocido
	if _, err := v.Verify(context.Background(), "no-such-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for unknown token, got %v", err)
	}
}

func TestService_Logout_UnknownTokenIsNoop(t *testing.T) {
	svc := NewService(newTestRepo())
	if err := svc.Logout(context.Background(), "whatever"); err != nil {
		t.Fatalf("expected nil for unknown token, got %v", err)
	}
	if err := svc.Logout(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty token, got %v", err)
	}
}
