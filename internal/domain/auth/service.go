package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	ports "citas-operario/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid or expired")
)

// TTL por defecto de los tokens emitidos en el login.
const defaultTokenTTL = 12 * time.Hour

type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		ttl:  defaultTokenTTL,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Nombre   string
	Email    string
	Usuario  string
	Password string
}

// Register da de alta un operario (seed/backoffice).
func (s *Service) Register(ctx context.Context, in RegisterInput) (Operario, error) {
	if strings.TrimSpace(in.Usuario) == "" || strings.TrimSpace(in.Password) == "" {
		return Operario{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Nombre) == "" {
		return Operario{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Operario{}, err
	}

	now := s.now()
	o := Operario{
		ID:           uuid.NewString(),
		Nombre:       strings.TrimSpace(in.Nombre),
		Email:        strings.TrimSpace(in.Email),
		Usuario:      strings.TrimSpace(in.Usuario),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateOperario(ctx, o); err != nil {
		return Operario{}, err
	}
	return o, nil
}

type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Operario    Operario
}

// Login valida usuario+password y emite un token opaco con expiración.
func (s *Service) Login(ctx context.Context, usuario, password string) (Session, error) {
	usuario = strings.TrimSpace(usuario)
	if usuario == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	o, err := s.repo.GetOperarioByUsuario(ctx, usuario)
	if err != nil {
		// mismo error que password incorrecto: no filtrar qué usuarios existen
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	now := s.now()
	t := Token{
		Value:      uuid.NewString(),
		OperarioID: o.ID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.repo.CreateToken(ctx, t); err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken: t.Value,
		ExpiresAt:   t.ExpiresAt,
		Operario:    o,
	}, nil
}

// Logout revoca el token presentado. Revocar un token desconocido no es error.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidInput
	}
	return s.repo.RevokeToken(ctx, token)
}

// Verifier expone el servicio como ports/auth.AuthVerifier para el middleware.
type Verifier struct {
	svc *Service
}

func NewVerifier(svc *Service) *Verifier {
	return &Verifier{svc: svc}
}

func (v *Verifier) Verify(ctx context.Context, token string) (ports.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ports.Claims{}, ErrTokenInvalid
	}

	t, err := v.svc.repo.GetToken(ctx, token)
	if err != nil {
		return ports.Claims{}, ErrTokenInvalid
	}
	if !t.ValidAt(v.svc.now()) {
		return ports.Claims{}, ErrTokenInvalid
	}

	o, err := v.svc.repo.GetOperarioByID(ctx, t.OperarioID)
	if err != nil {
		return ports.Claims{}, ErrTokenInvalid
	}

	return ports.Claims{
		OperarioID: o.ID,
		Nombre:     o.Nombre,
		Email:      o.Email,
	}, nil
}
