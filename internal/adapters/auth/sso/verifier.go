package sso

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ports "citas-operario/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa ports/auth.AuthVerifier contra el SSO corporativo.
// Se instancia desde main/router cuando SSO_BASE_URL está configurada.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (ports.Claims, error) {
	if v == nil || v.client == nil {
		return ports.Claims{}, ErrSSONotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ports.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("sso verify failed: %w", err)
	}

	claims.OperarioID = strings.TrimSpace(claims.OperarioID)
	if claims.OperarioID == "" {
		return ports.Claims{}, errors.New("sso claims missing operario id")
	}

	return claims, nil
}
