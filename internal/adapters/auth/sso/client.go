package sso

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"citas-operario/internal/platform/httpclient"
	ports "citas-operario/internal/ports/auth"
)

var (
	ErrSSONotConfigured = errors.New("sso client not configured")
	ErrSSOUnauthorized  = errors.New("sso unauthorized")
	ErrSSOUpstream      = errors.New("sso upstream error")
)

// Config del cliente SSO corporativo.
// BaseURL y APIKey normalmente vendrán de env vars en el servicio que lo instancie.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: nombre del header donde se manda la API key.
	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// VerifyToken llama al SSO para verificar un token y traer los claims del
// operario.
func (c *Client) VerifyToken(ctx context.Context, token string) (ports.Claims, error) {
	if !c.IsConfigured() {
		return ports.Claims{}, ErrSSONotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ports.Claims{}, ErrSSOUnauthorized
	}

	var out struct {
		OperarioID string `json:"operario_id"`
		Nombre     string `json:"nombre"`
		Email      string `json:"email"`
	}

	headers := map[string]string{
		c.apiKeyHeader: c.apiKey,
		// Algunos IAM esperan el token también en Authorization.
		"Authorization": "Bearer " + token,
	}

	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/tokens/verify", headers,
		map[string]string{"token": token}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return ports.Claims{}, ErrSSOUnauthorized
			default:
				return ports.Claims{}, fmt.Errorf("%w: status=%d", ErrSSOUpstream, httpErr.StatusCode)
			}
		}
		return ports.Claims{}, fmt.Errorf("%w: %v", ErrSSOUpstream, err)
	}

	out.OperarioID = strings.TrimSpace(out.OperarioID)
	if out.OperarioID == "" {
		return ports.Claims{}, errors.New("sso response missing operario_id")
	}

	return ports.Claims{
		OperarioID: out.OperarioID,
		Nombre:     strings.TrimSpace(out.Nombre),
		Email:      strings.TrimSpace(out.Email),
	}, nil
}
