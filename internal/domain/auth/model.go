package auth

import "time"

// Operario es una cuenta de operario de campo.
type Operario struct {
	ID     string
	Nombre string
	Email  string

	Usuario      string
	PasswordHash string // bcrypt

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Token es una credencial opaca emitida en el login. El cliente la manda como
// Bearer en cada request; el verifier la resuelve a claims.
type Token struct {
	Value      string
	OperarioID string

	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

func (t Token) ValidAt(now time.Time) bool {
	if t.RevokedAt != nil {
		return false
	}
	return now.Before(t.ExpiresAt)
}
