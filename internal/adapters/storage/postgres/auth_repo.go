package postgres

import (
	"context"
	"database/sql"
	"time"

	"citas-operario/internal/domain/auth"
)

type AuthRepo struct {
	db *sql.DB
}

func NewAuthRepo(db *sql.DB) *AuthRepo {
	return &AuthRepo{db: db}
}

func (r *AuthRepo) CreateOperario(ctx context.Context, o auth.Operario) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO operarios (
			id, nombre, email, usuario, password_hash, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		o.ID, o.Nombre, o.Email, o.Usuario, o.PasswordHash, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *AuthRepo) GetOperarioByUsuario(ctx context.Context, usuario string) (auth.Operario, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, nombre, email, usuario, password_hash, created_at, updated_at
		FROM operarios
		WHERE usuario = $1
	`, usuario)
	return scanOperario(row)
}

func (r *AuthRepo) GetOperarioByID(ctx context.Context, id string) (auth.Operario, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, nombre, email, usuario, password_hash, created_at, updated_at
		FROM operarios
		WHERE id = $1
	`, id)
	return scanOperario(row)
}

func scanOperario(row *sql.Row) (auth.Operario, error) {
	var o auth.Operario
	err := row.Scan(&o.ID, &o.Nombre, &o.Email, &o.Usuario, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return auth.Operario{}, ErrNotFound
		}
		return auth.Operario{}, err
	}
	return o, nil
}

func (r *AuthRepo) CreateToken(ctx context.Context, t auth.Token) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tokens (
			value, operario_id, issued_at, expires_at, revoked_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		t.Value, t.OperarioID, t.IssuedAt, t.ExpiresAt, toNullTime(t.RevokedAt),
	)
	return err
}

func (r *AuthRepo) GetToken(ctx context.Context, value string) (auth.Token, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT value, operario_id, issued_at, expires_at, revoked_at
		FROM tokens
		WHERE value = $1
	`, value)

	var t auth.Token
	var revoked sql.NullTime
	err := row.Scan(&t.Value, &t.OperarioID, &t.IssuedAt, &t.ExpiresAt, &revoked)
	if err != nil {
		if err == sql.ErrNoRows {
			return auth.Token{}, ErrNotFound
		}
		return auth.Token{}, err
	}
	if revoked.Valid {
		r := revoked.Time
		t.RevokedAt = &r
	}
	return t, nil
}

func (r *AuthRepo) RevokeToken(ctx context.Context, value string) error {
	// Revocar un token desconocido es un no-op: el logout siempre responde 204.
	_, err := r.db.ExecContext(ctx, `
		UPDATE tokens SET revoked_at = $2 WHERE value = $1 AND revoked_at IS NULL
	`, value, time.Now())
	return err
}
