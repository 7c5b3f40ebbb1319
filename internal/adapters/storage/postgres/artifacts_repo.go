package postgres

import (
	"context"
	"database/sql"

	"citas-operario/internal/domain/artifacts"
)

type ArtifactsRepo struct {
	db *sql.DB
}

func NewArtifactsRepo(db *sql.DB) *ArtifactsRepo {
	return &ArtifactsRepo{db: db}
}

func (r *ArtifactsRepo) CreateFile(ctx context.Context, f artifacts.File) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cita_archivos (
			id, cita_id, kind,
			nombre, content_type, size, url,
			uploaded_by, uploaded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		f.ID,
		f.CitaID,
		f.Kind,
		f.Nombre,
		f.ContentType,
		f.Size,
		f.URL,
		f.UploadedBy,
		f.UploadedAt,
	)
	return err
}

func (r *ArtifactsRepo) ListFilesByCita(ctx context.Context, citaID string) ([]artifacts.File, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cita_id, kind, nombre, content_type, size, url, uploaded_by, uploaded_at
		FROM cita_archivos
		WHERE cita_id = $1
		ORDER BY uploaded_at ASC
	`, citaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]artifacts.File, 0)
	for rows.Next() {
		var f artifacts.File
		if err := rows.Scan(
			&f.ID, &f.CitaID, &f.Kind,
			&f.Nombre, &f.ContentType, &f.Size, &f.URL,
			&f.UploadedBy, &f.UploadedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *ArtifactsRepo) CreateComment(ctx context.Context, c artifacts.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cita_comentarios (
			id, cita_id, kind, texto, operario_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		c.ID, c.CitaID, c.Kind, c.Texto, c.OperarioID, c.CreatedAt,
	)
	return err
}

func (r *ArtifactsRepo) ListCommentsByCita(ctx context.Context, citaID string) ([]artifacts.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cita_id, kind, texto, operario_id, created_at
		FROM cita_comentarios
		WHERE cita_id = $1
		ORDER BY created_at ASC
	`, citaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]artifacts.Comment, 0)
	for rows.Next() {
		var c artifacts.Comment
		if err := rows.Scan(&c.ID, &c.CitaID, &c.Kind, &c.Texto, &c.OperarioID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
