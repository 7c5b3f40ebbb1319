package artifacts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"citas-operario/internal/domain/appointments"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrInformationRequired: la validación local por tipo no pasó; no se
	// toca red ni almacenamiento.
	ErrInformationRequired = errors.New("information required")
)

type Service struct {
	repo  Repository
	blobs BlobStore
	now   func() time.Time
}

func NewService(repo Repository, blobs BlobStore) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		now:   time.Now,
	}
}

// SubmitPresupuesto acepta texto libre, archivos, o ambos; vacío del todo se
// rechaza localmente.
func (s *Service) SubmitPresupuesto(ctx context.Context, citaID, operarioID, texto string, uploads []Upload) ([]File, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" && len(uploads) == 0 {
		return nil, ErrInformationRequired
	}

	files, err := s.storeFiles(ctx, citaID, operarioID, KindPresupuesto, uploads)
	if err != nil {
		return nil, err
	}

	if texto != "" {
		c := Comment{
			ID:         uuid.NewString(),
			CitaID:     citaID,
			Kind:       KindPresupuesto,
			Texto:      texto,
			OperarioID: operarioID,
			CreatedAt:  s.now(),
		}
		if err := s.repo.CreateComment(ctx, c); err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (s *Service) SubmitFotos(ctx context.Context, citaID, operarioID string, uploads []Upload) ([]File, error) {
	if len(uploads) == 0 {
		return nil, ErrInformationRequired
	}
	return s.storeFiles(ctx, citaID, operarioID, KindFoto, uploads)
}

func (s *Service) SubmitFirmas(ctx context.Context, citaID, operarioID string, uploads []Upload) ([]File, error) {
	if len(uploads) == 0 {
		return nil, ErrInformationRequired
	}
	return s.storeFiles(ctx, citaID, operarioID, KindFirma, uploads)
}

func (s *Service) SubmitComentario(ctx context.Context, citaID, operarioID, texto string) (Comment, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return Comment{}, ErrInformationRequired
	}

	c := Comment{
		ID:         uuid.NewString(),
		CitaID:     citaID,
		Kind:       KindComentario,
		Texto:      texto,
		OperarioID: operarioID,
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

// ResumenCita implementa appointments.ArtifactSource: flags y listados de
// archivos por categoría para el detalle de la cita.
func (s *Service) ResumenCita(ctx context.Context, citaID string) (appointments.ArtifactSummary, error) {
	files, err := s.repo.ListFilesByCita(ctx, citaID)
	if err != nil {
		return appointments.ArtifactSummary{}, err
	}
	comments, err := s.repo.ListCommentsByCita(ctx, citaID)
	if err != nil {
		return appointments.ArtifactSummary{}, err
	}

	out := appointments.ArtifactSummary{
		ArchivosVisibles:     make([]appointments.FileRef, 0),
		ArchivosPresupuestos: make([]appointments.FileRef, 0),
		ArchivosFotos:        make([]appointments.FileRef, 0),
		ArchivosFirmas:       make([]appointments.FileRef, 0),
	}

	for _, f := range files {
		ref := appointments.FileRef{
			ID:          f.ID,
			Nombre:      f.Nombre,
			URL:         f.URL,
			ContentType: f.ContentType,
			Size:        f.Size,
		}
		switch f.Kind {
		case KindDocumento:
			out.ArchivosVisibles = append(out.ArchivosVisibles, ref)
		case KindPresupuesto:
			out.ArchivosPresupuestos = append(out.ArchivosPresupuestos, ref)
			out.TienePresupuesto = true
		case KindFoto:
			out.ArchivosFotos = append(out.ArchivosFotos, ref)
			out.TieneFotos = true
		case KindFirma:
			out.ArchivosFirmas = append(out.ArchivosFirmas, ref)
			out.TieneFirmas = true
		}
	}

	for _, c := range comments {
		switch c.Kind {
		case KindComentario:
			out.TieneComentarios = true
		case KindPresupuesto:
			out.TienePresupuesto = true
		}
	}

	return out, nil
}

func (s *Service) storeFiles(ctx context.Context, citaID, operarioID string, kind Kind, uploads []Upload) ([]File, error) {
	if strings.TrimSpace(citaID) == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	out := make([]File, 0, len(uploads))

	for _, u := range uploads {
		if u.Data == nil {
			return nil, ErrInvalidInput
		}

		id := uuid.NewString()
		nombre := safeName(u.Nombre)
		if !strings.Contains(nombre, ".") {
			nombre = nombre + "." + ExtensionFor(u.Nombre, u.ContentType)
		}

		key := fmt.Sprintf("citas/%s/%s/%s_%s", citaID, kind, id, nombre)
		url, err := s.blobs.Save(ctx, key, u.Data, u.ContentType)
		if err != nil {
			return nil, fmt.Errorf("artifacts: save blob: %w", err)
		}

		f := File{
			ID:          id,
			CitaID:      citaID,
			Kind:        kind,
			Nombre:      nombre,
			ContentType: u.ContentType,
			Size:        u.Size,
			URL:         url,
			UploadedBy:  operarioID,
			UploadedAt:  now,
		}
		if err := s.repo.CreateFile(ctx, f); err != nil {
			// best effort: no dejar el blob huérfano
			_ = s.blobs.Delete(ctx, key)
			return nil, err
		}
		out = append(out, f)
	}

	return out, nil
}

// safeName deja el nombre apto para rutas de almacenamiento.
func safeName(nombre string) string {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return "archivo"
	}
	var b strings.Builder
	for _, r := range nombre {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
