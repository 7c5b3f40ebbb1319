package artifacts

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo + blob store
// -------------------------

type testRepo struct {
	files    []File
	comments []Comment

	failCreateFile bool
}

func (r *testRepo) CreateFile(ctx context.Context, f File) error {
	if r.failCreateFile {
		return errors.New("repo: boom")
	}
	r.files = append(r.files, f)
	return nil
}

func (r *testRepo) ListFilesByCita(ctx context.Context, citaID string) ([]File, error) {
	out := make([]File, 0)
	for _, f := range r.files {
		if f.CitaID == citaID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *testRepo) CreateComment(ctx context.Context, c Comment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *testRepo) ListCommentsByCita(ctx context.Context, citaID string) ([]Comment, error) {
	out := make([]Comment, 0)
	for _, c := range r.comments {
		if c.CitaID == citaID {
			out = append(out, c)
		}
	}
	return out, nil
}

type testBlobs struct {
	saved   []string
	deleted []string
}

func (b *testBlobs) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, data); err != nil {
		return "", err
	}
	b.saved = append(b.saved, key)
	return "/uploads/" + key, nil
}

func (b *testBlobs) Delete(ctx context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	return nil
}

func newTestService() (*Service, *testRepo, *testBlobs) {
	repo := &testRepo{}
	blobs := &testBlobs{}
	svc := NewService(repo, blobs)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo, blobs
}

func upload(nombre, contentType, content string) Upload {
	return Upload{
		Nombre:      nombre,
		ContentType: contentType,
		Size:        int64(len(content)),
		Data:        strings.NewReader(content),
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_SubmitPresupuesto_TextoOArchivos(t *testing.T) {
	svc, repo, _ := newTestService()

	if _, err := svc.SubmitPresupuesto(context.Background(), "cita-1", "op-1", "   ", nil); !errors.Is(err, ErrInformationRequired) {
		t.Fatalf("expected ErrInformationRequired for empty presupuesto, got %v", err)
	}

	// solo texto
	if _, err := svc.SubmitPresupuesto(context.Background(), "cita-1", "op-1", "cambio de bajante", nil); err != nil {
		t.Fatalf("texto-only presupuesto: %v", err)
	}
	if len(repo.comments) != 1 || repo.comments[0].Kind != KindPresupuesto {
		t.Fatalf("expected one presupuesto comment, got %+v", repo.comments)
	}

	// solo archivos
	files, err := svc.SubmitPresupuesto(context.Background(), "cita-1", "op-1", "", []Upload{
		upload("presupuesto.pdf", "application/pdf", "%PDF"),
	})
	if err != nil {
		t.Fatalf("files-only presupuesto: %v", err)
	}
	if len(files) != 1 || files[0].Kind != KindPresupuesto {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestService_SubmitFotos_RequiereArchivos(t *testing.T) {
	svc, _, blobs := newTestService()

	if _, err := svc.SubmitFotos(context.Background(), "cita-1", "op-1", nil); !errors.Is(err, ErrInformationRequired) {
		t.Fatalf("expected ErrInformationRequired, got %v", err)
	}

	files, err := svc.SubmitFotos(context.Background(), "cita-1", "op-1", []Upload{
		upload("antes.jpg", "image/jpeg", "jpegdata"),
		upload("despues.jpg", "image/jpeg", "jpegdata"),
	})
	if err != nil {
		t.Fatalf("submit fotos: %v", err)
	}
	if len(files) != 2 || len(blobs.saved) != 2 {
		t.Fatalf("expected 2 stored fotos, got files=%d blobs=%d", len(files), len(blobs.saved))
	}
	if files[0].UploadedBy != "op-1" {
		t.Fatalf("expected uploader op-1, got %q", files[0].UploadedBy)
	}
}

func TestService_SubmitComentario_TrimsAndRejectsEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.SubmitComentario(context.Background(), "cita-1", "op-1", "  \n "); !errors.Is(err, ErrInformationRequired) {
		t.Fatalf("expected ErrInformationRequired, got %v", err)
	}

	c, err := svc.SubmitComentario(context.Background(), "cita-1", "op-1", "  cliente ausente  ")
	if err != nil {
		t.Fatalf("submit comentario: %v", err)
	}
	if c.Texto != "cliente ausente" {
		t.Fatalf("expected trimmed texto, got %q", c.Texto)
	}
	if c.Kind != KindComentario {
		t.Fatalf("expected kind comentario, got %q", c.Kind)
	}
}

func TestService_StoreFiles_SinExtensionUsaContentType(t *testing.T) {
	svc, _, _ := newTestService()

	files, err := svc.SubmitFirmas(context.Background(), "cita-1", "op-1", []Upload{
		upload("firma", "image/png", "pngdata"),
		upload("captura", "application/x-raro", "???"),
	})
	if err != nil {
		t.Fatalf("submit firmas: %v", err)
	}
	if files[0].Nombre != "firma.png" {
		t.Fatalf("expected firma.png, got %q", files[0].Nombre)
	}
	// content-type desconocido cae a .bin
	if files[1].Nombre != "captura.bin" {
		t.Fatalf("expected captura.bin, got %q", files[1].Nombre)
	}
}

func TestService_StoreFiles_BorraBlobSiFallaElRepo(t *testing.T) {
	svc, repo, blobs := newTestService()
	repo.failCreateFile = true

	_, err := svc.SubmitFotos(context.Background(), "cita-1", "op-1", []Upload{
		upload("foto.jpg", "image/jpeg", "jpegdata"),
	})
	if err == nil {
		t.Fatal("expected error from repo")
	}
	if len(blobs.deleted) != 1 {
		t.Fatalf("expected orphan blob deleted, got %d", len(blobs.deleted))
	}
}

func TestService_ResumenCita_FlagsYListados(t *testing.T) {
	svc, repo, _ := newTestService()

	// documento de backoffice, visible pero sin flag propio
	repo.files = append(repo.files, File{ID: "d1", CitaID: "cita-1", Kind: KindDocumento, Nombre: "orden.pdf"})

	if _, err := svc.SubmitFotos(context.Background(), "cita-1", "op-1", []Upload{
		upload("foto.jpg", "image/jpeg", "jpegdata"),
	}); err != nil {
		t.Fatalf("submit fotos: %v", err)
	}
	// presupuesto solo texto: el flag sale del comentario
	if _, err := svc.SubmitPresupuesto(context.Background(), "cita-1", "op-1", "mano de obra 2h", nil); err != nil {
		t.Fatalf("submit presupuesto: %v", err)
	}

	sum, err := svc.ResumenCita(context.Background(), "cita-1")
	if err != nil {
		t.Fatalf("resumen: %v", err)
	}

	if !sum.TieneFotos || !sum.TienePresupuesto {
		t.Fatalf("expected fotos+presupuesto flags, got %+v", sum)
	}
	if sum.TieneFirmas || sum.TieneComentarios {
		t.Fatalf("unexpected flags set: %+v", sum)
	}
	if len(sum.ArchivosVisibles) != 1 || len(sum.ArchivosFotos) != 1 {
		t.Fatalf("unexpected listados: visibles=%d fotos=%d", len(sum.ArchivosVisibles), len(sum.ArchivosFotos))
	}
	if len(sum.ArchivosPresupuestos) != 0 {
		t.Fatalf("texto-only presupuesto must not add files, got %d", len(sum.ArchivosPresupuestos))
	}

	// otra cita: resumen vacío pero con slices inicializados
	empty, err := svc.ResumenCita(context.Background(), "cita-2")
	if err != nil {
		t.Fatalf("resumen vacío: %v", err)
	}
	if empty.ArchivosVisibles == nil || empty.ArchivosFirmas == nil {
		t.Fatal("expected initialized slices for empty resumen")
	}
}
