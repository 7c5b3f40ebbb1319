package operario

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
)

// Kind identifica cada artefacto enviable contra una cita.
type Kind string

const (
	KindPresupuesto Kind = "presupuesto"
	KindFoto        Kind = "foto"
	KindFirma       Kind = "firma"
	KindComentario  Kind = "comentario"
)

// SubmissionState es el estado del envío de un artefacto concreto.
type SubmissionState string

const (
	StateAbsent     SubmissionState = "absent"
	StateStaged     SubmissionState = "staged"
	StateSubmitting SubmissionState = "submitting"
	StateSubmitted  SubmissionState = "submitted"
	StateFailed     SubmissionState = "failed"
)

var (
	// ErrSubmissionInFlight indica que ese artefacto ya se está enviando.
	// La llamada no toca la red: el envío en curso sigue su curso.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrNothingStaged indica Submit sin payload preparado.
	ErrNothingStaged = errors.New("nothing staged")

	// ErrInformationRequired indica payload vacío para ese tipo de
	// artefacto. El payload se queda en staged; no hay request.
	ErrInformationRequired = errors.New("information required")
)

// StagedFile es un archivo preparado para envío. Se guarda en bytes para
// poder reintentar tras un fallo sin re-leer el origen.
type StagedFile struct {
	Nombre      string
	ContentType string
	Data        []byte
}

// Payload es el contenido preparado de un artefacto.
type Payload struct {
	Texto string
	Files []StagedFile
}

// Workflow lleva el ciclo de envío de artefactos por cita: preparar,
// enviar (con exclusión por artefacto), reintentar tras fallo. Tras cada
// envío correcto invalida la cita en la caché, de modo que el siguiente
// InfoCitaOperario refleje los flags nuevos.
type Workflow struct {
	client *Client
	cache  *Cache // puede ser nil

	mu    sync.Mutex
	slots map[slotKey]*slot
}

type slotKey struct {
	citaID string
	kind   Kind
}

type slot struct {
	state   SubmissionState
	payload Payload
}

func NewWorkflow(client *Client, cache *Cache) *Workflow {
	return &Workflow{
		client: client,
		cache:  cache,
		slots:  make(map[slotKey]*slot),
	}
}

// Stage prepara el payload de un artefacto. Sobre un envío en curso no se
// puede re-preparar; sobre submitted o failed sí (reemplaza).
func (w *Workflow) Stage(citaID string, kind Kind, p Payload) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	k := slotKey{citaID: citaID, kind: kind}
	if s, ok := w.slots[k]; ok && s.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	w.slots[k] = &slot{state: StateStaged, payload: p}
	return nil
}

// Discard descarta el payload preparado.
func (w *Workflow) Discard(citaID string, kind Kind) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	k := slotKey{citaID: citaID, kind: kind}
	if s, ok := w.slots[k]; ok && s.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	delete(w.slots, k)
	return nil
}

// Reset olvida todos los artefactos de una cita (p.ej. tras cerrarla).
// Los envíos en curso no se tocan.
func (w *Workflow) Reset(citaID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for k, s := range w.slots {
		if k.citaID == citaID && s.state != StateSubmitting {
			delete(w.slots, k)
		}
	}
}

// State devuelve el estado actual de un artefacto.
func (w *Workflow) State(citaID string, kind Kind) SubmissionState {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.slots[slotKey{citaID: citaID, kind: kind}]; ok {
		return s.state
	}
	return StateAbsent
}

// Submit envía el payload preparado. Exactamente un envío por artefacto a
// la vez: llamadas concurrentes devuelven ErrSubmissionInFlight sin tocar
// la red. Si el payload no pasa la validación del tipo tampoco hay request
// y el estado sigue en staged. Tras el fallo el payload se conserva para
// reintentar; tras el éxito se descarta y se invalida la cita en caché.
func (w *Workflow) Submit(ctx context.Context, citaID string, kind Kind) error {
	w.mu.Lock()

	k := slotKey{citaID: citaID, kind: kind}
	s, ok := w.slots[k]
	if !ok {
		w.mu.Unlock()
		return ErrNothingStaged
	}
	switch s.state {
	case StateSubmitting:
		w.mu.Unlock()
		return ErrSubmissionInFlight
	case StateStaged, StateFailed:
		// sigue
	default:
		w.mu.Unlock()
		return ErrNothingStaged
	}

	if err := validatePayload(kind, s.payload); err != nil {
		s.state = StateStaged
		w.mu.Unlock()
		return err
	}

	s.state = StateSubmitting
	p := s.payload
	w.mu.Unlock()

	// Red fuera del lock: otros artefactos siguen operables.
	err := w.send(ctx, citaID, kind, p)

	w.mu.Lock()
	if err != nil {
		s.state = StateFailed
		w.mu.Unlock()
		return err
	}
	s.state = StateSubmitted
	s.payload = Payload{}
	w.mu.Unlock()

	if w.cache != nil {
		w.cache.Invalidate(CitaTag(citaID))
	}
	return nil
}

func (w *Workflow) send(ctx context.Context, citaID string, kind Kind, p Payload) error {
	switch kind {
	case KindPresupuesto:
		return w.client.SubirPresupuesto(ctx, citaID, p.Texto, toUploads(p.Files))
	case KindFoto:
		return w.client.SubirFotos(ctx, citaID, toUploads(p.Files))
	case KindFirma:
		return w.client.SubirFirmas(ctx, citaID, toUploads(p.Files))
	case KindComentario:
		return w.client.SubirComentarios(ctx, citaID, p.Texto)
	default:
		return errors.New("unknown artifact kind")
	}
}

func validatePayload(kind Kind, p Payload) error {
	switch kind {
	case KindPresupuesto:
		if strings.TrimSpace(p.Texto) == "" && len(p.Files) == 0 {
			return ErrInformationRequired
		}
	case KindFoto, KindFirma:
		if len(p.Files) == 0 {
			return ErrInformationRequired
		}
	case KindComentario:
		if strings.TrimSpace(p.Texto) == "" {
			return ErrInformationRequired
		}
	}
	return nil
}

func toUploads(files []StagedFile) []FileUpload {
	out := make([]FileUpload, 0, len(files))
	for _, f := range files {
		out = append(out, FileUpload{
			Nombre:      f.Nombre,
			ContentType: f.ContentType,
			Data:        bytes.NewReader(f.Data),
		})
	}
	return out
}
