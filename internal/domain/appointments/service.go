package appointments

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("cita not found")
	ErrAlreadyClosed = errors.New("cita already closed")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	ExpedienteID string
	OperarioID   string

	FechaCita    *time.Time
	FechaCitaFin time.Time

	DomicilioCliente string
	LocalidadCliente string
	TipoCita         string
	Info             string

	Contactos []Contact
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(in.ExpedienteID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.OperarioID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.FechaCitaFin.IsZero() {
		return Appointment{}, ErrInvalidInput
	}
	if in.FechaCita != nil && in.FechaCita.After(in.FechaCitaFin) {
		return Appointment{}, ErrInvalidInput
	}

	now := s.now()

	contactos := make([]Contact, 0, len(in.Contactos))
	for _, c := range in.Contactos {
		if strings.TrimSpace(c.Nombre) == "" {
			return Appointment{}, ErrInvalidInput
		}
		if strings.TrimSpace(c.ContactoID) == "" {
			c.ContactoID = uuid.NewString()
		}
		contactos = append(contactos, c)
	}

	a := Appointment{
		CitaID:           uuid.NewString(),
		ExpedienteID:     strings.TrimSpace(in.ExpedienteID),
		OperarioID:       strings.TrimSpace(in.OperarioID),
		FechaCita:        in.FechaCita,
		FechaCitaFin:     in.FechaCitaFin,
		DomicilioCliente: strings.TrimSpace(in.DomicilioCliente),
		LocalidadCliente: strings.TrimSpace(in.LocalidadCliente),
		TipoCita:         strings.TrimSpace(in.TipoCita),
		Info:             strings.TrimSpace(in.Info),
		Contactos:        contactos,
		Estado:           EstadoAbierta,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// GetForOperario aplica el scoping de seguridad: una cita de otro operario se
// reporta como inexistente para no filtrar su existencia.
func (s *Service) GetForOperario(ctx context.Context, citaID, operarioID string) (Appointment, error) {
	citaID = strings.TrimSpace(citaID)
	if citaID == "" {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, citaID)
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	if a.OperarioID != operarioID {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

// Upcoming lista citas abiertas cuya fecha fin no pasó todavía, la más
// próxima primero.
func (s *Service) Upcoming(ctx context.Context, operarioID string) ([]Appointment, error) {
	today := dateOnly(s.now())
	return s.repo.ListByOperario(ctx, operarioID, ListFilter{
		Estado:  EstadoAbierta,
		EndFrom: &today,
	})
}

// PendingClose lista citas abiertas con la fecha fin ya pasada.
func (s *Service) PendingClose(ctx context.Context, operarioID string) ([]Appointment, error) {
	today := dateOnly(s.now())
	return s.repo.ListByOperario(ctx, operarioID, ListFilter{
		Estado:    EstadoAbierta,
		EndBefore: &today,
	})
}

// History lista citas cerradas, la más reciente primero, paginado.
func (s *Service) History(ctx context.Context, operarioID string, offset, limit int) ([]Appointment, error) {
	if offset < 0 || limit < 0 {
		return nil, ErrInvalidInput
	}
	if limit == 0 {
		limit = 20
	}
	return s.repo.ListByOperario(ctx, operarioID, ListFilter{
		Estado:      EstadoCerrada,
		Offset:      offset,
		Limit:       limit,
		NewestFirst: true,
	})
}

// DaysWithCitas devuelve los días (YYYY-MM-DD) dentro del rango que tienen
// alguna cita del operario, para pintar el calendario.
func (s *Service) DaysWithCitas(ctx context.Context, operarioID string, desde, hasta time.Time) ([]string, error) {
	if hasta.Before(desde) {
		return nil, ErrInvalidInput
	}

	desde = dateOnly(desde)
	hasta = dateOnly(hasta)

	items, err := s.repo.ListByOperario(ctx, operarioID, ListFilter{
		EndFrom: &desde,
		StartTo: &hasta,
	})
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, a := range items {
		start := dateOnly(effectiveStart(a))
		end := dateOnly(a.FechaCitaFin)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if d.Before(desde) || d.After(hasta) {
				continue
			}
			key := d.Format("2006-01-02")
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}

	sort.Strings(out)
	return out, nil
}

// ByDay lista las citas cuya ventana cubre el día dado.
func (s *Service) ByDay(ctx context.Context, operarioID string, dia time.Time) ([]Appointment, error) {
	dia = dateOnly(dia)

	items, err := s.repo.ListByOperario(ctx, operarioID, ListFilter{
		EndFrom: &dia,
		StartTo: &dia,
	})
	if err != nil {
		return nil, err
	}

	out := make([]Appointment, 0, len(items))
	for _, a := range items {
		start := dateOnly(effectiveStart(a))
		end := dateOnly(a.FechaCitaFin)
		if !dia.Before(start) && !dia.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Close cierra la cita. Cerrar dos veces es un error explícito, no un no-op.
func (s *Service) Close(ctx context.Context, citaID, operarioID string) (Appointment, error) {
	a, err := s.GetForOperario(ctx, citaID, operarioID)
	if err != nil {
		return Appointment{}, err
	}
	if a.Estado == EstadoCerrada {
		return Appointment{}, ErrAlreadyClosed
	}

	now := s.now()
	a.Estado = EstadoCerrada
	a.ClosedAt = &now
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func effectiveStart(a Appointment) time.Time {
	if a.FechaCita != nil {
		return *a.FechaCita
	}
	return a.FechaCitaFin
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
