package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"citas-operario/internal/domain/appointments"
)

var (
	ErrNotFound = errors.New("not found")
)

type appointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentsRepo() appointments.Repository {
	return &appointmentsRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.CitaID) == "" {
		return errors.New("cita id required")
	}
	if _, exists := r.byID[a.CitaID]; exists {
		return errors.New("cita already exists")
	}
	r.byID[a.CitaID] = a
	return nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.CitaID) == "" {
		return errors.New("cita id required")
	}
	if _, exists := r.byID[a.CitaID]; !exists {
		return ErrNotFound
	}
	r.byID[a.CitaID] = a
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, citaID string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[citaID]
	if !ok {
		return appointments.Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) ListByOperario(ctx context.Context, operarioID string, f appointments.ListFilter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.OperarioID != operarioID {
			continue
		}
		if f.Estado != "" && a.Estado != f.Estado {
			continue
		}
		if f.EndFrom != nil && dateOnly(a.FechaCitaFin).Before(dateOnly(*f.EndFrom)) {
			continue
		}
		if f.EndBefore != nil && !dateOnly(a.FechaCitaFin).Before(dateOnly(*f.EndBefore)) {
			continue
		}
		if f.StartTo != nil && dateOnly(effectiveStart(a)).After(dateOnly(*f.StartTo)) {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		if f.NewestFirst {
			return out[i].FechaCitaFin.After(out[j].FechaCitaFin)
		}
		return out[i].FechaCitaFin.Before(out[j].FechaCitaFin)
	})

	// Paginación tras ordenar
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []appointments.Appointment{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}

	return out, nil
}

func effectiveStart(a appointments.Appointment) time.Time {
	if a.FechaCita != nil {
		return *a.FechaCita
	}
	return a.FechaCitaFin
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
