package status

import (
	"errors"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date")
)

// Schedule representa la ventana temporal de una cita.
// Hay dos variantes: con fecha de inicio (Scheduled) o solo fecha fin (Deadline).
// Se modela como variante cerrada para que los dos casos sean explícitos,
// en vez de un campo nullable suelto.
type Schedule struct {
	start *time.Time
	end   time.Time
}

// NewScheduled crea una ventana con inicio y fin.
func NewScheduled(start, end time.Time) Schedule {
	s := start
	return Schedule{start: &s, end: end}
}

// NewDeadline crea una ventana con solo fecha fin.
func NewDeadline(end time.Time) Schedule {
	return Schedule{end: end}
}

// Start devuelve la fecha de inicio si existe.
func (s Schedule) Start() (time.Time, bool) {
	if s.start == nil {
		return time.Time{}, false
	}
	return *s.start, true
}

// End devuelve la fecha fin (obligatoria).
func (s Schedule) End() time.Time {
	return s.end
}

// Valid exige una fecha fin bien formada. Una fecha fin inválida no se
// clasifica "por defecto": el caller tiene que mandar un timestamp correcto.
func (s Schedule) Valid() bool {
	return !s.end.IsZero()
}
