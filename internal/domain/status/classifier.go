package status

import (
	"fmt"
	"math"
	"time"

	"citas-operario/internal/platform/logger"
)

// Severity es la urgencia gruesa que dirige el color/énfasis en UI.
type Severity string

const (
	SeverityUrgent  Severity = "urgent"
	SeverityWarning Severity = "warning"
	SeverityOK      Severity = "ok"
	SeverityDone    Severity = "done"
	SeverityUnknown Severity = "unknown"
)

// DisplayStatus es un value object derivado: se recalcula en cada render,
// nunca se persiste.
type DisplayStatus struct {
	Label    string
	Severity Severity
}

// Context son los flags del sitio de llamada.
// IsHistory: la cita viene del historial (ya cerrada).
// IsPendingClose: el listado de pendientes de cerrar la marcó explícitamente.
type Context struct {
	IsHistory      bool
	IsPendingClose bool
}

// Classify calcula el estado visible de una cita a partir de su ventana
// temporal y el contexto. Es la única implementación: los tres sitios que
// antes duplicaban esta lógica (item de próximas, item de historial y modal
// de información) deben pasar por aquí para que no diverjan en los bordes.
//
// Las comparaciones son solo de fecha (se trunca la hora a medianoche) y los
// conteos de días son diferencia de días de calendario.
func Classify(now time.Time, sched Schedule, ctx Context) (DisplayStatus, error) {
	if !sched.Valid() {
		return DisplayStatus{}, ErrInvalidDate
	}

	today := dateOnly(now)
	end := dateOnly(sched.End().In(now.Location()))

	// Historial manda sobre cualquier relación de fechas.
	if ctx.IsHistory {
		return DisplayStatus{Label: "Finalizada", Severity: SeverityDone}, nil
	}

	// Pendiente de cerrar: pasó la fecha fin, o el listado lo afirmó.
	if today.After(end) || ctx.IsPendingClose {
		d := daysBetween(end, today)
		if d < 0 {
			d = 0
		}
		switch d {
		case 0:
			return DisplayStatus{Label: "Pendiente hoy", Severity: SeverityUrgent}, nil
		case 1:
			return DisplayStatus{Label: "Pendiente hace 1 día", Severity: SeverityUrgent}, nil
		default:
			return DisplayStatus{Label: fmt.Sprintf("Pendiente hace %d días", d), Severity: SeverityUrgent}, nil
		}
	}

	if s, ok := sched.Start(); ok {
		start := dateOnly(s.In(now.Location()))

		if today.Equal(start) {
			return DisplayStatus{Label: "Hoy", Severity: SeverityOK}, nil
		}
		// Entre inicio y fin, ambos inclusive.
		if today.After(start) && !today.After(end) {
			return DisplayStatus{Label: "En curso", Severity: SeverityOK}, nil
		}
		if today.Before(start) {
			d := daysBetween(today, start)
			if d == 1 {
				return DisplayStatus{Label: "Mañana", Severity: SeverityWarning}, nil
			}
			return DisplayStatus{Label: fmt.Sprintf("%d días", d), Severity: SeverityWarning}, nil
		}
	} else {
		// Sin fecha inicio: la fecha fin hace de "no llegó todavía".
		if !today.After(end) {
			d := daysBetween(today, end)
			switch d {
			case 0:
				return DisplayStatus{Label: "Hoy", Severity: SeverityOK}, nil
			case 1:
				return DisplayStatus{Label: "Mañana", Severity: SeverityWarning}, nil
			default:
				return DisplayStatus{Label: fmt.Sprintf("%d días", d), Severity: SeverityWarning}, nil
			}
		}
	}

	// Las ramas de arriba cubren todos los órdenes de now vs inicio/fin.
	return DisplayStatus{Label: "Error", Severity: SeverityUnknown}, nil
}

// ForDisplay es el wrapper de producción: ante una fecha inválida loguea y
// devuelve un estado neutro en vez de tumbar la pantalla.
func ForDisplay(log logger.Logger, now time.Time, sched Schedule, ctx Context) DisplayStatus {
	st, err := Classify(now, sched, ctx)
	if err != nil {
		if log != nil {
			log.Error("status classify failed", map[string]any{"err": err.Error()})
		}
		return DisplayStatus{Label: "", Severity: SeverityUnknown}
	}
	return st
}

// dateOnly trunca a medianoche en la location de t.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween cuenta días de calendario de a hasta b (a y b ya truncados).
// Se redondea para que un cambio de hora (23h/25h) no desplace el conteo.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
