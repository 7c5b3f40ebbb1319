package operario

import (
	"time"

	"citas-operario/internal/domain/status"
)

// EstadoVisual calcula la etiqueta y severidad a pintar para una cita de
// listado. fromPendingClose marca que el item viene del listado de
// pendientes de cerrar. Con fechas inválidas devuelve el estado neutro
// (sin etiqueta) en vez de romper el render.
func EstadoVisual(now time.Time, c Cita, fromPendingClose bool) status.DisplayStatus {
	var sched status.Schedule
	if c.FechaCita != nil {
		sched = status.NewScheduled(*c.FechaCita, c.FechaCitaFin)
	} else {
		sched = status.NewDeadline(c.FechaCitaFin)
	}

	ds, err := status.Classify(now, sched, status.Context{
		IsHistory:      c.Estado == "cerrada",
		IsPendingClose: fromPendingClose,
	})
	if err != nil {
		return status.DisplayStatus{Severity: status.SeverityUnknown}
	}
	return ds
}
