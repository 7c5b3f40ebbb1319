package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, citaID string) (Appointment, error)
	ListByOperario(ctx context.Context, operarioID string, f ListFilter) ([]Appointment, error)
}

// ListFilter filtra por estado y por posición de la ventana temporal.
// EndFrom/EndBefore comparan contra la fecha fin; StartTo contra la fecha de
// inicio efectiva (inicio si existe, fin si no).
type ListFilter struct {
	Estado    Estado // "" = cualquiera
	EndFrom   *time.Time
	EndBefore *time.Time
	StartTo   *time.Time

	Offset int
	Limit  int

	// NewestFirst ordena por fecha fin descendente (historial);
	// por defecto asciende (próximas primero).
	NewestFirst bool
}
