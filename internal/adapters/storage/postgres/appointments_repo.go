package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"citas-operario/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO citas (
			cita_id, expediente_id, operario_id,
			fecha_cita, fecha_cita_fin,
			domicilio_cliente, localidad_cliente, tipo_cita, info,
			estado, closed_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.CitaID,
		a.ExpedienteID,
		a.OperarioID,
		toNullTime(a.FechaCita),
		a.FechaCitaFin,
		a.DomicilioCliente,
		a.LocalidadCliente,
		a.TipoCita,
		a.Info,
		a.Estado,
		toNullTime(a.ClosedAt),
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, c := range a.Contactos {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cita_contactos (
				contacto_id, cita_id, nombre, piso, telefono, info, contacto_rol
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			c.ContactoID, a.CitaID, c.Nombre, c.Piso, c.Telefono, c.Info, c.ContactoRol,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE citas
		SET
			fecha_cita = $2,
			fecha_cita_fin = $3,
			domicilio_cliente = $4,
			localidad_cliente = $5,
			tipo_cita = $6,
			info = $7,
			estado = $8,
			closed_at = $9,
			updated_at = $10
		WHERE cita_id = $1
	`,
		a.CitaID,
		toNullTime(a.FechaCita),
		a.FechaCitaFin,
		a.DomicilioCliente,
		a.LocalidadCliente,
		a.TipoCita,
		a.Info,
		a.Estado,
		toNullTime(a.ClosedAt),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, citaID string) (appointments.Appointment, error) {
	citaID = strings.TrimSpace(citaID)
	if citaID == "" {
		return appointments.Appointment{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			cita_id, expediente_id, operario_id,
			fecha_cita, fecha_cita_fin,
			domicilio_cliente, localidad_cliente, tipo_cita, info,
			estado, closed_at,
			created_at, updated_at
		FROM citas
		WHERE cita_id = $1
	`, citaID)

	a, err := scanCita(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return appointments.Appointment{}, ErrNotFound
		}
		return appointments.Appointment{}, err
	}

	contactos, err := r.listContactos(ctx, citaID)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a.Contactos = contactos

	return a, nil
}

func (r *AppointmentsRepo) ListByOperario(ctx context.Context, operarioID string, f appointments.ListFilter) ([]appointments.Appointment, error) {
	operarioID = strings.TrimSpace(operarioID)
	if operarioID == "" {
		return []appointments.Appointment{}, nil
	}

	// Filtros dinámicos con placeholders posicionales
	where := []string{"operario_id = $1"}
	args := []any{operarioID}

	if f.Estado != "" {
		args = append(args, f.Estado)
		where = append(where, fmt.Sprintf("estado = $%d", len(args)))
	}
	if f.EndFrom != nil {
		args = append(args, dateOnly(*f.EndFrom))
		where = append(where, fmt.Sprintf("fecha_cita_fin::date >= $%d", len(args)))
	}
	if f.EndBefore != nil {
		args = append(args, dateOnly(*f.EndBefore))
		where = append(where, fmt.Sprintf("fecha_cita_fin::date < $%d", len(args)))
	}
	if f.StartTo != nil {
		args = append(args, dateOnly(*f.StartTo))
		where = append(where, fmt.Sprintf("COALESCE(fecha_cita, fecha_cita_fin)::date <= $%d", len(args)))
	}

	order := "fecha_cita_fin ASC"
	if f.NewestFirst {
		order = "fecha_cita_fin DESC"
	}

	q := `
		SELECT
			cita_id, expediente_id, operario_id,
			fecha_cita, fecha_cita_fin,
			domicilio_cliente, localidad_cliente, tipo_cita, info,
			estado, closed_at,
			created_at, updated_at
		FROM citas
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + order

	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanCita(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Contactos solo hacen falta en el detalle; los listados van sin ellos.
	return out, nil
}

func (r *AppointmentsRepo) listContactos(ctx context.Context, citaID string) ([]appointments.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT contacto_id, nombre, piso, telefono, info, contacto_rol
		FROM cita_contactos
		WHERE cita_id = $1
		ORDER BY nombre
	`, citaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Contact, 0)
	for rows.Next() {
		var c appointments.Contact
		if err := rows.Scan(&c.ContactoID, &c.Nombre, &c.Piso, &c.Telefono, &c.Info, &c.ContactoRol); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCita(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var inicio, closed sql.NullTime

	if err := row.Scan(
		&a.CitaID,
		&a.ExpedienteID,
		&a.OperarioID,
		&inicio,
		&a.FechaCitaFin,
		&a.DomicilioCliente,
		&a.LocalidadCliente,
		&a.TipoCita,
		&a.Info,
		&a.Estado,
		&closed,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	if inicio.Valid {
		t := inicio.Time
		a.FechaCita = &t
	}
	if closed.Valid {
		t := closed.Time
		a.ClosedAt = &t
	}
	return a, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
