package appointments

import "time"

// Estado define el ciclo de vida de una cita de cara al operario.
// @Enum abierta, cerrada
type Estado string

const (
	EstadoAbierta Estado = "abierta"
	EstadoCerrada Estado = "cerrada"
)

// Contact es un contacto del cliente asociado a la cita.
// Inmutable desde el cliente; viene anidado en la cita.
type Contact struct {
	ContactoID  string
	Nombre      string
	Piso        string
	Telefono    string
	Info        string
	ContactoRol string
}

// Appointment representa una cita de servicio de campo asignada a un operario.
// El cliente nunca la parchea localmente: tras cualquier envío de artefactos
// se invalida y se vuelve a pedir al servidor.
type Appointment struct {
	CitaID       string
	ExpedienteID string
	OperarioID   string

	// FechaCita (inicio) es opcional; FechaCitaFin es obligatoria.
	FechaCita    *time.Time
	FechaCitaFin time.Time

	DomicilioCliente string
	LocalidadCliente string
	TipoCita         string
	Info             string

	Contactos []Contact

	Estado   Estado
	ClosedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FileRef es la referencia a un archivo ya subido, tal como se lista en el
// detalle de la cita.
type FileRef struct {
	ID          string
	Nombre      string
	URL         string
	ContentType string
	Size        int64
}

// ArtifactSummary agrupa los flags y listados de archivos por categoría que
// el detalle de la cita devuelve junto a la entidad.
type ArtifactSummary struct {
	TienePresupuesto bool
	TieneFotos       bool
	TieneFirmas      bool
	TieneComentarios bool

	ArchivosVisibles     []FileRef
	ArchivosPresupuestos []FileRef
	ArchivosFotos        []FileRef
	ArchivosFirmas       []FileRef
}

// Detail es la respuesta de infoCitaOperario: la cita más el resumen de
// artefactos. Es la única fuente de verdad para los flags.
type Detail struct {
	Appointment
	ArtifactSummary
}
