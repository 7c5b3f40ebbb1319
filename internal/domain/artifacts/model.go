package artifacts

import (
	"io"
	"time"
)

// Kind identifica cada artefacto que el operario puede enviar contra una cita.
// @Enum presupuesto, foto, firma, comentario
type Kind string

const (
	KindPresupuesto Kind = "presupuesto"
	KindFoto        Kind = "foto"
	KindFirma       Kind = "firma"
	KindComentario  Kind = "comentario"

	// KindDocumento son los documentos del expediente adjuntados desde
	// backoffice; el operario solo los ve (archivosVisibles del detalle).
	KindDocumento Kind = "documento"
)

// File es el metadato de un archivo subido; los bytes viven en el BlobStore.
type File struct {
	ID     string
	CitaID string
	Kind   Kind

	Nombre      string
	ContentType string
	Size        int64
	URL         string

	UploadedBy string
	UploadedAt time.Time
}

// Comment guarda texto enviado por el operario: comentarios de cierre o el
// texto libre del presupuesto.
type Comment struct {
	ID     string
	CitaID string
	Kind   Kind // comentario o presupuesto

	Texto      string
	OperarioID string
	CreatedAt  time.Time
}

// Upload es la entrada de un archivo a almacenar.
type Upload struct {
	Nombre      string
	ContentType string
	Size        int64
	Data        io.Reader
}
