package artifacts

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"citas-operario/internal/domain/appointments"
	"citas-operario/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Límite total del multipart en memoria; el resto va a ficheros temporales.
const maxMultipartMemory = 32 << 20

// RegisterRoutes registra los endpoints de subida en el grupo /cita.
func RegisterRoutes(r chi.Router, svc *Service, citasSvc *appointments.Service) {
	r.Post("/subirPresupuesto/{citaID}", uploadPresupuestoHandler(svc, citasSvc))
	r.Post("/subirFotos/{citaID}", uploadFotosHandler(svc, citasSvc))
	r.Post("/subirFirmas/{citaID}", uploadFirmasHandler(svc, citasSvc))
	r.Post("/subirComentarios/{citaID}", uploadComentariosHandler(svc, citasSvc))
}

type fileResponse struct {
	ID          string    `json:"id"`
	CitaID      string    `json:"citaId"`
	Kind        Kind      `json:"kind"`
	Nombre      string    `json:"nombre"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	CitaID    string    `json:"citaId"`
	Texto     string    `json:"texto"`
	CreatedAt time.Time `json:"createdAt"`
}

// guardCita valida claims y que la cita exista, sea del operario y esté
// abierta. Escribe la respuesta de error y devuelve ok=false si algo falla.
func guardCita(w http.ResponseWriter, r *http.Request, citasSvc *appointments.Service) (cita appointments.Appointment, operarioID string, ok bool) {
	claims, hasClaims := middleware.GetClaims(r.Context())
	if !hasClaims || strings.TrimSpace(claims.OperarioID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return appointments.Appointment{}, "", false
	}

	citaID := chi.URLParam(r, "citaID")
	a, err := citasSvc.GetForOperario(r.Context(), citaID, claims.OperarioID)
	if err != nil {
		http.Error(w, "cita not found", http.StatusNotFound)
		return appointments.Appointment{}, "", false
	}
	if a.Estado == appointments.EstadoCerrada {
		http.Error(w, "cita already closed", http.StatusConflict)
		return appointments.Appointment{}, "", false
	}

	return a, claims.OperarioID, true
}

// parseUploads extrae los archivos del campo multipart "files". El cleanup
// cierra los handles y borra los temporales del form.
func parseUploads(r *http.Request) ([]Upload, func(), error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, func() {}, err
	}

	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	var uploads []Upload
	if r.MultipartForm == nil {
		return uploads, cleanup, nil
	}

	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		uploads = append(uploads, Upload{
			Nombre:      fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        f,
		})
	}
	return uploads, cleanup, nil
}

// uploadPresupuestoHandler godoc
// @Summary Subir presupuesto
// @Description Multipart con campo opcional `texto` y archivos en `files`. Hace falta texto o al menos un archivo.
// @Tags artefactos
// @Accept mpfd
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param citaID path string true "ID de la cita"
// @Success 201 {array} fileResponse
// @Failure 400 {string} string "information required"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "cita not found"
// @Failure 409 {string} string "cita already closed"
// @Router /cita/subirPresupuesto/{citaID} [post]
func uploadPresupuestoHandler(svc *Service, citasSvc *appointments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, operarioID, ok := guardCita(w, r, citasSvc)
		if !ok {
			return
		}

		uploads, cleanup, err := parseUploads(r)
		if err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}
		defer cleanup()

		texto := r.FormValue("texto")

		files, err := svc.SubmitPresupuesto(r.Context(), a.CitaID, operarioID, texto, uploads)
		if err != nil {
			writeSubmitError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toFileResponses(files))
	}
}

// uploadFotosHandler godoc
// @Summary Subir fotos
// @Description Multipart con al menos una imagen en `files`.
// @Tags artefactos
// @Accept mpfd
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param citaID path string true "ID de la cita"
// @Success 201 {array} fileResponse
// @Failure 400 {string} string "information required"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "cita not found"
// @Failure 409 {string} string "cita already closed"
// @Router /cita/subirFotos/{citaID} [post]
func uploadFotosHandler(svc *Service, citasSvc *appointments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, operarioID, ok := guardCita(w, r, citasSvc)
		if !ok {
			return
		}

		uploads, cleanup, err := parseUploads(r)
		if err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}
		defer cleanup()

		files, err := svc.SubmitFotos(r.Context(), a.CitaID, operarioID, uploads)
		if err != nil {
			writeSubmitError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toFileResponses(files))
	}
}

// uploadFirmasHandler godoc
// @Summary Subir firmas
// @Description Multipart con la captura de firma en `files`.
// @Tags artefactos
// @Accept mpfd
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param citaID path string true "ID de la cita"
// @Success 201 {array} fileResponse
// @Failure 400 {string} string "information required"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "cita not found"
// @Failure 409 {string} string "cita already closed"
// @Router /cita/subirFirmas/{citaID} [post]
func uploadFirmasHandler(svc *Service, citasSvc *appointments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, operarioID, ok := guardCita(w, r, citasSvc)
		if !ok {
			return
		}

		uploads, cleanup, err := parseUploads(r)
		if err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}
		defer cleanup()

		files, err := svc.SubmitFirmas(r.Context(), a.CitaID, operarioID, uploads)
		if err != nil {
			writeSubmitError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toFileResponses(files))
	}
}

// uploadComentariosHandler godoc
// @Summary Enviar comentario
// @Description El texto viene en la query `texto` (o como campo de formulario). Vacío o solo espacios se rechaza.
// @Tags artefactos
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param citaID path string true "ID de la cita"
// @Param texto query string true "Comentario del operario"
// @Success 201 {object} commentResponse
// @Failure 400 {string} string "information required"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "cita not found"
// @Failure 409 {string} string "cita already closed"
// @Router /cita/subirComentarios/{citaID} [post]
func uploadComentariosHandler(svc *Service, citasSvc *appointments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, operarioID, ok := guardCita(w, r, citasSvc)
		if !ok {
			return
		}

		texto := r.URL.Query().Get("texto")
		if strings.TrimSpace(texto) == "" {
			texto = r.FormValue("texto")
		}

		c, err := svc.SubmitComentario(r.Context(), a.CitaID, operarioID, texto)
		if err != nil {
			writeSubmitError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, commentResponse{
			ID:        c.ID,
			CitaID:    c.CitaID,
			Texto:     c.Texto,
			CreatedAt: c.CreatedAt,
		})
	}
}

func writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInformationRequired):
		http.Error(w, "information required", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toFileResponses(files []File) []fileResponse {
	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, fileResponse{
			ID:          f.ID,
			CitaID:      f.CitaID,
			Kind:        f.Kind,
			Nombre:      f.Nombre,
			ContentType: f.ContentType,
			Size:        f.Size,
			URL:         f.URL,
			UploadedAt:  f.UploadedAt,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
