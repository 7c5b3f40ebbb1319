package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"citas-operario/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// ArtifactSource entrega el resumen de artefactos (flags + archivos) de una
// cita para componer el detalle. Lo implementa el módulo de artefactos; se
// inyecta desde el router para no acoplar los dos paquetes en círculo.
type ArtifactSource interface {
	ResumenCita(ctx context.Context, citaID string) (ArtifactSummary, error)
}

// RegisterRoutes registra las rutas del módulo. El router monta el grupo
// /cita y pasa aquí el subrouter; artifacts registra sus uploads en el mismo
// grupo.
func RegisterRoutes(r chi.Router, svc *Service, artSrc ArtifactSource) {
	r.Get("/proximasCitas", listUpcomingHandler(svc))
	r.Get("/citasPendientesCerrar", listPendingHandler(svc))
	r.Get("/citasHistorial", listHistoryHandler(svc))
	r.Get("/diasConCitasCalendario", daysWithCitasHandler(svc))
	r.Get("/citasCalendarioPorDia", citasByDayHandler(svc))
	r.Get("/infoCitaOperario/{citaID}", getCitaInfoHandler(svc, artSrc))
	r.Post("/cerrarCita/{citaID}", closeCitaHandler(svc))

	// Alta de citas (backoffice/seed; los operarios solo leen)
	r.Post("/", createCitaHandler(svc))
}

type contactPayload struct {
	ContactoID  string `json:"contactoId"`
	Nombre      string `json:"nombre"`
	Piso        string `json:"piso"`
	Telefono    string `json:"telefono"`
	Info        string `json:"info"`
	ContactoRol string `json:"contactoRol"`
}

type createCitaRequest struct {
	ExpedienteID     string           `json:"expedienteId"`
	OperarioID       string           `json:"operarioId"`
	FechaCita        string           `json:"fechaCita"` // RFC3339, opcional
	FechaCitaFin     string           `json:"fechaCitaFin"`
	DomicilioCliente string           `json:"domicilioCliente"`
	LocalidadCliente string           `json:"localidadCliente"`
	TipoCita         string           `json:"tipoCita"`
	Info             string           `json:"info"`
	Contactos        []contactPayload `json:"contactos"`
}

// citaResponse es el item de listado (mismo shape que consume la app).
type citaResponse struct {
	CitaID           string     `json:"citaId"`
	ExpedienteID     string     `json:"expedienteId"`
	FechaCita        *time.Time `json:"fechaCita,omitempty"`
	FechaCitaFin     time.Time  `json:"fechaCitaFin"`
	DomicilioCliente string     `json:"domicilioCliente"`
	LocalidadCliente string     `json:"localidadCliente"`
	Estado           Estado     `json:"estado"`
}

type fileRefResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// citaDetailResponse es la respuesta de infoCitaOperario: cita completa,
// contactos, flags de artefactos y listados de archivos por categoría.
type citaDetailResponse struct {
	CitaID           string           `json:"citaId"`
	ExpedienteID     string           `json:"expedienteId"`
	FechaCita        *time.Time       `json:"fechaCita,omitempty"`
	FechaCitaFin     time.Time        `json:"fechaCitaFin"`
	DomicilioCliente string           `json:"domicilioCliente"`
	LocalidadCliente string           `json:"localidadCliente"`
	TipoCita         string           `json:"tipoCita"`
	Info             string           `json:"info"`
	Estado           Estado           `json:"estado"`
	Contactos        []contactPayload `json:"contactos"`

	TienePresupuesto bool `json:"tienePresupuesto"`
	TieneFotos       bool `json:"tieneFotos"`
	TieneFirmas      bool `json:"tieneFirmas"`
	TieneComentarios bool `json:"tieneComentarios"`

	ArchivosVisibles     []fileRefResponse `json:"archivosVisibles"`
	ArchivosPresupuestos []fileRefResponse `json:"archivosPresupuestos"`
	ArchivosFotos        []fileRefResponse `json:"archivosFotos"`
	ArchivosFirmas       []fileRefResponse `json:"archivosFirmas"`
}

// listUpcomingHandler godoc
// @Summary Próximas citas del operario
// @Description Citas abiertas cuya fecha fin no pasó todavía, la más próxima primero.
// @Tags citas
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} citaResponse
// @Failure 401 {string} string "unauthorized"
// @Router /cita/proximasCitas [get]
func listUpcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.OperarioID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Upcoming(r.Context(), claims.OperarioID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCitaResponses(items))
	}
}

// listPendingHandler godoc
// @Summary Citas pendientes de cerrar
// @Description Citas abiertas con la fecha fin ya pasada.
// @Tags citas
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} citaResponse
// @Failure 401 {string} string "unauthorized"
// @Router /cita/citasPendientesCerrar [get]
func listPendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.OperarioID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.PendingClose(r.Context(), claims.OperarioID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCitaResponses(items))
	}
}

// listHistoryHandler godoc
// @Summary Historial de citas cerradas
// @Tags citas
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param offset query int false "Desplazamiento de paginación"
// @Param limit query int false "Máximo de citas (por defecto 20)"
// @Success 200 {array} citaResponse
// @Failure 400 {string} string "offset/limit inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /cita/citasHistorial [get]
func listHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.OperarioID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		offset, limit := 0, 0
		if v := r.URL.Query().Get("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "offset must be a non-negative integer", http.StatusBadRequest)
				return
			}
			offset = n
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		items, err := svc.History(r.Context(), claims.OperarioID, offset, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCitaResponses(items))
	}
}

// daysWithCitasHandler godoc
// @Summary Días con citas en un rango
// @Description Devuelve los días YYYY-MM-DD del rango [desde, hasta] con alguna cita del operario.
// @Tags citas
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param desde query string true "YYYY-MM-DD"
// @Param hasta query string true "YYYY-MM-DD"
// @Success 200 {array} string
// @Failure 400 {string} string "fechas inválidas"
// @Failure 401 {string} string "unauthorized"
// @Router /cita/diasConCitasCalendario [get]
func daysWithCitasHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.OperarioID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		desde, err := time.Parse("2006-01-02", r.URL.Query().Get("desde"))
		if err != nil {
			http.Error(w, "desde must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		hasta, err := time.Parse("2006-01-02", r.URL.Query().Get("hasta"))
		if err != nil {
			http.Error(w, "hasta must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		days, err := svc.DaysWithCitas(r.Context(), claims.OperarioID, desde, hasta)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "hasta must not be before desde", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, days)
	}
}

// citasByDayHandler godoc
// @Summary Citas de un día concreto
// @Tags citas
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param dia query string true "YYYY-MM-DD"
// @Success 200 {array} citaResponse
// @Failure 400 {string} string "dia inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /cita/citasCalendarioPorDia [get]
func citasByDayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.OperarioID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dia, err := time.Parse("2006-01-02", r.URL.Query().Get("dia"))
		if err != nil {
			http.Error(w, "dia must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, err := svc.ByDay(r.Context(), claims.OperarioID, dia)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCitaResponses(items))
	}
}

// getCitaInfoHandler godoc
// @Summary Detalle completo de una cita
// @Description Cita con contactos, flags de artefactos y archivos por categoría. Única fuente de verdad para el cliente: tras subir un artefacto se vuelve a pedir.
// @Tags citas
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param citaID path string true "ID de la cita"
// @Success 200 {object} citaDetailResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "cita not found"
// @Router /cita/infoCitaOperario/{citaID} [get]
func getCitaInfoHandler(svc *Service, artSrc ArtifactSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.OperarioID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		citaID := chi.URLParam(r, "citaID")
		a, err := svc.GetForOperario(r.Context(), citaID, claims.OperarioID)
		if err != nil {
			http.Error(w, "cita not found", http.StatusNotFound)
			return
		}

		var summary ArtifactSummary
		if artSrc != nil {
			summary, err = artSrc.ResumenCita(r.Context(), a.CitaID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		writeJSON(w, http.StatusOK, toDetailResponse(a, summary))
	}
}

// closeCitaHandler godoc
// @Summary Cerrar una cita
// @Description Cierra la cita: desaparece de próximas/pendientes y pasa al historial. Cerrar dos veces devuelve 409.
// @Tags citas
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param citaID path string true "ID de la cita"
// @Success 200 {object} citaResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "cita not found"
// @Failure 409 {string} string "cita already closed"
// @Router /cita/cerrarCita/{citaID} [post]
func closeCitaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.OperarioID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		citaID := chi.URLParam(r, "citaID")
		a, err := svc.Close(r.Context(), citaID, claims.OperarioID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
				http.Error(w, "cita not found", http.StatusNotFound)
			case errors.Is(err, ErrAlreadyClosed):
				http.Error(w, "cita already closed", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toCitaResponse(a))
	}
}

func createCitaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCitaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var inicio *time.Time
		if strings.TrimSpace(req.FechaCita) != "" {
			t, err := time.Parse(time.RFC3339, req.FechaCita)
			if err != nil {
				http.Error(w, "fechaCita must be RFC3339", http.StatusBadRequest)
				return
			}
			inicio = &t
		}

		fin, err := time.Parse(time.RFC3339, req.FechaCitaFin)
		if err != nil {
			http.Error(w, "fechaCitaFin must be RFC3339", http.StatusBadRequest)
			return
		}

		contactos := make([]Contact, 0, len(req.Contactos))
		for _, c := range req.Contactos {
			contactos = append(contactos, Contact{
				ContactoID:  c.ContactoID,
				Nombre:      c.Nombre,
				Piso:        c.Piso,
				Telefono:    c.Telefono,
				Info:        c.Info,
				ContactoRol: c.ContactoRol,
			})
		}

		a, err := svc.Create(r.Context(), CreateInput{
			ExpedienteID:     req.ExpedienteID,
			OperarioID:       req.OperarioID,
			FechaCita:        inicio,
			FechaCitaFin:     fin,
			DomicilioCliente: req.DomicilioCliente,
			LocalidadCliente: req.LocalidadCliente,
			TipoCita:         req.TipoCita,
			Info:             req.Info,
			Contactos:        contactos,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toCitaResponse(a))
	}
}

func toCitaResponse(a Appointment) citaResponse {
	return citaResponse{
		CitaID:           a.CitaID,
		ExpedienteID:     a.ExpedienteID,
		FechaCita:        a.FechaCita,
		FechaCitaFin:     a.FechaCitaFin,
		DomicilioCliente: a.DomicilioCliente,
		LocalidadCliente: a.LocalidadCliente,
		Estado:           a.Estado,
	}
}

func toCitaResponses(items []Appointment) []citaResponse {
	out := make([]citaResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toCitaResponse(a))
	}
	return out
}

func toFileRefs(refs []FileRef) []fileRefResponse {
	out := make([]fileRefResponse, 0, len(refs))
	for _, f := range refs {
		out = append(out, fileRefResponse{
			ID:          f.ID,
			Nombre:      f.Nombre,
			URL:         f.URL,
			ContentType: f.ContentType,
			Size:        f.Size,
		})
	}
	return out
}

func toDetailResponse(a Appointment, s ArtifactSummary) citaDetailResponse {
	contactos := make([]contactPayload, 0, len(a.Contactos))
	for _, c := range a.Contactos {
		contactos = append(contactos, contactPayload{
			ContactoID:  c.ContactoID,
			Nombre:      c.Nombre,
			Piso:        c.Piso,
			Telefono:    c.Telefono,
			Info:        c.Info,
			ContactoRol: c.ContactoRol,
		})
	}

	return citaDetailResponse{
		CitaID:           a.CitaID,
		ExpedienteID:     a.ExpedienteID,
		FechaCita:        a.FechaCita,
		FechaCitaFin:     a.FechaCitaFin,
		DomicilioCliente: a.DomicilioCliente,
		LocalidadCliente: a.LocalidadCliente,
		TipoCita:         a.TipoCita,
		Info:             a.Info,
		Estado:           a.Estado,
		Contactos:        contactos,

		TienePresupuesto: s.TienePresupuesto,
		TieneFotos:       s.TieneFotos,
		TieneFirmas:      s.TieneFirmas,
		TieneComentarios: s.TieneComentarios,

		ArchivosVisibles:     toFileRefs(s.ArchivosVisibles),
		ArchivosPresupuestos: toFileRefs(s.ArchivosPresupuestos),
		ArchivosFotos:        toFileRefs(s.ArchivosFotos),
		ArchivosFirmas:       toFileRefs(s.ArchivosFirmas),
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
