// Package operario es el cliente Go de la API de citas: lo que la app de
// campo necesita para listar citas, subir artefactos y cerrar trabajos.
package operario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"citas-operario/internal/platform/httpclient"
)

var (
	// ErrUnauthorized indica token ausente, caducado o revocado. El caller
	// debe relanzar el login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indica cita inexistente o de otro operario.
	ErrNotFound = errors.New("cita not found")

	// ErrCitaCerrada indica que la cita ya no admite cambios.
	ErrCitaCerrada = errors.New("cita already closed")
)

// TokenSource entrega el Bearer token vigente. Devolver "" manda el request
// sin Authorization (solo útil en dev).
type TokenSource func() string

// Config del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration // por defecto 15s

	Token TokenSource

	// OnUnauthorized se llama (si no es nil) cada vez que el servidor
	// responde 401, antes de devolver ErrUnauthorized.
	OnUnauthorized func()
}

type Client struct {
	http           *httpclient.Client
	token          TokenSource
	onUnauthorized func()
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("operario: base url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:           hc,
		token:          cfg.Token,
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

// Contacto de una cita.
type Contacto struct {
	ContactoID  string `json:"contactoId"`
	Nombre      string `json:"nombre"`
	Piso        string `json:"piso"`
	Telefono    string `json:"telefono"`
	Info        string `json:"info"`
	ContactoRol string `json:"contactoRol"`
}

// Cita es el item de los listados.
type Cita struct {
	CitaID           string     `json:"citaId"`
	ExpedienteID     string     `json:"expedienteId"`
	FechaCita        *time.Time `json:"fechaCita,omitempty"`
	FechaCitaFin     time.Time  `json:"fechaCitaFin"`
	DomicilioCliente string     `json:"domicilioCliente"`
	LocalidadCliente string     `json:"localidadCliente"`
	Estado           string     `json:"estado"`
}

// FileRef es un archivo ya subido, visible en el detalle.
type FileRef struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// CitaDetail es la respuesta de infoCitaOperario.
type CitaDetail struct {
	CitaID           string     `json:"citaId"`
	ExpedienteID     string     `json:"expedienteId"`
	FechaCita        *time.Time `json:"fechaCita,omitempty"`
	FechaCitaFin     time.Time  `json:"fechaCitaFin"`
	DomicilioCliente string     `json:"domicilioCliente"`
	LocalidadCliente string     `json:"localidadCliente"`
	TipoCita         string     `json:"tipoCita"`
	Info             string     `json:"info"`
	Estado           string     `json:"estado"`
	Contactos        []Contacto `json:"contactos"`

	TienePresupuesto bool `json:"tienePresupuesto"`
	TieneFotos       bool `json:"tieneFotos"`
	TieneFirmas      bool `json:"tieneFirmas"`
	TieneComentarios bool `json:"tieneComentarios"`

	ArchivosVisibles     []FileRef `json:"archivosVisibles"`
	ArchivosPresupuestos []FileRef `json:"archivosPresupuestos"`
	ArchivosFotos        []FileRef `json:"archivosFotos"`
	ArchivosFirmas       []FileRef `json:"archivosFirmas"`
}

// Session es la respuesta del login.
type Session struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	OperarioID  string    `json:"operarioId"`
	Nombre      string    `json:"nombre"`
}

// FileUpload es un archivo local a subir.
type FileUpload struct {
	Nombre      string
	ContentType string
	Data        io.Reader
}

// Login autentica contra /auth/login. No usa el TokenSource: es quien
// produce el token.
func (c *Client) Login(ctx context.Context, usuario, password string) (Session, error) {
	var out Session
	err := c.http.DoJSON(ctx, "POST", "/auth/login",
		nil,
		map[string]string{"usuario": usuario, "password": password},
		&out,
	)
	if err != nil {
		return Session{}, c.mapErr(err)
	}
	return out, nil
}

// Logout revoca el token actual.
func (c *Client) Logout(ctx context.Context) error {
	return c.mapErr(c.http.DoJSON(ctx, "POST", "/auth/logout", c.authHeaders(), nil, nil))
}

// ProximasCitas lista las citas abiertas con fecha fin por llegar.
func (c *Client) ProximasCitas(ctx context.Context) ([]Cita, error) {
	var out []Cita
	if err := c.http.DoJSON(ctx, "GET", "/cita/proximasCitas", c.authHeaders(), nil, &out); err != nil {
		return nil, c.mapErr(err)
	}
	return out, nil
}

// CitasPendientesCerrar lista las citas abiertas con fecha fin ya pasada.
func (c *Client) CitasPendientesCerrar(ctx context.Context) ([]Cita, error) {
	var out []Cita
	if err := c.http.DoJSON(ctx, "GET", "/cita/citasPendientesCerrar", c.authHeaders(), nil, &out); err != nil {
		return nil, c.mapErr(err)
	}
	return out, nil
}

// CitasHistorial pagina las citas cerradas, la más reciente primero.
func (c *Client) CitasHistorial(ctx context.Context, offset, limit int) ([]Cita, error) {
	q := url.Values{}
	q.Set("offset", fmt.Sprint(offset))
	q.Set("limit", fmt.Sprint(limit))

	var out []Cita
	if err := c.http.DoJSON(ctx, "GET", "/cita/citasHistorial?"+q.Encode(), c.authHeaders(), nil, &out); err != nil {
		return nil, c.mapErr(err)
	}
	return out, nil
}

// DiasConCitasCalendario devuelve los días YYYY-MM-DD con citas en el rango.
func (c *Client) DiasConCitasCalendario(ctx context.Context, desde, hasta string) ([]string, error) {
	q := url.Values{}
	q.Set("desde", desde)
	q.Set("hasta", hasta)

	var out []string
	if err := c.http.DoJSON(ctx, "GET", "/cita/diasConCitasCalendario?"+q.Encode(), c.authHeaders(), nil, &out); err != nil {
		return nil, c.mapErr(err)
	}
	return out, nil
}

// CitasCalendarioPorDia lista las citas de un día YYYY-MM-DD.
func (c *Client) CitasCalendarioPorDia(ctx context.Context, dia string) ([]Cita, error) {
	q := url.Values{}
	q.Set("dia", dia)

	var out []Cita
	if err := c.http.DoJSON(ctx, "GET", "/cita/citasCalendarioPorDia?"+q.Encode(), c.authHeaders(), nil, &out); err != nil {
		return nil, c.mapErr(err)
	}
	return out, nil
}

// InfoCitaOperario devuelve el detalle completo de una cita.
func (c *Client) InfoCitaOperario(ctx context.Context, citaID string) (CitaDetail, error) {
	var out CitaDetail
	if err := c.http.DoJSON(ctx, "GET", "/cita/infoCitaOperario/"+url.PathEscape(citaID), c.authHeaders(), nil, &out); err != nil {
		return CitaDetail{}, c.mapErr(err)
	}
	return out, nil
}

// CerrarCita cierra la cita. Cerrar dos veces devuelve ErrCitaCerrada.
func (c *Client) CerrarCita(ctx context.Context, citaID string) (Cita, error) {
	var out Cita
	if err := c.http.DoJSON(ctx, "POST", "/cita/cerrarCita/"+url.PathEscape(citaID), c.authHeaders(), nil, &out); err != nil {
		return Cita{}, c.mapErr(err)
	}
	return out, nil
}

// SubirPresupuesto manda texto y/o archivos de presupuesto. Hace falta al
// menos uno de los dos; si no, el servidor responde 400.
func (c *Client) SubirPresupuesto(ctx context.Context, citaID, texto string, files []FileUpload) error {
	fields := map[string]string{}
	if texto != "" {
		fields["texto"] = texto
	}
	return c.mapErr(c.http.DoMultipart(ctx,
		"/cita/subirPresupuesto/"+url.PathEscape(citaID),
		c.authHeaders(), fields, toParts(files), nil,
	))
}

// SubirFotos manda una o más fotos del trabajo.
func (c *Client) SubirFotos(ctx context.Context, citaID string, files []FileUpload) error {
	return c.mapErr(c.http.DoMultipart(ctx,
		"/cita/subirFotos/"+url.PathEscape(citaID),
		c.authHeaders(), nil, toParts(files), nil,
	))
}

// SubirFirmas manda la captura de firma del cliente.
func (c *Client) SubirFirmas(ctx context.Context, citaID string, files []FileUpload) error {
	return c.mapErr(c.http.DoMultipart(ctx,
		"/cita/subirFirmas/"+url.PathEscape(citaID),
		c.authHeaders(), nil, toParts(files), nil,
	))
}

// SubirComentarios manda el comentario de cierre.
func (c *Client) SubirComentarios(ctx context.Context, citaID, texto string) error {
	q := url.Values{}
	q.Set("texto", texto)
	return c.mapErr(c.http.DoJSON(ctx, "POST",
		"/cita/subirComentarios/"+url.PathEscape(citaID)+"?"+q.Encode(),
		c.authHeaders(), nil, nil,
	))
}

func (c *Client) authHeaders() map[string]string {
	if c.token == nil {
		return nil
	}
	tok := c.token()
	if tok == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + tok}
}

func toParts(files []FileUpload) []httpclient.FilePart {
	parts := make([]httpclient.FilePart, 0, len(files))
	for _, f := range files {
		parts = append(parts, httpclient.FilePart{
			FieldName:   "files",
			FileName:    f.Nombre,
			ContentType: f.ContentType,
			Data:        f.Data,
		})
	}
	return parts
}

// mapErr traduce los status HTTP a los sentinels del paquete.
func (c *Client) mapErr(err error) error {
	if err == nil {
		return nil
	}
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 401:
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
			return fmt.Errorf("%w: %s", ErrUnauthorized, httpErr.Body)
		case 404:
			return fmt.Errorf("%w: %s", ErrNotFound, httpErr.Body)
		case 409:
			return fmt.Errorf("%w: %s", ErrCitaCerrada, httpErr.Body)
		}
	}
	return err
}
