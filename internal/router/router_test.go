package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"citas-operario/internal/router"
)

func TestHTTP_EndToEnd_CitaLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{DevAuth: true}))
	defer ts.Close()

	opID := "op-1"
	otherOpID := "op-2"

	// 1) Backoffice da de alta una cita con fecha fin por llegar
	fin := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	citaID := createCita(t, ts.URL, opID, map[string]any{
		"expedienteId":     "exp-1001",
		"operarioId":       opID,
		"fechaCitaFin":     fin,
		"domicilioCliente": "C/ Mayor 5",
		"localidadCliente": "Zaragoza",
		"tipoCita":         "reparacion",
		"contactos":        []map[string]any{{"nombre": "Marta", "telefono": "600000000"}},
	})

	// 2) Aparece en próximas citas
	{
		st, body := doReq(t, ts.URL, "GET", "/cita/proximasCitas", opID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 proximas, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 upcoming cita, got %d", len(items))
		}
	}

	// 3) Otro operario no la ve ni por listado ni por detalle
	{
		st, body := doReq(t, ts.URL, "GET", "/cita/proximasCitas", otherOpID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 proximas for other op, got %d", st)
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("expected empty listing for other op, got %d", len(items))
		}

		st, _ = doReq(t, ts.URL, "GET", "/cita/infoCitaOperario/"+citaID, otherOpID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 detail for other op, got %d", st)
		}
	}

	// 4) Sin operario => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/cita/proximasCitas", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without operario, got %d", st)
		}
	}

	// 5) Detalle inicial: sin artefactos
	{
		d := getDetail(t, ts.URL, opID, citaID)
		for _, flag := range []string{"tienePresupuesto", "tieneFotos", "tieneFirmas", "tieneComentarios"} {
			if d[flag] != false {
				t.Fatalf("expected %s=false initially, got %v", flag, d[flag])
			}
		}
	}

	// 6) Subir artefactos
	uploadFiles(t, ts.URL, opID, "/cita/subirFotos/"+citaID, "", []filePart{
		{name: "antes.jpg", contentType: "image/jpeg", content: "jpegdata"},
	})
	uploadFiles(t, ts.URL, opID, "/cita/subirPresupuesto/"+citaID, "mano de obra 2h", nil)
	uploadFiles(t, ts.URL, opID, "/cita/subirFirmas/"+citaID, "", []filePart{
		{name: "firma.png", contentType: "image/png", content: "pngdata"},
	})
	{
		st, body := doReq(t, ts.URL, "POST", "/cita/subirComentarios/"+citaID+"?texto=cliente+conforme", opID, nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 comentario, got %d body=%s", st, string(body))
		}
	}

	// 7) Los flags del detalle reflejan lo subido
	{
		d := getDetail(t, ts.URL, opID, citaID)
		for _, flag := range []string{"tienePresupuesto", "tieneFotos", "tieneFirmas", "tieneComentarios"} {
			if d[flag] != true {
				t.Fatalf("expected %s=true after uploads, got %v", flag, d[flag])
			}
		}
		fotos, _ := d["archivosFotos"].([]any)
		if len(fotos) != 1 {
			t.Fatalf("expected 1 foto listed, got %d", len(fotos))
		}
		// presupuesto solo texto: flag sin archivos
		pres, _ := d["archivosPresupuestos"].([]any)
		if len(pres) != 0 {
			t.Fatalf("expected no presupuesto files, got %d", len(pres))
		}
	}

	// 8) Artefactos vacíos se rechazan en local
	{
		st, body := doReq(t, ts.URL, "POST", "/cita/subirComentarios/"+citaID+"?texto=", opID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 empty comentario, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := uploadFilesRaw(t, ts.URL, opID, "/cita/subirPresupuesto/"+citaID, "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 empty presupuesto, got %d body=%s", st, string(body))
		}
	}

	// 9) Cerrar la cita
	{
		st, body := doReq(t, ts.URL, "POST", "/cita/cerrarCita/"+citaID, opID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cerrar, got %d body=%s", st, string(body))
		}
	}

	// 10) Cerrada: fuera de próximas, en historial, y no admite más cambios
	{
		st, body := doReq(t, ts.URL, "GET", "/cita/proximasCitas", opID, nil)
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if st != http.StatusOK || len(items) != 0 {
			t.Fatalf("expected empty proximas after close, got %d items st=%d", len(items), st)
		}

		st, body = doReq(t, ts.URL, "GET", "/cita/citasHistorial?offset=0&limit=10", opID, nil)
		_ = json.Unmarshal(body, &items)
		if st != http.StatusOK || len(items) != 1 {
			t.Fatalf("expected cita in historial, st=%d items=%d", st, len(items))
		}

		st, _ = doReq(t, ts.URL, "POST", "/cita/cerrarCita/"+citaID, opID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 double close, got %d", st)
		}

		st, _ = uploadFilesRaw(t, ts.URL, opID, "/cita/subirFotos/"+citaID, "", []filePart{
			{name: "tarde.jpg", contentType: "image/jpeg", content: "jpegdata"},
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 upload after close, got %d", st)
		}
	}
}

func TestHTTP_Calendario(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{DevAuth: true}))
	defer ts.Close()

	opID := "op-1"

	// ventana de dos días
	start := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 7, 18, 0, 0, 0, time.UTC)
	citaID := createCita(t, ts.URL, opID, map[string]any{
		"expedienteId": "exp-cal",
		"operarioId":   opID,
		"fechaCita":    start.Format(time.RFC3339),
		"fechaCitaFin": end.Format(time.RFC3339),
	})

	{
		st, body := doReq(t, ts.URL, "GET", "/cita/diasConCitasCalendario?desde=2026-04-01&hasta=2026-04-30", opID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dias, got %d body=%s", st, string(body))
		}
		var days []string
		_ = json.Unmarshal(body, &days)
		if len(days) != 2 || days[0] != "2026-04-06" || days[1] != "2026-04-07" {
			t.Fatalf("expected both window days, got %v", days)
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/cita/citasCalendarioPorDia?dia=2026-04-07", opID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 por dia, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0]["citaId"] != citaID {
			t.Fatalf("expected the windowed cita on day 7, got %v", items)
		}
	}

	{
		st, _ := doReq(t, ts.URL, "GET", "/cita/citasCalendarioPorDia?dia=no-date", opID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid dia, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/cita/diasConCitasCalendario?desde=2026-04-30&hasta=2026-04-01", opID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 inverted range, got %d", st)
		}
	}
}

// -------------------------
// Helpers
// -------------------------

func createCita(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/cita/", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create cita, got %d body=%s", st, string(body))
	}

	var resp struct {
		CitaID string `json:"citaId"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.CitaID == "" {
		t.Fatalf("create cita: missing citaId body=%s", string(body))
	}
	return resp.CitaID
}

func getDetail(t *testing.T, baseURL, userID, citaID string) map[string]any {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/cita/infoCitaOperario/"+citaID, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 detail, got %d body=%s", st, string(body))
	}
	var d map[string]any
	if err := json.Unmarshal(body, &d); err != nil {
		t.Fatalf("detail: invalid json: %v", err)
	}
	return d
}

type filePart struct {
	name        string
	contentType string
	content     string
}

func uploadFiles(t *testing.T, baseURL, userID, path, texto string, parts []filePart) {
	t.Helper()
	st, body := uploadFilesRaw(t, baseURL, userID, path, texto, parts)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 upload %s, got %d body=%s", path, st, string(body))
	}
}

func uploadFilesRaw(t *testing.T, baseURL, userID, path, texto string, parts []filePart) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if texto != "" {
		_ = mw.WriteField("texto", texto)
	}
	for _, p := range parts {
		fw, err := mw.CreateFormFile("files", p.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = io.WriteString(fw, p.content)
	}
	_ = mw.Close()

	req, err := http.NewRequest("POST", baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if userID != "" {
		req.Header.Set("X-Debug-Operario-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-Operario-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
