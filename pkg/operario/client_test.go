package operario

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(rw).Encode([]Cita{})
	}))
	defer ts.Close()

	c, err := NewClient(Config{BaseURL: ts.URL, Token: func() string { return "tok-42" }})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := c.ProximasCitas(context.Background()); err != nil {
		t.Fatalf("proximas: %v", err)
	}
	if gotAuth != "Bearer tok-42" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_MapsStatusCodes(t *testing.T) {
	var status int
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		http.Error(rw, "nope", status)
	}))
	defer ts.Close()

	unauthorizedCalls := 0
	c, err := NewClient(Config{
		BaseURL:        ts.URL,
		Token:          func() string { return "tok" },
		OnUnauthorized: func() { unauthorizedCalls++ },
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	status = http.StatusUnauthorized
	if _, err := c.InfoCitaOperario(context.Background(), "cita-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if unauthorizedCalls != 1 {
		t.Fatalf("expected OnUnauthorized hook once, got %d", unauthorizedCalls)
	}

	status = http.StatusNotFound
	if _, err := c.InfoCitaOperario(context.Background(), "cita-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	status = http.StatusConflict
	if _, err := c.CerrarCita(context.Background(), "cita-1"); !errors.Is(err, ErrCitaCerrada) {
		t.Fatalf("expected ErrCitaCerrada, got %v", err)
	}
	if unauthorizedCalls != 1 {
		t.Fatalf("hook must only fire on 401, got %d calls", unauthorizedCalls)
	}
}

func TestClient_SubirPresupuesto_MultipartShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart request, got %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("texto"); got != "mano de obra 2h" {
			t.Errorf("expected texto field, got %q", got)
		}
		files := r.MultipartForm.File["files"]
		if len(files) != 1 || files[0].Filename != "presupuesto.pdf" {
			t.Errorf("expected one presupuesto.pdf, got %v", files)
		}
		if ct := files[0].Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected pdf content type, got %q", ct)
		}
		rw.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	c, err := NewClient(Config{BaseURL: ts.URL, Token: func() string { return "tok" }})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = c.SubirPresupuesto(context.Background(), "cita-1", "mano de obra 2h", []FileUpload{
		{Nombre: "presupuesto.pdf", ContentType: "application/pdf", Data: strings.NewReader("%PDF")},
	})
	if err != nil {
		t.Fatalf("subir presupuesto: %v", err)
	}
}

func TestClient_Login(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["usuario"] != "ana" || req["password"] != "secreto" {
			http.Error(rw, "invalid credentials", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(rw).Encode(Session{
			AccessToken: "tok-abc",
			ExpiresAt:   time.Now().Add(time.Hour),
			OperarioID:  "op-1",
			Nombre:      "Ana",
		})
	}))
	defer ts.Close()

	c, err := NewClient(Config{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	sess, err := c.Login(context.Background(), "ana", "secreto")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.AccessToken != "tok-abc" || sess.OperarioID != "op-1" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if _, err := c.Login(context.Background(), "ana", "mal"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestEstadoVisual(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC) }

	start := day(10)
	cita := func(startAt *time.Time, end time.Time, estado string) Cita {
		return Cita{FechaCita: startAt, FechaCitaFin: end, Estado: estado}
	}

	cases := []struct {
		name        string
		c           Cita
		pendingList bool
		wantLabel   string
	}{
		{"cerrada", cita(&start, day(10), "cerrada"), false, "Finalizada"},
		{"hoy", cita(&start, day(12), "abierta"), false, "Hoy"},
		{"pendiente por fechas", cita(nil, day(8), "abierta"), false, "Pendiente hace 2 días"},
		{"pendiente por listado", cita(nil, day(10), "abierta"), true, "Pendiente hoy"},
		{"mañana", cita(nil, day(11), "abierta"), false, "Mañana"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstadoVisual(now, tc.c, tc.pendingList)
			if got.Label != tc.wantLabel {
				t.Fatalf("expected label %q, got %q", tc.wantLabel, got.Label)
			}
		})
	}

	// fecha fin ausente: estado neutro, sin etiqueta
	neutral := EstadoVisual(now, Cita{Estado: "abierta"}, false)
	if neutral.Label != "" {
		t.Fatalf("expected neutral status for invalid dates, got %q", neutral.Label)
	}
}
