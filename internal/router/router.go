package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "citas-operario/docs"
	"citas-operario/internal/adapters/storage/files"
	mem "citas-operario/internal/adapters/storage/memory"
	pg "citas-operario/internal/adapters/storage/postgres"
	"citas-operario/internal/domain/appointments"
	"citas-operario/internal/domain/artifacts"
	authdom "citas-operario/internal/domain/auth"
	"citas-operario/internal/middleware"
	"citas-operario/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil: vale el login local

	// DevAuth desactiva la verificación de tokens: el operario se inyecta
	// con el header X-Debug-Operario-ID (tests y dev local).
	DevAuth bool

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: directorio para los archivos subidos. Si no viene, los
	// bytes se quedan en memoria (tests y dev).
	UploadDir string
}

func NewRouter(opts Options) http.Handler {
	var (
		citasRepo     appointments.Repository
		artifactsRepo artifacts.Repository
		authRepo      authdom.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		citasRepo = pg.NewAppointmentsRepo(db)
		artifactsRepo = pg.NewArtifactsRepo(db)
		authRepo = pg.NewAuthRepo(db)
	} else {
		citasRepo = mem.NewAppointmentsRepo()
		artifactsRepo = mem.NewArtifactsRepo()
		authRepo = mem.NewAuthRepo()
	}

	var blobs artifacts.BlobStore
	if opts.UploadDir != "" {
		blobs = files.NewLocalStore(opts.UploadDir, "/uploads")
	} else {
		blobs = mem.NewBlobStore()
	}

	// Services por módulo
	citasSvc := appointments.NewService(citasRepo)
	artifactsSvc := artifacts.NewService(artifactsRepo, blobs)
	authSvc := authdom.NewService(authRepo)

	// Si nadie trae un verifier externo (SSO), los tokens del login local
	// valen como Bearer. En DevAuth el middleware queda sin verifier y
	// acepta el header de debug.
	verifier := opts.AuthVerifier
	if verifier == nil && !opts.DevAuth {
		verifier = authdom.NewVerifier(authSvc)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	// Rutas por módulo. Citas y artefactos comparten el prefijo /cita.
	authdom.RegisterRoutes(r, authSvc)
	r.Route("/cita", func(cr chi.Router) {
		appointments.RegisterRoutes(cr, citasSvc, artifactsSvc)
		artifacts.RegisterRoutes(cr, artifactsSvc, citasSvc)
	})

	return r
}
