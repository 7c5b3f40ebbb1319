package main

import (
	"net/http"
	"os"
	"time"

	"citas-operario/internal/adapters/auth/sso"
	"citas-operario/internal/platform/logger"
	"citas-operario/internal/ports/auth"
	"citas-operario/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env es opcional; en producción todo viene del entorno.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Con SSO_BASE_URL configurado los tokens se verifican contra el SSO
	// corporativo; si no, valen los del login local (/auth/login).
	var verifier auth.AuthVerifier
	if base := os.Getenv("SSO_BASE_URL"); base != "" {
		client, err := sso.NewClient(sso.Config{
			BaseURL:      base,
			APIKey:       os.Getenv("SSO_API_KEY"),
			APIKeyHeader: os.Getenv("SSO_API_KEY_HEADER"),
		})
		if err != nil {
			log.Error("sso client init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = sso.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		UploadDir:    os.Getenv("UPLOAD_DIR"),
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // las subidas multipart tardan más que un GET
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
