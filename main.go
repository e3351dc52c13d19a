package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thecodedeck/cookie-server/internal/auth"
	"github.com/thecodedeck/cookie-server/internal/config"
	"github.com/thecodedeck/cookie-server/internal/db"
	"github.com/thecodedeck/cookie-server/internal/logger"
	"github.com/thecodedeck/cookie-server/internal/middleware"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	log := logger.New("server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := auth.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate auth tables")
	}

	users := auth.NewGormCredentialStore(gdb)
	sessions := auth.NewGormSessionStore(gdb)
	svc := auth.NewService(users, sessions, auth.BcryptHasher{}, cfg.SessionTTL, log)
	handler := auth.NewHandler(svc, cfg.SessionSecret, cfg.CookieSecure)
	fetcher := auth.SessionInfo{Sessions: sessions}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)
	auth.SetupRoutes(r, handler, fetcher, cfg.SessionSecret)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
