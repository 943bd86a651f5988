package server

import (
	"net/http"

	"beemo-api/internal/config"
	"beemo-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func NewRouter(cfg *config.Config, logger zerolog.Logger, health *HealthHandler, lol *LolHandler, game *GameHandler, auth *AuthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not_found", "Route not found")
	})

	health.Register(r)
	lol.Register(r)
	game.Register(r)
	auth.Register(r)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
