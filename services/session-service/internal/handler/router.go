package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/usecase"
	"github.com/vasapolrittideah/drowsiness-api/shared/auth"
	"github.com/vasapolrittideah/drowsiness-api/shared/middleware"
	"github.com/vasapolrittideah/drowsiness-api/shared/response"
	"github.com/vasapolrittideah/drowsiness-api/shared/validator"
)

// RouterParams holds the dependencies of the HTTP API.
type RouterParams struct {
	SessionUsecase usecase.SessionUsecase
	APIKeyAuth     auth.APIKeyAuthenticator
	Validator      *validator.Validator
	Logger         *zerolog.Logger
	AllowedOrigins []string
}

// NewRouter wires the health and session routes. Only /sessions is guarded by the API key.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(params.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: params.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", Health)

	sessions := newSessionHTTPHandler(params.SessionUsecase, params.Validator, params.Logger)
	r.Route("/sessions", func(r chi.Router) {
		r.Use(middleware.RequireAPIKey(params.APIKeyAuth, params.Logger))
		r.Post("/", sessions.CreateSession)
		r.Get("/", sessions.ListSessions)
	})

	return r
}

// Health reports liveness only; it never touches storage.
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
