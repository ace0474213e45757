// Package router wires the HTTP routes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/easeaico/zetazen/internal/http/handlers"
	httpmiddleware "github.com/easeaico/zetazen/internal/http/middleware"
	"github.com/easeaico/zetazen/pkg/logging"
)

// Config holds router dependencies.
type Config struct {
	Logger             *logging.Logger
	Sessions           *handlers.SessionHandler
	Messages           *handlers.MessageHandler
	Moods              *handlers.MoodHandler
	Chat               *handlers.ChatHandler
	Auth               *handlers.AuthHandler
	SessionResolver    httpmiddleware.SessionResolver
	TokenParser        httpmiddleware.TokenParser
	DB                 handlers.Pinger
	MetricsHandler     http.Handler
	RateLimiter        *httpmiddleware.RateLimiter
	CORSAllowedOrigins []string
}

// New creates the chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))

	r.Get("/health", handlers.Health(cfg.DB))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimiter != nil {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimiter))
		}

		api.Get("/resources", handlers.Resources)
		api.Post("/sessions/upsert", cfg.Sessions.Upsert)
		api.Post("/gemini", cfg.Chat.Gemini)

		api.Group(func(anon chi.Router) {
			anon.Use(httpmiddleware.AnonSession(cfg.SessionResolver))
			anon.Get("/messages", cfg.Messages.List)
			anon.Post("/messages", cfg.Messages.Create)
			anon.Get("/moods", cfg.Moods.List)
			anon.Post("/moods", cfg.Moods.Create)
			anon.Delete("/moods", cfg.Moods.Delete)
			anon.Get("/moods/summary", cfg.Moods.Summary)
			anon.Post("/chat", cfg.Chat.Send)
		})

		api.Post("/auth/register", cfg.Auth.Register)
		api.Post("/auth/login", cfg.Auth.Login)
		api.Group(func(user chi.Router) {
			user.Use(httpmiddleware.UserJWT(cfg.TokenParser))
			user.Get("/auth/me", cfg.Auth.Me)
			user.Patch("/users/update", cfg.Auth.UpdateProfile)
		})
	})

	return r
}
