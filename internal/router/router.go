package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"shopassist/internal/handlers"
	"shopassist/internal/middleware"
)

func New(
	log *logrus.Logger,
	chatHandler *handlers.ChatHandler,
	allowedOrigins []string,
	sessionTTL time.Duration,
	rateLimitPerMin int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler)
	r.Use(middleware.Session(sessionTTL))

	// Chat rate limiter (per IP)
	chatLimiter := middleware.NewRateLimiter(rateLimitPerMin, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Chat Routes ────
		r.Group(func(r chi.Router) {
			r.Use(chatLimiter.Middleware)
			r.Post("/chat", chatHandler.Chat)
			r.Post("/bot", chatHandler.Bot)
		})

		// ──── History Routes ────
		r.Route("/history", func(r chi.Router) {
			r.Get("/", chatHandler.History)
			r.Delete("/", chatHandler.ClearHistory)
		})
	})

	return r
}
