package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/lcac-club/clubsite/internal/api"
	"github.com/lcac-club/clubsite/internal/api/handlers"
	"github.com/lcac-club/clubsite/internal/api/middleware"
)

type RouterConfig struct {
	AdminToken      string
	DataHandler     *handlers.DataHandler
	ChatHandler     *handlers.ChatHandler
	SocialHandler   *handlers.SocialHandler
	ProjectsHandler *handlers.ProjectsFeedHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	// The site is served statically from anywhere; the API stays open
	// to any origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.AdminTokenHeader},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/data", cfg.DataHandler.Get)
	r.Post("/chat", cfg.ChatHandler.Post)
	r.Get("/social-cache", cfg.SocialHandler.GetCache)
	r.Get("/projects-feed", cfg.ProjectsHandler.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminTokenAuth(cfg.AdminToken))

		r.Post("/data", cfg.DataHandler.Post)
		r.Post("/social-refresh", cfg.SocialHandler.Refresh)
	})

	return r
}
