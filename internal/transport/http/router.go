package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wavegram/internal/handler"
	"wavegram/internal/httputil"
	authmw "wavegram/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	UserHandler  *handler.UserHandler
	PostHandler  *handler.PostHandler
	MediaHandler *handler.MediaHandler // nil when storage is not configured
	JWTSecret    string
}

// NewRouter creates and configures a new Chi router with all route groups.
// Everything except /health, signup and login sits behind the auth middleware.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes - no authentication required
		r.Post("/users/signup", cfg.UserHandler.SignUp)
		r.Post("/users/login", cfg.UserHandler.LogIn)

		// Protected routes - require a verified bearer token
		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

			r.Put("/users/{id}", cfg.UserHandler.Update)
			r.Post("/users/{id}/follow", cfg.UserHandler.Follow)
			r.Post("/users/{id}/unfollow", cfg.UserHandler.Unfollow)
			r.Post("/users/{id}/photo", cfg.UserHandler.UploadPhoto)

			r.Post("/posts", cfg.PostHandler.Create)
			r.Put("/posts/{id}", cfg.PostHandler.Update)
			r.Delete("/posts/{id}", cfg.PostHandler.Delete)
			r.Get("/posts/mine", cfg.PostHandler.ListMine)
			r.Get("/posts/follow", cfg.PostHandler.ListFollowed)
			r.Post("/posts/{id}/like", cfg.PostHandler.Like)
			r.Post("/posts/{id}/unlike", cfg.PostHandler.Unlike)
			r.Post("/posts/{id}/comment", cfg.PostHandler.Comment)

			if cfg.MediaHandler != nil {
				r.Post("/media/photos/presign", cfg.MediaHandler.PresignPhotoUpload)
			}
		})
	})

	return r
}
