package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes wires every endpoint. Read endpoints whose shape depends on the
// viewer get the optional guard; mutations and self-scoped reads get the
// mandatory one.
func setupRoutes(r chi.Router, handlers *routeHandlers, guard authMiddleware) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("API running"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", handlers.userHandler.syncUser())
		r.Get("/", handlers.userHandler.getAllUsers())
		r.Delete("/{userID}", handlers.userHandler.deleteUser())

		r.Group(func(r chi.Router) {
			r.Use(guard.authenticate)
			r.Get("/me", handlers.userHandler.getMe())
			r.Put("/me", handlers.userHandler.updateMe())
		})
	})

	r.Route("/api/projects", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(guard.authenticateOptional)
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Get("/{projectID}", handlers.projectHandler.getProject())
		})

		r.Group(func(r chi.Router) {
			r.Use(guard.authenticate)
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/me", handlers.projectHandler.getMyProjects())
			r.Patch("/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
			r.Post("/{projectID}/like", handlers.projectHandler.likeProject())
			r.Delete("/{projectID}/like", handlers.projectHandler.unlikeProject())
		})
	})

	r.Route("/api/comments", func(r chi.Router) {
		r.Get("/{projectID}", handlers.commentHandler.getComments())

		r.Group(func(r chi.Router) {
			r.Use(guard.authenticate)
			r.Post("/{projectID}", handlers.commentHandler.addComment())
			r.Delete("/{commentID}", handlers.commentHandler.deleteComment())
		})
	})

	r.Route("/api/upload", func(r chi.Router) {
		r.Post("/", handlers.uploadHandler.uploadImage())
		r.Post("/avatar", handlers.uploadHandler.uploadAvatar())
	})
}
