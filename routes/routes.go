package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/storyarchive/content-api/app"
	"github.com/storyarchive/content-api/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Logger)
	contentHandler := handlers.NewContentHandler(deps.Contents, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.DB.DB, deps.Logger)

	// Health check endpoints
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// Credential endpoints
	r.Post("/signup", authHandler.HandleSignup)
	r.Post("/login", authHandler.HandleLogin)

	// Content endpoints: reads are public, mutations require a session token
	r.Route("/content", func(r chi.Router) {
		r.Get("/", contentHandler.HandleListContents)
		r.Get("/{id}", contentHandler.HandleGetContent)

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Post("/", contentHandler.HandleCreateContent)
			r.Put("/{id}", contentHandler.HandleUpdateContent)
			r.Delete("/{id}", contentHandler.HandleDeleteContent)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"Route not found"}`))
	})

	return r
}
