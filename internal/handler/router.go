package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/getcovered/userapi-go/internal/middleware"
	"github.com/getcovered/userapi-go/internal/service"
)

// Services groups what the router dispatches to.
type Services struct {
	Auth      *service.AuthService
	Profile   *service.ProfileService
	Generator *service.GeneratorService
}

// NewRouter wires the HTTP routes, the middleware chain and CORS for the
// given origins.
func NewRouter(svc Services, allowedOrigins []string, logger *slog.Logger) http.Handler {
	authHandler := NewAuthHandler(svc.Auth, logger)
	profileHandler := NewProfileHandler(svc.Profile, logger)
	genHandler := NewGeneratorHandler(svc.Generator, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", HandleRoot)
	r.Get("/health", HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/password/suggest", genHandler.HandleSuggest)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireBearer)
			r.Get("/profile", profileHandler.HandleGetProfile)
			r.Put("/profile", profileHandler.HandleUpdateProfile)
		})
	})

	return r
}
