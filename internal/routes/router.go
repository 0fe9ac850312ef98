package routes

import (
	"net/http"
	"time"

	"infinite-experiment/airportd/internal/api"
	"infinite-experiment/airportd/internal/logging"
	"infinite-experiment/airportd/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions carries the transport settings that are not part of the dependency graph.
type RouterOptions struct {
	UpSince        time.Time
	AllowedOrigins []string
	// RateLimitRPS of 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

func RegisterRoutes(deps *api.Dependencies, opts RouterOptions) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(chimiddleware.Recoverer)

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if opts.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Middleware)
	}

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.SQLX, deps.Repo.AirportJoin, opts.UpSince))

	RegisterAirportRoutes(r, deps)

	return r
}
