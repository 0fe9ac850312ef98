package routes

import (
	"infinite-experiment/airportd/internal/api"

	"github.com/go-chi/chi/v5"
)

// RegisterAirportRoutes registers the airport lookup routes
func RegisterAirportRoutes(r chi.Router, deps *api.Dependencies) {
	lookup := api.GetAirportByCodeHandler(deps.Services.Lookup)

	r.Get("/airport/{iata_code}", lookup)
	// An empty code is a valid lookup that never matches.
	r.Get("/airport/", lookup)
}
