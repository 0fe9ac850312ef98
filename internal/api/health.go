package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"infinite-experiment/airportd/internal/common"
	"infinite-experiment/airportd/internal/models/entities"
)

// StorePinger is satisfied by *sqlx.DB.
type StorePinger interface {
	PingContext(ctx context.Context) error
}

// AirportCounter reports how many airports are loaded.
type AirportCounter interface {
	CountAirports(ctx context.Context) (int64, error)
}

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the store is reachable and the dataset is loaded.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Failure 503 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(db StorePinger, counter AirportCounter, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)

		// Check store
		storeStatus := "ok"
		storeDetails := "Store Connected"
		if err := db.PingContext(ctx); err != nil {
			storeStatus = "down"
			storeDetails = err.Error()
		}
		services["store"] = entities.ServiceStatus{
			Status:  storeStatus,
			Details: storeDetails,
		}

		// Check dataset
		datasetStatus := "ok"
		var datasetDetails string
		if count, err := counter.CountAirports(ctx); err != nil {
			datasetStatus = "down"
			datasetDetails = err.Error()
		} else if count == 0 {
			datasetStatus = "down"
			datasetDetails = "No airports loaded"
		} else {
			datasetDetails = strconv.FormatInt(count, 10) + " airports loaded"
		}
		services["dataset"] = entities.ServiceStatus{
			Status:  datasetStatus,
			Details: datasetDetails,
		}

		overallStatus := "ok"
		code := http.StatusOK
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				code = http.StatusServiceUnavailable
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}
		common.RespondJSON(w, code, resp)
	}
}
