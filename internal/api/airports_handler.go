package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"infinite-experiment/airportd/internal/common"
	"infinite-experiment/airportd/internal/constants"
	reqctx "infinite-experiment/airportd/internal/context"
	"infinite-experiment/airportd/internal/logging"
	"infinite-experiment/airportd/internal/models/dtos"
	"infinite-experiment/airportd/internal/services"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
)

// AirportLookup is the part of the lookup service the handler depends on.
type AirportLookup interface {
	FindAirportByIATACode(ctx context.Context, code string) (*dtos.AirportResponse, error)
}

// GetAirportByCodeHandler handles GET /airport/{iata_code}
// The raw path value is passed through; normalization belongs to the lookup service.
//
// @Summary Get airport by IATA code
// @Tags Airports
// @Success 200 {object} dtos.AirportResponse
// @Failure 404 {string} string "Airport not found"
// @Router /airport/{iata_code} [get]
func GetAirportByCodeHandler(svc AirportLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		code := chi.URLParam(r, "iata_code")

		resp, err := svc.FindAirportByIATACode(r.Context(), code)
		if err != nil {
			if errors.Is(err, services.ErrAirportNotFound) {
				common.RespondText(w, http.StatusNotFound, constants.MsgAirportNotFound)
				return
			}

			logging.WithRequest(reqctx.GetRequestID(r.Context()), "/airport/{iata_code}").
				Errorw("Airport lookup failed", "code", code, "error", err.Error())
			sentry.CaptureException(err)

			common.RespondError(w, initTime, constants.MsgAirportLookupFailed, http.StatusInternalServerError)
			return
		}

		common.RespondJSON(w, http.StatusOK, resp)
	}
}
