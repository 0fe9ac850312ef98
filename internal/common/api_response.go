package common

import (
	"encoding/json"
	"net/http"
	"time"

	"infinite-experiment/airportd/internal/constants"
	"infinite-experiment/airportd/internal/logging"
	"infinite-experiment/airportd/internal/models/dtos"
)

// RespondJSON writes any document as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}

// RespondText writes a plain-text body with the given status code.
func RespondText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

// RespondError sends a standardized JSON error response.
func RespondError(w http.ResponseWriter, initTime time.Time, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
	}

	RespondJSON(w, code, response)
}
