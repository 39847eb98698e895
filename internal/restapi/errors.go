package restapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tltstops.dev/internal/arrivals"
	"tltstops.dev/internal/logging"
	"tltstops.dev/internal/models"
	"tltstops.dev/internal/transit"
)

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "internal server error", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	api.sendResponse(w, r, models.NewResponse(http.StatusInternalServerError, nil, "internal server error"))
}

// badGatewayResponse reports a failed or unusable upstream response.
func (api *RestAPI) badGatewayResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "upstream error", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	api.sendResponse(w, r, models.NewResponse(http.StatusBadGateway, nil, "upstream unavailable"))
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusMethodNotAllowed, nil, "method not allowed"))
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	// Create response with the required format for validation errors
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		logging.LogError(api.Logger, "failed to encode validation error response", err)
	}
}

// transitErrorResponse maps a transit manager error to a response.
func (api *RestAPI) transitErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, transit.ErrNotFound):
		api.sendNotFound(w, r)
	case errors.Is(err, transit.ErrUpstream),
		errors.Is(err, arrivals.ErrDecode),
		errors.Is(err, arrivals.ErrMalformedLine),
		errors.Is(err, arrivals.ErrNonExistentLocalTime),
		errors.Is(err, arrivals.ErrUnknownStop):
		api.badGatewayResponse(w, r, err)
	default:
		api.serverErrorResponse(w, r, err)
	}
}
