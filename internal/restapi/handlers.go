package restapi

import (
	"net/http"
	"time"

	"tltstops.dev/internal/app"
	"tltstops.dev/internal/models"
	"tltstops.dev/internal/utils"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewOKResponse(models.NewHealthStatus(time.Now(), app.Version)))
}

func (api *RestAPI) typesHandler(w http.ResponseWriter, r *http.Request) {
	types, err := api.TransitManager.Types(r.Context())
	if err != nil {
		api.transitErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(types))
}

func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	transportType := utils.PathParam(r, "type")
	if fieldErrors := validateIDParams(map[string]string{"type": transportType}); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	routes, err := api.TransitManager.Routes(r.Context(), transportType)
	if err != nil {
		api.transitErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(routes))
}

func (api *RestAPI) directionsHandler(w http.ResponseWriter, r *http.Request) {
	transportType := utils.PathParam(r, "type")
	number := utils.PathParam(r, "number")
	if fieldErrors := validateIDParams(map[string]string{"type": transportType, "number": number}); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	directions, err := api.TransitManager.Directions(r.Context(), transportType, number)
	if err != nil {
		api.transitErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(directions))
}

func (api *RestAPI) stopsHandler(w http.ResponseWriter, r *http.Request) {
	transportType := utils.PathParam(r, "type")
	number := utils.PathParam(r, "number")
	direction := utils.PathParam(r, "direction")

	if fieldErrors := validateIDParams(map[string]string{"type": transportType, "number": number}); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	// An unknown type or route is reported before a malformed direction.
	if err := utils.ValidateDirection(direction); err != nil {
		if _, routeErr := api.TransitManager.Directions(r.Context(), transportType, number); routeErr != nil {
			api.transitErrorResponse(w, r, routeErr)
			return
		}
		api.validationErrorResponse(w, r, map[string][]string{"direction": {err.Error()}})
		return
	}

	stops, err := api.TransitManager.Stops(r.Context(), transportType, number, direction)
	if err != nil {
		api.transitErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(stops))
}

func (api *RestAPI) arrivalsHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := utils.ParseStopIDs(r.URL.Query().Get("stops"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"stops": {err.Error()}})
		return
	}

	stops, err := api.TransitManager.Arrivals(r.Context(), ids)
	if err != nil {
		api.transitErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(models.ArrivalsResponse{Stops: stops}))
}

// validateIDParams returns nil when every named value is a valid id.
func validateIDParams(params map[string]string) map[string][]string {
	var fieldErrors map[string][]string
	for name, value := range params {
		if err := utils.ValidateID(value); err != nil {
			if fieldErrors == nil {
				fieldErrors = make(map[string][]string)
			}
			fieldErrors[name] = append(fieldErrors[name], err.Error())
		}
	}
	return fieldErrors
}
