package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tltstops.dev/internal/appconf"
	"tltstops.dev/internal/webui"
)

type apiRoute struct {
	path    string
	handler http.HandlerFunc
}

// routes lists every GET endpoint of the API. Each one is described in
// openapi.json.
func (api *RestAPI) routes() []apiRoute {
	return []apiRoute{
		{"/api/health", api.healthHandler},
		{"/api/openapi.json", api.openapiHandler},
		{"/api/types", api.typesHandler},
		{"/api/types/:type/routes", api.routesHandler},
		{"/api/types/:type/routes/:number/directions", api.directionsHandler},
		{"/api/types/:type/routes/:number/directions/:direction/stops", api.stopsHandler},
		{"/api/arrivals", api.arrivalsHandler},
	}
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	for _, route := range api.routes() {
		router.HandlerFunc(http.MethodGet, route.path, route.handler)
	}

	if api.Config.Env() == appconf.Development {
		webui.New(api.TransitManager).SetRoutes(router)
	}

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}
