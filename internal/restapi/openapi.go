package restapi

import (
	_ "embed"
	"net/http"

	"tltstops.dev/internal/logging"
)

//go:embed openapi.json
var openapiDocument []byte

// openapiHandler serves the OpenAPI 3 description of the API as is, without
// the response envelope.
func (api *RestAPI) openapiHandler(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	if _, err := w.Write(openapiDocument); err != nil {
		logging.LogError(api.Logger, "failed to write openapi document", err)
	}
}
