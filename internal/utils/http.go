package utils

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// PathParam returns the decoded value of a router path parameter.
func PathParam(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName(paramName)
}
