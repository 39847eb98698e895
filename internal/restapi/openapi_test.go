package restapi

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openapiDoc struct {
	OpenAPI string `json:"openapi"`
	Info    struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
	Paths map[string]map[string]json.RawMessage `json:"paths"`
}

var routeParam = regexp.MustCompile(`:([a-z]+)`)

func TestOpenAPIDocumentCoversEveryRoute(t *testing.T) {
	var doc openapiDoc
	require.NoError(t, json.Unmarshal(openapiDocument, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "TLT Stops API", doc.Info.Title)

	api, _ := createTestApi(t)
	routes := api.routes()
	require.NotEmpty(t, routes)

	for _, route := range routes {
		path := routeParam.ReplaceAllString(route.path, "{$1}")
		operations, ok := doc.Paths[path]
		if assert.True(t, ok, "%s is not documented", path) {
			assert.Contains(t, operations, "get", path)
		}
	}
	assert.Len(t, doc.Paths, len(routes), "every documented path is routed")
}

func TestOpenAPIHandler(t *testing.T) {
	api, _ := createTestApi(t)
	resp := serveApiAndGet(t, api, "/api/openapi.json")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, string(openapiDocument), string(body))
}
