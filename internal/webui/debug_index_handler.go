// Package webui serves a development page that dumps the transit indices.
package webui

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"github.com/julienschmidt/httprouter"

	"tltstops.dev/internal/models"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dataTypes = []string{"types", "routes", "stops"}

// contentSecurityPolicy replaces the API-wide policy for the page so that its
// inline stylesheet applies.
const contentSecurityPolicy = "default-src 'none'; style-src 'unsafe-inline'; frame-ancestors 'none';"

// Source is the part of the transit manager the debug page reads.
type Source interface {
	Types(ctx context.Context) ([]string, error)
	RouteIndex(ctx context.Context) (models.RouteIndex, error)
	StopIndex(ctx context.Context) (models.StopIndex, error)
}

type WebUI struct {
	source Source
}

func New(source Source) *WebUI {
	return &WebUI{source: source}
}

func (webUI *WebUI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug", webUI.debugIndexHandler)
}

type debugData struct {
	Title string
	Pre   string
	Links []string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   spew.Sdump(data),
		Links: dataTypes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		data  interface{}
		title string
		err   error
	)
	switch r.URL.Query().Get("dataType") {
	case "types":
		data, err = webUI.source.Types(ctx)
		title = "Transport types"
	case "routes":
		data, err = webUI.source.RouteIndex(ctx)
		title = "Route index"
	case "stops":
		data, err = webUI.source.StopIndex(ctx)
		title = "Stop index"
	default:
		data = map[string][]string{"dataType": dataTypes}
		title = "Choose a data type"
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeDebugData(w, title, data)
}
