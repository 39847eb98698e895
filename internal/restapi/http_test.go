package restapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"tltstops.dev/internal/app"
	"tltstops.dev/internal/appconf"
	"tltstops.dev/internal/logging"
	"tltstops.dev/internal/models"
)

// fakeUpstream serves the testdata feeds the way the public transport
// portal does and records the stop ids of each departures request.
type fakeUpstream struct {
	*httptest.Server
	mu            sync.Mutex
	arrivalStatus int
	stopQueries   []string
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	upstream := &fakeUpstream{arrivalStatus: http.StatusOK}

	feeds := map[string][]byte{
		"/data/routes.txt":           models.ReadFixture(t, "routes.txt"),
		"/data/stops.txt":            models.ReadFixture(t, "stops.txt"),
		"/siri-stop-departures.php": models.ReadFixture(t, "departures.txt"),
	}

	upstream.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := feeds[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		status := http.StatusOK
		if r.URL.Path == "/siri-stop-departures.php" {
			upstream.mu.Lock()
			upstream.stopQueries = append(upstream.stopQueries, r.URL.Query().Get("stopid"))
			status = upstream.arrivalStatus
			upstream.mu.Unlock()
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(upstream.Close)
	return upstream
}

func (u *fakeUpstream) setArrivalStatus(status int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.arrivalStatus = status
}

func (u *fakeUpstream) queries() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.stopQueries...)
}

// createTestApi creates a RestAPI whose feeds point at a fake upstream.
func createTestApi(t *testing.T) (*RestAPI, *fakeUpstream) {
	t.Helper()
	upstream := newFakeUpstream(t)

	config := appconf.Default()
	config.EnvName = appconf.Test.String()
	config.Feeds = appconf.FeedsConfig{
		RoutesURL:   upstream.URL + "/data/routes.txt",
		StopsURL:    upstream.URL + "/data/stops.txt",
		ArrivalsURL: upstream.URL + "/siri-stop-departures.php",
	}
	config.Upstream.MaxRetries = 0

	application, err := app.New(config, logging.NewStructuredLogger(&bytes.Buffer{}, slog.LevelDebug))
	require.NoError(t, err)

	return NewRestAPI(application), upstream
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *fakeUpstream, *http.Response, models.ResponseModel) {
	api, upstream := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, upstream, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	resp := serveApiAndGet(t, api, endpoint)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err := json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

func serveApiAndGet(t *testing.T, api *RestAPI, endpoint string) *http.Response {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	return resp
}

// decodeData re-decodes the generic data field into a concrete type.
func decodeData[T any](t *testing.T, model models.ResponseModel) T {
	t.Helper()
	raw, err := json.Marshal(model.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
