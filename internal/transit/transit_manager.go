// Package transit serves routes, stops and real-time arrivals from the
// upstream feeds, caching both raw feed bytes and the indices built from
// them.
package transit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"tltstops.dev/internal/arrivals"
	"tltstops.dev/internal/logging"
)

var (
	// ErrNotFound is wrapped by errors for unknown types, routes and directions.
	ErrNotFound = errors.New("not found")
	// ErrUpstream is wrapped by errors from fetching a feed.
	ErrUpstream = errors.New("upstream unavailable")
	// ErrUnresolvedStop means the upstream was asked for a stop and did not
	// return it.
	ErrUnresolvedStop = errors.New("stop arrivals could not be resolved")
)

// Fetcher is the upstream transport.
type Fetcher interface {
	OpenStream(ctx context.Context, url string) (io.ReadCloser, error)
	FetchText(ctx context.Context, url string) ([]byte, error)
}

// Manager answers transit queries. It handles one operation at a time: every
// exported method holds the manager lock until it returns, network calls
// included.
type Manager struct {
	mu      sync.Mutex
	config  Config
	caches  *Caches
	fetcher Fetcher
	parser  *arrivals.Parser
	logger  *slog.Logger
}

// NewManager wires a manager to its caches and upstream. A nil logger
// discards log output.
func NewManager(config Config, caches *Caches, fetcher Fetcher, logger *slog.Logger) *Manager {
	config = config.withDefaults()
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		config:  config,
		caches:  caches,
		fetcher: fetcher,
		parser:  &arrivals.Parser{Location: config.Location, Now: config.Clock},
		logger:  logger.With(slog.String("component", "transit_manager")),
	}
}

// Caches exposes the cache state the manager reads and fills.
func (manager *Manager) Caches() *Caches {
	return manager.caches
}
