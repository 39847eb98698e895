package app

import (
	"fmt"
	"log/slog"
	"time"

	"tltstops.dev/internal/appconf"
	"tltstops.dev/internal/transit"
	"tltstops.dev/internal/upstream"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config         appconf.Config
	TransitConfig  transit.Config
	Logger         *slog.Logger
	TransitManager *transit.Manager
}

// Version is reported by the health endpoint.
const Version = "0.1.0"

// New builds the transit stack described by config: one cache set, one
// upstream client and the manager that owns both.
func New(config appconf.Config, logger *slog.Logger) (*Application, error) {
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", config.Timezone, err)
	}

	transitConfig := transit.Config{
		RoutesURL:   config.Feeds.RoutesURL,
		StopsURL:    config.Feeds.StopsURL,
		ArrivalsURL: config.Feeds.ArrivalsURL,
		Location:    loc,
		TTL:         config.Cache,
		Clock:       time.Now,
	}

	client := upstream.NewClient(config.Upstream, logger.With(slog.String("component", "upstream_client")))
	caches := transit.NewCaches(transitConfig.TTL, transitConfig.Clock)

	return &Application{
		Config:         config,
		TransitConfig:  transitConfig,
		Logger:         logger,
		TransitManager: transit.NewManager(transitConfig, caches, client, logger),
	}, nil
}
