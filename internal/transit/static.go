package transit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tltstops.dev/internal/feed"
	"tltstops.dev/internal/logging"
	"tltstops.dev/internal/models"
)

// Expected feed sizes, used to preallocate buffers.
const (
	routesSizeHint = 128 * 1024
	stopsSizeHint  = 90 * 1024
)

// streamFeed copies the body at url into w chunk by chunk.
func (manager *Manager) streamFeed(ctx context.Context, name, url string, w io.Writer) error {
	started := time.Now()

	body, err := manager.fetcher.OpenStream(ctx, url)
	if err != nil {
		return fmt.Errorf("open %s feed: %w: %w", name, ErrUpstream, err)
	}
	defer logging.SafeCloseWithLogging(body, manager.logger, name+" feed body")

	n, err := io.Copy(w, body)
	if err != nil {
		return fmt.Errorf("read %s feed: %w: %w", name, ErrUpstream, err)
	}

	logging.LogOperation(manager.logger, "static_feed_fetched",
		slog.String("feed", name),
		slog.Int64("bytes", n),
		slog.Duration("duration", time.Since(started)))
	return nil
}

// fetchRoutes downloads the route feed once and fills every cache derived
// from it.
func (manager *Manager) fetchRoutes(ctx context.Context) (models.RouteIndex, []string, error) {
	routes := feed.NewRouteParser(routesSizeHint)
	types := feed.NewTypeParser(0)

	if err := manager.streamFeed(ctx, "routes", manager.config.RoutesURL, io.MultiWriter(routes, types)); err != nil {
		return nil, nil, err
	}

	index, typeList := routes.Index(), types.Types()
	manager.caches.RoutesRaw.Set(routes.Bytes())
	manager.caches.RouteIndex.Set(index)
	manager.caches.Types.Set(typeList)

	manager.logger.Debug("route index built",
		slog.Int("types", len(typeList)),
		slog.Int("route_types_indexed", len(index)))
	return index, typeList, nil
}

func (manager *Manager) types(ctx context.Context) ([]string, error) {
	if types, ok := manager.caches.Types.Get(); ok {
		return types, nil
	}
	if raw, ok := manager.caches.RoutesRaw.Get(); ok {
		types := feed.ParseTypes(raw)
		manager.caches.Types.Set(types)
		return types, nil
	}
	_, types, err := manager.fetchRoutes(ctx)
	return types, err
}

func (manager *Manager) routeIndex(ctx context.Context) (models.RouteIndex, error) {
	if index, ok := manager.caches.RouteIndex.Get(); ok {
		return index, nil
	}
	if raw, ok := manager.caches.RoutesRaw.Get(); ok {
		index := feed.ParseRoutes(raw)
		manager.caches.RouteIndex.Set(index)
		return index, nil
	}
	index, _, err := manager.fetchRoutes(ctx)
	return index, err
}

func (manager *Manager) stopIndex(ctx context.Context) (models.StopIndex, error) {
	if index, ok := manager.caches.StopIndex.Get(); ok {
		return index, nil
	}
	if raw, ok := manager.caches.StopsRaw.Get(); ok {
		index := feed.ParseStops(raw)
		manager.caches.StopIndex.Set(index)
		return index, nil
	}

	stops := feed.NewStopParser(stopsSizeHint)
	if err := manager.streamFeed(ctx, "stops", manager.config.StopsURL, stops); err != nil {
		return nil, err
	}
	index := stops.Index()
	manager.caches.StopsRaw.Set(stops.Bytes())
	manager.caches.StopIndex.Set(index)

	manager.logger.Debug("stop index built", slog.Int("keys", len(index)))
	return index, nil
}
