package transit

import (
	"context"
	"fmt"
	"slices"

	"tltstops.dev/internal/models"
)

// UnknownStopName is reported for stops listed by a route but missing from
// the stop feed.
const UnknownStopName = "Can't resolve stop name"

// Types lists the distinct transport types, sorted.
func (manager *Manager) Types(ctx context.Context) ([]string, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.types(ctx)
}

// RouteIndex returns the full route index. The index is shared with the
// cache and must not be modified.
func (manager *Manager) RouteIndex(ctx context.Context) (models.RouteIndex, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.routeIndex(ctx)
}

// StopIndex returns the stop index keyed by both stop id and siri id. The
// index is shared with the cache and must not be modified.
func (manager *Manager) StopIndex(ctx context.Context) (models.StopIndex, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.stopIndex(ctx)
}

// Routes lists the route numbers of a transport type, sorted.
func (manager *Manager) Routes(ctx context.Context, transportType string) ([]string, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	routes, err := manager.routesOfType(ctx, transportType)
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(routes))
	for number := range routes {
		numbers = append(numbers, number)
	}
	slices.Sort(numbers)
	return numbers, nil
}

// Directions lists the direction names of a route, sorted.
func (manager *Manager) Directions(ctx context.Context, transportType, number string) ([]string, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	route, err := manager.route(ctx, transportType, number)
	if err != nil {
		return nil, err
	}
	directions := make([]string, 0, len(route.Directions))
	for direction := range route.Directions {
		directions = append(directions, direction)
	}
	slices.Sort(directions)
	return directions, nil
}

// Stops lists the stops of one direction of a route in travel order.
func (manager *Manager) Stops(ctx context.Context, transportType, number, direction string) ([]models.StopEntry, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	route, err := manager.route(ctx, transportType, number)
	if err != nil {
		return nil, err
	}
	stopIDs, ok := route.Directions[direction]
	if !ok {
		return nil, fmt.Errorf("direction %q of %s route %q: %w", direction, transportType, number, ErrNotFound)
	}

	stops, err := manager.stopIndex(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]models.StopEntry, 0, len(stopIDs))
	for _, id := range stopIDs {
		name := UnknownStopName
		if stop, ok := stops.Lookup(id); ok {
			name = stop.Name
		}
		entries = append(entries, models.StopEntry{ID: id, Name: name})
	}
	return entries, nil
}

func (manager *Manager) routesOfType(ctx context.Context, transportType string) (map[string]*models.RouteGroup, error) {
	index, err := manager.routeIndex(ctx)
	if err != nil {
		return nil, err
	}
	routes, ok := index[transportType]
	if !ok {
		return nil, fmt.Errorf("transport type %q: %w", transportType, ErrNotFound)
	}
	return routes, nil
}

func (manager *Manager) route(ctx context.Context, transportType, number string) (*models.RouteGroup, error) {
	routes, err := manager.routesOfType(ctx, transportType)
	if err != nil {
		return nil, err
	}
	route, ok := routes[number]
	if !ok {
		return nil, fmt.Errorf("%s route %q: %w", transportType, number, ErrNotFound)
	}
	return route, nil
}
