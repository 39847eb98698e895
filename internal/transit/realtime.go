package transit

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"tltstops.dev/internal/logging"
	"tltstops.dev/internal/models"
)

// state is the resolution progress of one requested stop id:
//
//	unresolved -> invalid              (terminal)
//	unresolved -> valid -> ready       (terminal)
type state interface {
	isState()
}

type (
	unresolved struct{ id string }
	invalid    struct{}
	valid      struct{ stop *models.StopRecord }
	ready      struct{ arrivals *models.StopArrivals }
)

func (unresolved) isState() {}
func (invalid) isState()    {}
func (valid) isState()      {}
func (ready) isState()      {}

// Arrivals returns upcoming departures for each requested stop id, in
// request order. Unknown ids yield nil entries. Stops missing from the
// arrivals cache are refreshed with a single batched upstream call.
func (manager *Manager) Arrivals(ctx context.Context, ids []string) ([]*models.StopArrivals, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	stops, err := manager.stopIndex(ctx)
	if err != nil {
		return nil, err
	}

	states := make([]state, len(ids))
	for i, id := range ids {
		states[i] = validate(unresolved{id: id}, stops)
	}
	manager.resolveFromCache(states)

	if batch := pendingSiriIDs(states); len(batch) > 0 {
		if err := manager.refreshArrivals(ctx, batch, stops); err != nil {
			return nil, err
		}
		manager.resolveFromCache(states)
	}

	return finalize(states)
}

func validate(s state, stops models.StopIndex) state {
	switch s := s.(type) {
	case unresolved:
		if stop, ok := stops.Lookup(s.id); ok {
			return valid{stop: stop}
		}
		return invalid{}
	case invalid, valid, ready:
		return s
	default:
		panic(fmt.Sprintf("transit: unknown resolution state %T", s))
	}
}

// resolveFromCache moves every valid state whose arrivals are cached to ready.
func (manager *Manager) resolveFromCache(states []state) {
	for i, s := range states {
		switch s := s.(type) {
		case valid:
			if arrivals, ok := manager.caches.Arrivals.Get(s.stop.SiriID); ok {
				states[i] = ready{arrivals: arrivals}
			}
		case unresolved, invalid, ready:
		default:
			panic(fmt.Sprintf("transit: unknown resolution state %T", s))
		}
	}
}

// pendingSiriIDs returns the distinct siri ids of valid states in first-seen
// order.
func pendingSiriIDs(states []state) []string {
	var batch []string
	seen := make(map[string]struct{}, len(states))
	for _, s := range states {
		v, ok := s.(valid)
		if !ok {
			continue
		}
		if _, dup := seen[v.stop.SiriID]; dup {
			continue
		}
		seen[v.stop.SiriID] = struct{}{}
		batch = append(batch, v.stop.SiriID)
	}
	return batch
}

func finalize(states []state) ([]*models.StopArrivals, error) {
	result := make([]*models.StopArrivals, len(states))
	for i, s := range states {
		switch s := s.(type) {
		case ready:
			result[i] = s.arrivals
		case invalid:
			result[i] = nil
		case unresolved:
			return nil, fmt.Errorf("stop %q: %w", s.id, ErrUnresolvedStop)
		case valid:
			return nil, fmt.Errorf("stop %q (siri id %q): %w", s.stop.ID, s.stop.SiriID, ErrUnresolvedStop)
		default:
			return nil, fmt.Errorf("stop #%d in state %T: %w", i, s, ErrUnresolvedStop)
		}
	}
	return result, nil
}

// refreshArrivals fetches arrivals for all of siriIDs in one call and caches
// every stop of the response as it is parsed.
func (manager *Manager) refreshArrivals(ctx context.Context, siriIDs []string, stops models.StopIndex) error {
	started := time.Now()
	requestURL, err := ArrivalsURL(manager.config.ArrivalsURL, siriIDs)
	if err != nil {
		return err
	}

	payload, err := manager.fetcher.FetchText(ctx, requestURL)
	if err != nil {
		return fmt.Errorf("fetch arrivals: %w: %w", ErrUpstream, err)
	}

	stored := 0
	err = manager.parser.Parse(payload, stops, func(siriID string, arrivals *models.StopArrivals) {
		if manager.caches.Arrivals.Set(siriID, arrivals) {
			stored++
		}
	})
	if err != nil {
		logging.LogError(manager.logger, "arrivals response rejected", err,
			slog.Int("stored_before_error", stored))
		return fmt.Errorf("parse arrivals: %w", err)
	}

	logging.LogOperation(manager.logger, "arrivals_batch_refreshed",
		slog.String("stop_ids", strings.Join(siriIDs, ",")),
		slog.Int("stops_stored", stored),
		slog.Duration("duration", time.Since(started)))
	return nil
}

// ArrivalsURL adds the comma-joined siri ids to the departures endpoint.
func ArrivalsURL(base string, siriIDs []string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("arrivals url %q: %w", base, err)
	}
	query := u.Query()
	query.Set("stopid", strings.Join(siriIDs, ","))
	u.RawQuery = strings.ReplaceAll(query.Encode(), "%2C", ",")
	return u.String(), nil
}
