package transit

import (
	"tltstops.dev/internal/cache"
	"tltstops.dev/internal/models"
)

// Caches is the process-wide cache state. Raw feed bytes and the indices
// derived from them expire independently, so a cold index can be rebuilt
// from warm bytes without a network call.
type Caches struct {
	RoutesRaw  *cache.Slot[[]byte]
	RouteIndex *cache.Slot[models.RouteIndex]
	StopsRaw   *cache.Slot[[]byte]
	StopIndex  *cache.Slot[models.StopIndex]
	Types      *cache.Slot[[]string]
	// Arrivals is keyed by siri id.
	Arrivals *cache.Keyed[string, *models.StopArrivals]
}

func NewCaches(ttl TTLConfig, clock cache.Clock) *Caches {
	return &Caches{
		RoutesRaw:  cache.NewSlot[[]byte](ttl.RoutesRaw, clock),
		RouteIndex: cache.NewSlot[models.RouteIndex](ttl.RouteIndex, clock),
		StopsRaw:   cache.NewSlot[[]byte](ttl.StopsRaw, clock),
		StopIndex:  cache.NewSlot[models.StopIndex](ttl.StopIndex, clock),
		Types:      cache.NewSlot[[]string](ttl.Types, clock),
		Arrivals:   cache.NewKeyed[string, *models.StopArrivals](ttl.Arrivals, clock),
	}
}
