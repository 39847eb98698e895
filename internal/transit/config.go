package transit

import (
	"time"

	"tltstops.dev/internal/cache"
)

const (
	DefaultRoutesURL   = "https://transport.tallinn.ee/data/routes.txt"
	DefaultStopsURL    = "https://transport.tallinn.ee/data/stops.txt"
	DefaultArrivalsURL = "https://transport.tallinn.ee/siri-stop-departures.php"
	DefaultTimezone    = "Europe/Tallinn"
)

type Config struct {
	RoutesURL   string
	StopsURL    string
	ArrivalsURL string
	// Location is the zone departure times are published in.
	Location *time.Location
	TTL      TTLConfig
	Clock    cache.Clock
}

// TTLConfig sets how long each cache keeps its records. Durations are
// truncated to whole seconds.
type TTLConfig struct {
	RoutesRaw  time.Duration `yaml:"routes_raw" validate:"min=0"`
	RouteIndex time.Duration `yaml:"route_index" validate:"min=0"`
	StopsRaw   time.Duration `yaml:"stops_raw" validate:"min=0"`
	StopIndex  time.Duration `yaml:"stop_index" validate:"min=0"`
	Types      time.Duration `yaml:"types" validate:"min=0"`
	Arrivals   time.Duration `yaml:"arrivals" validate:"min=0"`
}

func DefaultTTLConfig() TTLConfig {
	return TTLConfig{
		RoutesRaw:  3 * time.Hour,
		RouteIndex: 3 * time.Hour,
		StopsRaw:   3 * time.Hour,
		StopIndex:  3 * time.Hour,
		Types:      24 * time.Hour,
		Arrivals:   10 * time.Second,
	}
}

// withDefaults fills unset fields of config.
func (config Config) withDefaults() Config {
	if config.RoutesURL == "" {
		config.RoutesURL = DefaultRoutesURL
	}
	if config.StopsURL == "" {
		config.StopsURL = DefaultStopsURL
	}
	if config.ArrivalsURL == "" {
		config.ArrivalsURL = DefaultArrivalsURL
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return config
}
