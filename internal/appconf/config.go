package appconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"tltstops.dev/internal/transit"
	"tltstops.dev/internal/upstream"
)

// Config holds all the configuration settings for the application.
type Config struct {
	Port     int    `yaml:"port" validate:"min=1,max=65535"`
	EnvName  string `yaml:"env" validate:"oneof=development test production"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// Timezone is the IANA zone the departures feed publishes times in.
	Timezone string            `yaml:"timezone" validate:"required"`
	Feeds    FeedsConfig       `yaml:"feeds"`
	Upstream upstream.Config   `yaml:"upstream"`
	Cache    transit.TTLConfig `yaml:"cache"`
}

type FeedsConfig struct {
	RoutesURL   string `yaml:"routes_url" validate:"required,url"`
	StopsURL    string `yaml:"stops_url" validate:"required,url"`
	ArrivalsURL string `yaml:"arrivals_url" validate:"required,url"`
}

// Default returns the configuration used when neither a file nor flags
// override anything.
func Default() Config {
	return Config{
		Port:     4000,
		EnvName:  Development.String(),
		LogLevel: "info",
		Timezone: transit.DefaultTimezone,
		Feeds: FeedsConfig{
			RoutesURL:   transit.DefaultRoutesURL,
			StopsURL:    transit.DefaultStopsURL,
			ArrivalsURL: transit.DefaultArrivalsURL,
		},
		Upstream: upstream.Config{
			Timeout:         upstream.DefaultTimeout,
			MaxRetries:      upstream.DefaultMaxRetries,
			InitialInterval: upstream.DefaultInitialInterval,
			MaxInterval:     upstream.DefaultMaxInterval,
			UserAgent:       upstream.DefaultUserAgent,
		},
		Cache: transit.DefaultTTLConfig(),
	}
}

// Env returns the parsed environment name.
func (c Config) Env() Environment {
	return EnvFlagToEnvironment(c.EnvName)
}

// Level returns the slog level for LogLevel.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks every field against its validate tag.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Decode overlays the YAML document read from r onto c. Keys missing from
// the document keep their current values; unknown keys are an error.
func (c *Config) Decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode configuration: %w", err)
	}
	return nil
}

// LoadFile reads the YAML file at path over the defaults and validates the
// result.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read configuration: %w", err)
	}
	if err := cfg.Decode(bytes.NewReader(data)); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
