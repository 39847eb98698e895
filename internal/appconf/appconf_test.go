package appconf

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		flag string
		want Environment
	}{
		{flag: "development", want: Development},
		{flag: "test", want: Test},
		{flag: "Production", want: Production},
		{flag: "prod", want: Production},
		{flag: "staging", want: Development},
		{flag: "", want: Development},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvFlagToEnvironment(tt.flag))
		})
	}
	assert.Equal(t, "production", Production.String())
}

func TestCanonicalEnvName(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{flag: "development", want: "development"},
		{flag: " Test ", want: "test"},
		{flag: "PROD", want: "production"},
		{flag: "production", want: "production"},
		{flag: "prodution", want: "prodution"},
		{flag: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalEnvName(tt.flag))
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Development, cfg.Env())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, 10*time.Second, cfg.Cache.Arrivals)
	assert.Equal(t, 24*time.Hour, cfg.Cache.Types)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
log_level: debug
feeds:
  arrivals_url: http://localhost:9000/departures
upstream:
  timeout: 5s
  max_retries: 4
cache:
  arrivals: 30s
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, Production, cfg.Env())
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "http://localhost:9000/departures", cfg.Feeds.ArrivalsURL)
	assert.Equal(t, Default().Feeds.RoutesURL, cfg.Feeds.RoutesURL, "unset keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, uint64(4), cfg.Upstream.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Cache.Arrivals)
	assert.Equal(t, 3*time.Hour, cfg.Cache.RoutesRaw)
}

func TestLoadFileEmptyDocument(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown key", content: "listen: 80\n", wantErr: "field listen not found"},
		{name: "port out of range", content: "port: 70000\n", wantErr: "Config.Port"},
		{name: "unknown environment", content: "env: staging\n", wantErr: "Config.EnvName"},
		{name: "bad feed url", content: "feeds:\n  stops_url: not a url\n", wantErr: "Config.Feeds.StopsURL"},
		{name: "negative ttl", content: "cache:\n  arrivals: -1s\n", wantErr: "Config.Cache.Arrivals"},
		{name: "malformed yaml", content: "port: [\n", wantErr: "decode configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "read configuration"))
	})
}
