package transit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tltstops.dev/internal/models"
)

func TestManager_Routes(t *testing.T) {
	manager, _, _ := newTestManager(t, DefaultTTLConfig())
	ctx := context.Background()

	routes, err := manager.Routes(ctx, "bus")
	require.NoError(t, err)
	assert.Equal(t, []string{"17", "5"}, routes)

	routes, err = manager.Routes(ctx, "tram")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, routes)

	_, err = manager.Routes(ctx, "trolley")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Directions(t *testing.T) {
	manager, _, _ := newTestManager(t, DefaultTTLConfig())
	ctx := context.Background()

	directions, err := manager.Directions(ctx, "tram", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kadriorg - Kopli", "Kopli - Kadriorg"}, directions)

	tests := []struct {
		name          string
		transportType string
		number        string
		wantInError   string
	}{
		{name: "unknown type", transportType: "ferry", number: "1", wantInError: "transport type"},
		{name: "unknown route", transportType: "tram", number: "99", wantInError: "route"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Directions(ctx, tt.transportType, tt.number)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Contains(t, err.Error(), tt.wantInError)
		})
	}
}

func TestManager_Stops(t *testing.T) {
	manager, fetcher, _ := newTestManager(t, DefaultTTLConfig())
	ctx := context.Background()

	stops, err := manager.Stops(ctx, "bus", "5", "Metsakooli tee - Männiku")
	require.NoError(t, err)
	assert.Equal(t, []models.StopEntry{
		{ID: "2001", Name: "Metsakooli tee"},
		{ID: "2002", Name: "Metsakooli tee"},
		{ID: "1002", Name: "Kaubamaja"},
	}, stops)

	stops, err = manager.Stops(ctx, "bus", "17", "Väike-Õismäe - Kadaka")
	require.NoError(t, err)
	assert.Equal(t, []models.StopEntry{
		{ID: "2003", Name: "Väike-Õismäe"},
		{ID: "9999", Name: UnknownStopName},
	}, stops)

	_, err = manager.Stops(ctx, "bus", "5", "Nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "direction")

	assert.Equal(t, 1, fetcher.streams(testRoutesURL))
	assert.Equal(t, 1, fetcher.streams(testStopsURL))
}
