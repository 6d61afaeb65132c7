//go:build integration

package repositories

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: go test -tags integration ./internal/repositories/...

func TestNominatimRepository_Geocode_RealAPI(t *testing.T) {
	repo := NewNominatimRepository(NominatimBaseURL, "location-weather-integration", testLogger(), &http.Client{Timeout: 10 * time.Second})

	coords, err := repo.Geocode(context.Background(), "Stockholm, Sweden")
	require.NoError(t, err)

	assert.InDelta(t, 59.33, coords.Latitude, 0.1)
	assert.InDelta(t, 18.07, coords.Longitude, 0.1)
}

func TestSMHIRepository_FetchForecast_RealAPI(t *testing.T) {
	geocoder := NewNominatimRepository(NominatimBaseURL, "location-weather-integration", testLogger(), &http.Client{Timeout: 10 * time.Second})
	repo := NewSMHIRepository(SMHIBaseURL, testLogger(), &http.Client{Timeout: 10 * time.Second})

	coords, err := geocoder.Geocode(context.Background(), "Göteborg, Sweden")
	require.NoError(t, err)

	payload, err := repo.FetchForecast(context.Background(), coords)
	require.NoError(t, err)

	summary, err := payload.Summary()
	require.NoError(t, err)

	t.Logf("Göteborg %s - %.1f°C, %.1f m/s", summary.ValidTime, summary.Temperature, summary.WindSpeed)
	assert.True(t, summary.Temperature > -60 && summary.Temperature < 50)
	assert.GreaterOrEqual(t, summary.WindSpeed, 0.0)
}
