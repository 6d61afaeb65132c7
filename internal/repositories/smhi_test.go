package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"location-weather/internal/models"
)

const smhiPayload = `{
  "approvedTime": "2024-03-01T11:05:51Z",
  "referenceTime": "2024-03-01T11:00:00Z",
  "timeSeries": [
    {
      "validTime": "2024-03-01T12:00:00Z",
      "parameters": [
        {"name": "ws", "levelType": "hl", "level": 10, "unit": "m/s", "values": [3.1]},
        {"name": "t", "levelType": "hl", "level": 2, "unit": "Cel", "values": [5.2]}
      ]
    }
  ]
}`

func TestSMHIRepository_Name(t *testing.T) {
	repo := &SMHIRepository{}
	assert.Equal(t, "smhi", repo.Name())
}

func TestSMHIRepository_PointURL(t *testing.T) {
	repo := NewSMHIRepository("https://example.test/", testLogger(), nil)

	got := repo.PointURL(models.NewCoordinates(59.3, 18.06858084))
	assert.Equal(t, "https://example.test/api/category/pmp3g/version/2/geotype/point/lon/18.068581/lat/59.3/data.json", got)
}

func TestSMHIRepository_FetchForecast_Success(t *testing.T) {
	var gotPath, gotRawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(smhiPayload))
	}))
	defer server.Close()

	repo := NewSMHIRepository(server.URL, testLogger(), server.Client())

	payload, err := repo.FetchForecast(context.Background(), models.Coordinates{Latitude: 59.329324, Longitude: 18.068581})
	require.NoError(t, err)

	assert.Equal(t, "/api/category/pmp3g/version/2/geotype/point/lon/18.068581/lat/59.329324/data.json", gotPath)
	assert.Empty(t, gotRawQuery)
	require.Len(t, payload.TimeSeries, 1)

	summary, err := payload.Summary()
	require.NoError(t, err)
	assert.Equal(t, 5.2, summary.Temperature)
	assert.Equal(t, 3.1, summary.WindSpeed)
}

func TestSMHIRepository_FetchForecast_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "out of bounds"}`))
	}))
	defer server.Close()

	repo := NewSMHIRepository(server.URL, testLogger(), server.Client())

	_, err := repo.FetchForecast(context.Background(), models.NewCoordinates(-33.86882, 151.209296))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, "smhi", statusErr.Provider)
}

func TestSMHIRepository_FetchForecast_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	repo := NewSMHIRepository(server.URL, testLogger(), server.Client())

	_, err := repo.FetchForecast(context.Background(), models.NewCoordinates(59.3, 18.0))

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestSMHIRepository_FetchForecast_TransportError(t *testing.T) {
	repo := NewSMHIRepository("http://smhi.invalid", testLogger(), failingClient{err: errors.New("connection refused")})

	_, err := repo.FetchForecast(context.Background(), models.NewCoordinates(59.3, 18.0))

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "connection refused", err.Error())
}

func TestSMHIRepository_FetchForecast_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(smhiPayload))
	}))
	defer server.Close()

	client := server.Client()
	client.Timeout = 20 * time.Millisecond
	repo := NewSMHIRepository(server.URL, testLogger(), client)

	_, err := repo.FetchForecast(context.Background(), models.NewCoordinates(59.3, 18.0))

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}
