package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"location-weather/internal/models"
	"location-weather/pkg/metrics"
	"location-weather/pkg/observe"
	"location-weather/pkg/telemetry"
)

const (
	NominatimBaseURL = "https://nominatim.openstreetmap.org"
	nominatimName    = "nominatim"
)

type NominatimRepository struct {
	baseURL    string
	userAgent  string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewNominatimRepository(baseURL, userAgent string, l *observe.Logger, httpClient HTTPClient) *NominatimRepository {
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}
	return &NominatimRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
		l:          l,
	}
}

func (n *NominatimRepository) Name() string {
	return nominatimName
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves location to the coordinates of the best match.
// ErrLocationNotFound is returned when the search has no results.
func (n *NominatimRepository) Geocode(ctx context.Context, location string) (models.Coordinates, error) {
	started := time.Now()

	query := url.Values{}
	query.Set("q", location)
	query.Set("format", "jsonv2")
	query.Set("limit", "1")
	endpoint := n.baseURL + "/search?" + query.Encode()

	n.l.Info("making nominatim API request", map[string]any{
		"location": location,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")
	telemetry.Inject(ctx, req.Header)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(nominatimName, metrics.OutcomeTransport, started)
		return models.Coordinates{}, &TransportError{Provider: nominatimName, Err: err}
	}
	defer resp.Body.Close()

	n.l.Info("received nominatim API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream(nominatimName, metrics.OutcomeStatus, started)
		return models.Coordinates{}, &StatusError{Provider: nominatimName, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveUpstream(nominatimName, metrics.OutcomeTransport, started)
		return models.Coordinates{}, &TransportError{Provider: nominatimName, Err: err}
	}

	var places []nominatimPlace
	if err = json.Unmarshal(body, &places); err != nil {
		metrics.ObserveUpstream(nominatimName, metrics.OutcomeDecode, started)
		return models.Coordinates{}, &DecodeError{Provider: nominatimName, Err: err}
	}

	if len(places) == 0 {
		metrics.ObserveUpstream(nominatimName, metrics.OutcomeEmptyResult, started)
		return models.Coordinates{}, ErrLocationNotFound
	}

	coords, err := places[0].coordinates()
	if err != nil {
		metrics.ObserveUpstream(nominatimName, metrics.OutcomeDecode, started)
		return models.Coordinates{}, &DecodeError{Provider: nominatimName, Err: err}
	}

	metrics.ObserveUpstream(nominatimName, metrics.OutcomeOK, started)
	n.l.Debug("geocoded location", map[string]any{
		"location":    location,
		"displayName": places[0].DisplayName,
		"params":      coords.RequestParams(),
	})

	return coords, nil
}

func (p nominatimPlace) coordinates() (models.Coordinates, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid latitude %q", p.Lat)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid longitude %q", p.Lon)
	}
	return models.NewCoordinates(lat, lon), nil
}
