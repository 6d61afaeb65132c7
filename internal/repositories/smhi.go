package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"location-weather/internal/models"
	"location-weather/pkg/metrics"
	"location-weather/pkg/observe"
	"location-weather/pkg/telemetry"
)

const (
	SMHIBaseURL = "https://opendata-download-metfcst.smhi.se"
	smhiName    = "smhi"

	smhiPointPath = "/api/category/pmp3g/version/2/geotype/point/lon/%s/lat/%s/data.json"
)

type SMHIRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewSMHIRepository(baseURL string, l *observe.Logger, httpClient HTTPClient) *SMHIRepository {
	if baseURL == "" {
		baseURL = SMHIBaseURL
	}
	return &SMHIRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		l:          l,
	}
}

func (s *SMHIRepository) Name() string {
	return smhiName
}

// PointURL is the forecast document URL for coords. Coordinates go in the
// path, never in the query string.
func (s *SMHIRepository) PointURL(coords models.Coordinates) string {
	return s.baseURL + fmt.Sprintf(smhiPointPath, coords.PathLongitude(), coords.PathLatitude())
}

func (s *SMHIRepository) FetchForecast(ctx context.Context, coords models.Coordinates) (models.ForecastPayload, error) {
	started := time.Now()

	s.l.Info("making smhi API request", map[string]any{
		"params": coords.RequestParams(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.PointURL(coords), nil)
	if err != nil {
		return models.ForecastPayload{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	telemetry.Inject(ctx, req.Header)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(smhiName, metrics.OutcomeTransport, started)
		return models.ForecastPayload{}, &TransportError{Provider: smhiName, Err: err}
	}
	defer resp.Body.Close()

	s.l.Info("received smhi API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream(smhiName, metrics.OutcomeStatus, started)
		return models.ForecastPayload{}, &StatusError{Provider: smhiName, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveUpstream(smhiName, metrics.OutcomeTransport, started)
		return models.ForecastPayload{}, &TransportError{Provider: smhiName, Err: err}
	}

	var payload models.ForecastPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		metrics.ObserveUpstream(smhiName, metrics.OutcomeDecode, started)
		return models.ForecastPayload{}, &DecodeError{Provider: smhiName, Err: err}
	}

	metrics.ObserveUpstream(smhiName, metrics.OutcomeOK, started)
	s.l.Debug("parsed smhi API response", map[string]any{
		"approvedTime": payload.ApprovedTime,
		"steps":        len(payload.TimeSeries),
	})

	return payload, nil
}
