package repositories

import (
	"context"
	"net/http"
	"time"

	"location-weather/config"
	"location-weather/internal/models"
	"location-weather/pkg/observe"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type GeocodingRepository interface {
	Name() string
	Geocode(ctx context.Context, location string) (models.Coordinates, error)
}

type ForecastRepository interface {
	Name() string
	FetchForecast(ctx context.Context, coords models.Coordinates) (models.ForecastPayload, error)
}

type Repositories struct {
	Geocoder GeocodingRepository
	Forecast ForecastRepository
}

func InitRepositories(cfg *config.Config, l *observe.Logger) Repositories {
	return Repositories{
		Geocoder: NewNominatimRepository(
			cfg.Geocoder.BaseURL,
			cfg.Geocoder.UserAgent,
			l,
			newHTTPClient(cfg.Geocoder.TimeoutDuration()),
		),
		Forecast: NewSMHIRepository(
			cfg.Forecast.BaseURL,
			l,
			newHTTPClient(cfg.Forecast.TimeoutDuration()),
		),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
