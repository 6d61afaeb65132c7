package weather

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"location-weather/internal/models"
	"location-weather/internal/repositories"
	"location-weather/pkg/metrics"
	"location-weather/pkg/observe"
	"location-weather/pkg/telemetry"
)

const tracerName = "location-weather/weather"

// WeatherService turns a free-text location into a current weather report.
type WeatherService struct {
	geocoder repositories.GeocodingRepository
	forecast repositories.ForecastRepository
	tracer   trace.Tracer
	l        *observe.Logger
}

func NewWeatherService(
	geocoder repositories.GeocodingRepository,
	forecast repositories.ForecastRepository,
	l *observe.Logger,
) *WeatherService {
	return &WeatherService{
		geocoder: geocoder,
		forecast: forecast,
		tracer:   telemetry.Tracer(tracerName),
		l:        l,
	}
}

// Report runs geocode, fetch and extract for location and formats the
// result. Every failure is an *Error.
func (s *WeatherService) Report(ctx context.Context, location string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "weather.Report")
	defer span.End()

	report, err := s.report(ctx, location)
	if err != nil {
		kind := KindOf(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("weather.error_kind", kind.String()))
		metrics.CountReport(kind.String())
		s.logFailure(err, location)
		return "", err
	}

	metrics.CountReport("ok")
	return report, nil
}

func (s *WeatherService) report(ctx context.Context, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", InvalidInput(models.ErrInvalidLocation)
	}

	coords, err := s.geocode(ctx, location)
	if err != nil {
		return "", err
	}

	payload, err := s.fetchForecast(ctx, coords)
	if err != nil {
		return "", err
	}

	summary, err := payload.Summary()
	if err != nil {
		return "", newError(KindMalformedForecast, err, "Unable to parse API response - %v", err)
	}

	s.l.Info("weather report ready", map[string]any{
		"location":    location,
		"params":      coords.RequestParams(),
		"temperature": summary.Temperature,
		"windSpeed":   summary.WindSpeed,
		"validTime":   summary.ValidTime,
	})

	return FormatReport(location, summary), nil
}

func (s *WeatherService) geocode(ctx context.Context, location string) (models.Coordinates, error) {
	ctx, span := s.tracer.Start(ctx, "geocode", trace.WithAttributes(
		attribute.String("geocoder", s.geocoder.Name()),
	))
	defer span.End()

	coords, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, repositories.ErrLocationNotFound) {
			return models.Coordinates{}, newError(KindGeocodeNotFound, err, `Could not geocode location "%s".`, location)
		}
		return models.Coordinates{}, newError(KindLocationQueryFailed, err, "Geocoding request failed with error %v", err)
	}

	span.SetAttributes(
		attribute.Float64("latitude", coords.Latitude),
		attribute.Float64("longitude", coords.Longitude),
	)
	return coords, nil
}

func (s *WeatherService) fetchForecast(ctx context.Context, coords models.Coordinates) (models.ForecastPayload, error) {
	ctx, span := s.tracer.Start(ctx, "fetch-forecast", trace.WithAttributes(
		attribute.String("provider", s.forecast.Name()),
		attribute.Float64("latitude", coords.Latitude),
		attribute.Float64("longitude", coords.Longitude),
	))
	defer span.End()

	payload, err := s.forecast.FetchForecast(ctx, coords)
	if err == nil {
		return payload, nil
	}
	span.RecordError(err)

	var (
		statusErr *repositories.StatusError
		decodeErr *repositories.DecodeError
	)
	switch {
	case errors.As(err, &statusErr):
		return models.ForecastPayload{}, newError(KindForecastUnavailable, err, "API request failed with status code %d", statusErr.Code)
	case errors.As(err, &decodeErr):
		return models.ForecastPayload{}, newError(KindMalformedForecast, err, "Unable to parse API response - %v", decodeErr.Err)
	default:
		return models.ForecastPayload{}, newError(KindForecastUnreachable, err, "API request failed with error %v", err)
	}
}

// logFailure logs caller mistakes as warnings and upstream failures as
// errors, with the wrapped cause attached.
func (s *WeatherService) logFailure(err error, location string) {
	var werr *Error
	if !errors.As(err, &werr) {
		s.l.Error(err, map[string]any{"location": location})
		return
	}

	fields := map[string]any{
		"location": location,
		"kind":     werr.Kind.String(),
	}
	if werr.cause != nil {
		fields["cause"] = werr.cause.Error()
	}

	if werr.Kind.Status() < 500 {
		s.l.Warning(werr.Error(), fields)
		return
	}
	s.l.Error(werr, fields)
}

// FormatReport renders the caller-facing sentence. Numbers use their
// shortest decimal form.
func FormatReport(location string, summary models.ForecastSummary) string {
	return fmt.Sprintf(
		"The temperature in %s is %s degrees Celsius, and the wind speed is %s m/s.",
		location,
		formatNumber(summary.Temperature),
		formatNumber(summary.WindSpeed),
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
