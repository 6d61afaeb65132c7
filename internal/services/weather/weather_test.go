package weather_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"location-weather/internal/models"
	"location-weather/internal/repositories"
	"location-weather/internal/services/weather"
	"location-weather/pkg/observe"
)

// MockGeocoder implements GeocodingRepository for testing
type MockGeocoder struct {
	coords    models.Coordinates
	err       error
	callCount int
	lastQuery string
}

func (m *MockGeocoder) Name() string {
	return "mock-geocoder"
}

func (m *MockGeocoder) Geocode(ctx context.Context, location string) (models.Coordinates, error) {
	m.callCount++
	m.lastQuery = location
	if m.err != nil {
		return models.Coordinates{}, m.err
	}
	return m.coords, nil
}

// MockForecast implements ForecastRepository for testing
type MockForecast struct {
	payload    models.ForecastPayload
	err        error
	callCount  int
	lastCoords models.Coordinates
}

func (m *MockForecast) Name() string {
	return "mock-forecast"
}

func (m *MockForecast) FetchForecast(ctx context.Context, coords models.Coordinates) (models.ForecastPayload, error) {
	m.callCount++
	m.lastCoords = coords
	if err := ctx.Err(); err != nil {
		return models.ForecastPayload{}, &repositories.TransportError{Provider: m.Name(), Err: err}
	}
	if m.err != nil {
		return models.ForecastPayload{}, m.err
	}
	return m.payload, nil
}

func payload(temperature, windSpeed float64) models.ForecastPayload {
	return models.ForecastPayload{TimeSeries: []models.TimeStep{{
		ValidTime: "2024-03-01T12:00:00Z",
		Parameters: []models.Parameter{
			{Name: "msl", Values: []float64{1012.4}},
			{Name: models.ParamWindSpeed, Values: []float64{windSpeed}},
			{Name: models.ParamTemperature, Values: []float64{temperature}},
		},
	}}}
}

func newService(g *MockGeocoder, f *MockForecast) *weather.WeatherService {
	return weather.NewWeatherService(g, f, observe.NewZapLogger("test-app", io.Discard))
}

func TestWeatherService_Report_Success(t *testing.T) {
	geocoder := &MockGeocoder{coords: models.NewCoordinates(59.329324, 18.068581)}
	forecast := &MockForecast{payload: payload(5.2, 3.1)}

	report, err := newService(geocoder, forecast).Report(context.Background(), "Stockholm, Sweden")

	require.NoError(t, err)
	assert.Equal(t, "The temperature in Stockholm, Sweden is 5.2 degrees Celsius, and the wind speed is 3.1 m/s.", report)
	assert.Equal(t, "Stockholm, Sweden", geocoder.lastQuery)
	assert.Equal(t, models.Coordinates{Latitude: 59.329324, Longitude: 18.068581}, forecast.lastCoords)
}

func TestWeatherService_Report_EchoesCallerLocation(t *testing.T) {
	geocoder := &MockGeocoder{coords: models.NewCoordinates(57.7072326, 11.9670171)}
	forecast := &MockForecast{payload: payload(-4, 11.5)}

	report, err := newService(geocoder, forecast).Report(context.Background(), "gothenburg")

	require.NoError(t, err)
	assert.Equal(t, "The temperature in gothenburg is -4 degrees Celsius, and the wind speed is 11.5 m/s.", report)
	assert.Equal(t, models.Coordinates{Latitude: 57.707233, Longitude: 11.967017}, forecast.lastCoords)
}

func TestWeatherService_Report_BlankLocationSkipsUpstream(t *testing.T) {
	geocoder := &MockGeocoder{}
	forecast := &MockForecast{}

	for _, location := range []string{"", "   ", "\t\n"} {
		_, err := newService(geocoder, forecast).Report(context.Background(), location)

		require.Error(t, err)
		assert.Equal(t, weather.KindInvalidInput, weather.KindOf(err))
		assert.Equal(t, http.StatusBadRequest, weather.KindOf(err).Status())
		assert.Equal(t, "The location parameter is missing or invalid.", err.Error())
	}

	assert.Zero(t, geocoder.callCount)
	assert.Zero(t, forecast.callCount)
}

func TestWeatherService_Report_Failures(t *testing.T) {
	tests := []struct {
		name       string
		geocoder   *MockGeocoder
		forecast   *MockForecast
		wantKind   weather.Kind
		wantStatus int
		wantMsg    string
		forecasted bool
	}{
		{
			name:       "geocoder has no match",
			geocoder:   &MockGeocoder{err: repositories.ErrLocationNotFound},
			forecast:   &MockForecast{},
			wantKind:   weather.KindGeocodeNotFound,
			wantStatus: http.StatusBadRequest,
			wantMsg:    `Could not geocode location "Nowhereville".`,
		},
		{
			name:       "geocoder unreachable",
			geocoder:   &MockGeocoder{err: &repositories.TransportError{Provider: "nominatim", Err: errors.New("dial tcp: i/o timeout")}},
			forecast:   &MockForecast{},
			wantKind:   weather.KindLocationQueryFailed,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Geocoding request failed with error dial tcp: i/o timeout",
		},
		{
			name:       "geocoder bad status",
			geocoder:   &MockGeocoder{err: &repositories.StatusError{Provider: "nominatim", Code: 429}},
			forecast:   &MockForecast{},
			wantKind:   weather.KindLocationQueryFailed,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Geocoding request failed with error nominatim responded with status code 429",
		},
		{
			name:       "forecast bad status",
			geocoder:   &MockGeocoder{},
			forecast:   &MockForecast{err: &repositories.StatusError{Provider: "smhi", Code: 404}},
			wantKind:   weather.KindForecastUnavailable,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "API request failed with status code 404",
			forecasted: true,
		},
		{
			name:       "forecast unreachable",
			geocoder:   &MockGeocoder{},
			forecast:   &MockForecast{err: &repositories.TransportError{Provider: "smhi", Err: errors.New("connection refused")}},
			wantKind:   weather.KindForecastUnreachable,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "API request failed with error connection refused",
			forecasted: true,
		},
		{
			name:       "forecast body not json",
			geocoder:   &MockGeocoder{},
			forecast:   &MockForecast{err: &repositories.DecodeError{Provider: "smhi", Err: errors.New("invalid character '<'")}},
			wantKind:   weather.KindMalformedForecast,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Unable to parse API response - invalid character '<'",
			forecasted: true,
		},
		{
			name:       "forecast without time steps",
			geocoder:   &MockGeocoder{},
			forecast:   &MockForecast{payload: models.ForecastPayload{}},
			wantKind:   weather.KindMalformedForecast,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Unable to parse API response - forecast contains no time steps",
			forecasted: true,
		},
		{
			name:     "forecast without wind speed",
			geocoder: &MockGeocoder{},
			forecast: &MockForecast{payload: models.ForecastPayload{TimeSeries: []models.TimeStep{{
				Parameters: []models.Parameter{{Name: models.ParamTemperature, Values: []float64{5.2}}},
			}}}},
			wantKind:   weather.KindMalformedForecast,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    `Unable to parse API response - parameter not found in first time step: "ws"`,
			forecasted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newService(tt.geocoder, tt.forecast).Report(context.Background(), "Nowhereville")

			require.Error(t, err)
			assert.Empty(t, report)
			assert.Equal(t, tt.wantKind, weather.KindOf(err))
			assert.Equal(t, tt.wantStatus, weather.KindOf(err).Status())
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.forecasted, tt.forecast.callCount == 1)
		})
	}
}

func TestWeatherService_Report_TransportAndParseMessagesDiffer(t *testing.T) {
	unreachable := &MockForecast{err: &repositories.TransportError{Provider: "smhi", Err: errors.New("boom")}}
	malformed := &MockForecast{err: &repositories.DecodeError{Provider: "smhi", Err: errors.New("boom")}}

	_, errTransport := newService(&MockGeocoder{}, unreachable).Report(context.Background(), "Kiruna")
	_, errParse := newService(&MockGeocoder{}, malformed).Report(context.Background(), "Kiruna")

	require.Error(t, errTransport)
	require.Error(t, errParse)
	assert.NotEqual(t, errTransport.Error(), errParse.Error())
}

func TestWeatherService_Report_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(&MockGeocoder{}, &MockForecast{payload: payload(1, 1)}).Report(ctx, "Luleå")

	require.Error(t, err)
	assert.Equal(t, weather.KindForecastUnreachable, weather.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWeatherService_Report_KeepsCause(t *testing.T) {
	cause := &repositories.StatusError{Provider: "smhi", Code: 503}

	_, err := newService(&MockGeocoder{}, &MockForecast{err: cause}).Report(context.Background(), "Umeå")

	var statusErr *repositories.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 503, statusErr.Code)
}

func TestFormatReport(t *testing.T) {
	tests := []struct {
		summary models.ForecastSummary
		want    string
	}{
		{
			summary: models.ForecastSummary{Temperature: 5.2, WindSpeed: 3.1},
			want:    "The temperature in Malmö is 5.2 degrees Celsius, and the wind speed is 3.1 m/s.",
		},
		{
			summary: models.ForecastSummary{Temperature: -12, WindSpeed: 0},
			want:    "The temperature in Malmö is -12 degrees Celsius, and the wind speed is 0 m/s.",
		},
		{
			summary: models.ForecastSummary{Temperature: 21.75, WindSpeed: 10},
			want:    "The temperature in Malmö is 21.75 degrees Celsius, and the wind speed is 10 m/s.",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, weather.FormatReport("Malmö", tt.summary))
	}
}

func TestKindOf_UnknownError(t *testing.T) {
	kind := weather.KindOf(errors.New("plain"))
	assert.Equal(t, weather.KindUnknown, kind)
	assert.Equal(t, http.StatusInternalServerError, kind.Status())
}
