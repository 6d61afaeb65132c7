package http

import (
	"github.com/gofiber/fiber/v2"

	"location-weather/internal/models"
	"location-weather/internal/services/weather"
	"location-weather/pkg/metrics"
)

// WeatherResponse represents a successful weather report
type WeatherResponse struct {
	Response string `json:"response" example:"The temperature in Stockholm, Sweden is 5.2 degrees Celsius, and the wind speed is 3.1 m/s."`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"The location parameter is missing or invalid."`
}

// GetWeatherReport godoc
// @Summary Get weather forecast based on location
// @Description Geocodes the given location with OpenStreetMap Nominatim and reports the current temperature and wind speed from the SMHI point forecast.
// @Tags Weather
// @Accept json
// @Produce json
// @Param request body models.WeatherRequest true "The location for which to fetch the weather forecast"
// @Success 200 {object} WeatherResponse "A text description of the weather forecast"
// @Failure 400 {object} ErrorResponse "The location parameter is missing or invalid, or could not be geocoded"
// @Failure 500 {object} ErrorResponse "The weather forecast could not be fetched or processed"
// @Router /weather [post]
// @Example {curl} Example usage:
//
//	curl -X POST "http://localhost:8080/weather" -H "Content-Type: application/json" -d '{"location": "Stockholm, Sweden"}'
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	req, err := models.ParseWeatherRequest(c.Body())
	if err != nil {
		werr := weather.InvalidInput(err)
		metrics.CountReport(werr.Kind.String())
		r.l.Warning("rejected weather request", map[string]any{
			"requestId": c.Locals("requestid"),
			"body":      truncate(string(c.Body()), 256),
		})
		return c.Status(werr.Kind.Status()).JSON(ErrorResponse{
			Error: werr.Error(),
		})
	}

	report, err := r.service.Report(c.UserContext(), req.Location)
	if err != nil {
		return c.Status(weather.KindOf(err).Status()).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(WeatherResponse{
		Response: report,
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
