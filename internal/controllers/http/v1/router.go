package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/swagger"

	_ "location-weather/docs"
	"location-weather/pkg/metrics"
	"location-weather/pkg/observe"
)

type WeatherReporter interface {
	Report(ctx context.Context, location string) (string, error)
}

type routes struct {
	service WeatherReporter
	l       *observe.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService WeatherReporter,
	requestTimeout time.Duration,
	l *observe.Logger,
) {
	r := &routes{
		service: weatherService,
		l:       l,
	}

	// Swagger documentation, generated from handler annotations into ./docs
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Get("/metrics", metrics.Handler())

	// API routes
	app.Post("/weather", timeout.NewWithContext(r.handleWeatherCall, requestTimeout))
}
