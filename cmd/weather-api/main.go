package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"location-weather/config"
	v1 "location-weather/internal/controllers/http/v1"
	"location-weather/internal/repositories"
	"location-weather/internal/services/weather"
	"location-weather/pkg/httpserver"
	"location-weather/pkg/observe"
	"location-weather/pkg/telemetry"
)

// @title Location Weather API
// @version 1.0.0
// @description Reports the current temperature and wind speed for a free-text location.

// @contact.name Location Weather Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather report operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	l := observe.NewLogger(observe.LoggerConfig{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, os.Stdout)

	sentryHook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.Sentry.Debug, cnf.Sentry.DSN)
	sentryHook.SetLogger(l)
	l.AddErrorSink(sentryHook)

	shutdownTracer := func(context.Context) error { return nil }
	if cnf.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, telemetry.Config{
			ServiceName: cnf.App.Name,
			Version:     cnf.App.Version,
			Exporter:    cnf.Telemetry.Exporter,
			Endpoint:    cnf.Telemetry.Endpoint,
		})
		if err != nil {
			l.Warning("telemetry init failed", map[string]any{"err": err.Error()})
		} else {
			shutdownTracer = shutdown
		}
	}

	app := httpserver.InitFiberServer(httpserver.Config{
		AppName:      cnf.App.Name,
		ReadTimeout:  cnf.Server.ReadTimeoutDuration(),
		WriteTimeout: cnf.Server.WriteTimeoutDuration(),
		IdleTimeout:  cnf.Server.IdleTimeoutDuration(),
	})

	repos := repositories.InitRepositories(cnf, l)

	service := weather.NewWeatherService(repos.Geocoder, repos.Forecast, l)

	v1.NewRouter(
		app,
		service,
		cnf.Server.RequestTimeoutDuration(),
		l,
	)

	go func() {
		if err := app.Listen(cnf.ServerAddr()); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Server.Port,
		"env":      cnf.App.Env,
		"geocoder": repos.Geocoder.Name(),
		"forecast": repos.Forecast.Name(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		_ = shutdownTracer(shutdownCtx)
		sentryHook.Flush()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
