package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	App       AppConfig       `yaml:"app" envconfig:"APP"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	Geocoder  GeocoderConfig  `yaml:"geocoder" envconfig:"GEOCODER"`
	Forecast  ForecastConfig  `yaml:"forecast" envconfig:"FORECAST"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Sentry    SentryConfig    `yaml:"sentry" envconfig:"SENTRY"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

// ServerConfig timeouts are expressed in seconds.
type ServerConfig struct {
	Port           string `yaml:"port" split_words:"true"`
	ReadTimeout    int    `yaml:"read_timeout" split_words:"true"`
	WriteTimeout   int    `yaml:"write_timeout" split_words:"true"`
	IdleTimeout    int    `yaml:"idle_timeout" split_words:"true"`
	RequestTimeout int    `yaml:"request_timeout" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

// GeocoderConfig points at a Nominatim compatible search API.
type GeocoderConfig struct {
	BaseURL   string `yaml:"base_url" split_words:"true"`
	UserAgent string `yaml:"user_agent" split_words:"true"`
	Timeout   int    `yaml:"timeout" split_words:"true"`
}

// ForecastConfig points at the SMHI open data forecast API.
type ForecastConfig struct {
	BaseURL string `yaml:"base_url" split_words:"true"`
	Timeout int    `yaml:"timeout" split_words:"true"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" split_words:"true"`
	Exporter string `yaml:"exporter" split_words:"true"`
	Endpoint string `yaml:"endpoint" split_words:"true"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" split_words:"true"`
	Debug bool   `yaml:"debug" split_words:"true"`
}

// ConfigProvider loads and validates the application configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads an optional YAML file and lets environment
// variables override whatever it contains.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(defaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaults()

	// Read from YAML file first
	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Override with environment variables
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	var errs []string

	if cnf.App.Name == "" {
		errs = append(errs, "app.name is required")
	}
	if cnf.Server.Port == "" {
		errs = append(errs, "server.port is required")
	}
	if cnf.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if cnf.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if cnf.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if _, err := url.ParseRequestURI(cnf.Geocoder.BaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("geocoder.base_url is invalid: %q", cnf.Geocoder.BaseURL))
	}
	if strings.TrimSpace(cnf.Geocoder.UserAgent) == "" {
		errs = append(errs, "geocoder.user_agent is required")
	}
	if cnf.Geocoder.Timeout <= 0 {
		errs = append(errs, "geocoder.timeout must be positive")
	}
	if _, err := url.ParseRequestURI(cnf.Forecast.BaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("forecast.base_url is invalid: %q", cnf.Forecast.BaseURL))
	}
	if cnf.Forecast.Timeout <= 0 {
		errs = append(errs, "forecast.timeout must be positive")
	}
	if cnf.Telemetry.Enabled {
		switch cnf.Telemetry.Exporter {
		case "zipkin", "otlp":
		default:
			errs = append(errs, fmt.Sprintf("telemetry.exporter must be zipkin or otlp, got %q", cnf.Telemetry.Exporter))
		}
		if cnf.Telemetry.Endpoint == "" {
			errs = append(errs, "telemetry.endpoint is required when telemetry is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "location-weather",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:           "8080",
			ReadTimeout:    10,
			WriteTimeout:   10,
			IdleTimeout:    120,
			RequestTimeout: 25,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Geocoder: GeocoderConfig{
			BaseURL:   "https://nominatim.openstreetmap.org",
			UserAgent: "location-weather",
			Timeout:   10,
		},
		Forecast: ForecastConfig{
			BaseURL: "https://opendata-download-metfcst.smhi.se",
			Timeout: 10,
		},
		Telemetry: TelemetryConfig{
			Exporter: "zipkin",
			Endpoint: "http://localhost:9411/api/v2/spans",
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) ServerAddr() string {
	return ":" + c.Server.Port
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration    { return seconds(s.ReadTimeout) }
func (s ServerConfig) WriteTimeoutDuration() time.Duration   { return seconds(s.WriteTimeout) }
func (s ServerConfig) IdleTimeoutDuration() time.Duration    { return seconds(s.IdleTimeout) }
func (s ServerConfig) RequestTimeoutDuration() time.Duration { return seconds(s.RequestTimeout) }

func (g GeocoderConfig) TimeoutDuration() time.Duration { return seconds(g.Timeout) }
func (f ForecastConfig) TimeoutDuration() time.Duration { return seconds(f.Timeout) }
