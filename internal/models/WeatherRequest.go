package models

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalidLocation = errors.New("the location parameter is missing or invalid")

// WeatherRequest is the body accepted by POST /weather.
type WeatherRequest struct {
	Location string `json:"location" example:"Stockholm, Sweden"`
}

// ParseWeatherRequest extracts the location from a raw request body.
// Anything but a JSON object carrying a non-blank string "location" is
// rejected with ErrInvalidLocation.
func ParseWeatherRequest(body []byte) (WeatherRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return WeatherRequest{}, ErrInvalidLocation
	}

	value, ok := raw["location"]
	if !ok {
		return WeatherRequest{}, ErrInvalidLocation
	}

	var location string
	if err := json.Unmarshal(value, &location); err != nil {
		return WeatherRequest{}, ErrInvalidLocation
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return WeatherRequest{}, ErrInvalidLocation
	}

	return WeatherRequest{Location: location}, nil
}
