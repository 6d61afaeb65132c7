package models

import (
	"errors"
	"fmt"
)

// SMHI parameter names for the values the service reports.
const (
	ParamTemperature = "t"  // air temperature, Cel
	ParamWindSpeed   = "ws" // wind speed, m/s
)

var (
	ErrNoTimeSteps      = errors.New("forecast contains no time steps")
	ErrMissingParameter = errors.New("parameter not found in first time step")
	ErrNoValues         = errors.New("parameter has no values")
)

// ForecastPayload mirrors the pmp3g point forecast document. It is
// upstream input: any slice may be empty.
type ForecastPayload struct {
	ApprovedTime  string     `json:"approvedTime"`
	ReferenceTime string     `json:"referenceTime"`
	TimeSeries    []TimeStep `json:"timeSeries"`
}

type TimeStep struct {
	ValidTime  string      `json:"validTime"`
	Parameters []Parameter `json:"parameters"`
}

type Parameter struct {
	Name      string    `json:"name"`
	LevelType string    `json:"levelType"`
	Level     int       `json:"level"`
	Unit      string    `json:"unit"`
	Values    []float64 `json:"values"`
}

// ForecastSummary holds the nearest time step's temperature (°C) and wind
// speed (m/s).
type ForecastSummary struct {
	Temperature float64 `json:"temperature" example:"5.2"`
	WindSpeed   float64 `json:"wind_speed" example:"3.1"`
	ValidTime   string  `json:"valid_time,omitempty" example:"2024-03-01T12:00:00Z"`
}

// Summary reads temperature and wind speed from the first time step,
// selecting parameters by name rather than by position.
func (p ForecastPayload) Summary() (ForecastSummary, error) {
	if len(p.TimeSeries) == 0 {
		return ForecastSummary{}, ErrNoTimeSteps
	}

	step := p.TimeSeries[0]
	params := step.byName()

	temperature, err := firstValue(params, ParamTemperature)
	if err != nil {
		return ForecastSummary{}, err
	}

	windSpeed, err := firstValue(params, ParamWindSpeed)
	if err != nil {
		return ForecastSummary{}, err
	}

	return ForecastSummary{
		Temperature: temperature,
		WindSpeed:   windSpeed,
		ValidTime:   step.ValidTime,
	}, nil
}

// byName keeps the first parameter seen for each name.
func (s TimeStep) byName() map[string]Parameter {
	params := make(map[string]Parameter, len(s.Parameters))
	for _, param := range s.Parameters {
		if _, seen := params[param.Name]; !seen {
			params[param.Name] = param
		}
	}
	return params
}

func firstValue(params map[string]Parameter, name string) (float64, error) {
	param, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingParameter, name)
	}
	if len(param.Values) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoValues, name)
	}
	return param.Values[0], nil
}
