package weather

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies why a report could not be produced.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindGeocodeNotFound
	KindLocationQueryFailed
	KindForecastUnavailable
	KindForecastUnreachable
	KindMalformedForecast
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindGeocodeNotFound:
		return "geocode_not_found"
	case KindLocationQueryFailed:
		return "location_query_failed"
	case KindForecastUnavailable:
		return "forecast_unavailable"
	case KindForecastUnreachable:
		return "forecast_unreachable"
	case KindMalformedForecast:
		return "malformed_forecast"
	default:
		return "unknown"
	}
}

// Status is the HTTP status a failure of this kind is answered with.
// Caller mistakes are 400, everything upstream is 500.
func (k Kind) Status() int {
	switch k {
	case KindInvalidInput, KindGeocodeNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

const msgInvalidInput = "The location parameter is missing or invalid."

// Error is returned by WeatherService. Error() is the message shown to
// the caller; the upstream cause is kept for logging.
type Error struct {
	Kind    Kind
	message string
	cause   error
}

func newError(kind Kind, cause error, format string, args ...any) *Error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Error{
		Kind:    kind,
		message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf reports the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Kind
	}
	return KindUnknown
}

// InvalidInput is the error for a request without a usable location.
func InvalidInput(cause error) *Error {
	return newError(KindInvalidInput, cause, msgInvalidInput)
}
