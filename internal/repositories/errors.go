package repositories

import (
	"errors"
	"fmt"
)

var ErrLocationNotFound = errors.New("no geocoding result for location")

// TransportError means the provider could not be reached: DNS, connect,
// timeout or cancellation.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError means the provider answered with something other than 200.
type StatusError struct {
	Provider string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status code %d", e.Provider, e.Code)
}

// DecodeError means the provider answered 200 with a body that could not
// be read or decoded.
type DecodeError struct {
	Provider string
	Err      error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
