package models

import (
	"fmt"
	"math"
	"strconv"
)

const coordinateScale = 1e6

// Coordinates are always held rounded to 6 decimal places.
type Coordinates struct {
	Latitude  float64 `json:"latitude" example:"59.329324"`
	Longitude float64 `json:"longitude" example:"18.068581"`
}

func NewCoordinates(latitude, longitude float64) Coordinates {
	return Coordinates{
		Latitude:  RoundCoordinate(latitude),
		Longitude: RoundCoordinate(longitude),
	}
}

func RoundCoordinate(v float64) float64 {
	return math.Round(v*coordinateScale) / coordinateScale
}

// PathLatitude and PathLongitude render the coordinate in its shortest
// decimal form, the way it is embedded in forecast URL path segments.
func (c Coordinates) PathLatitude() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}

func (c Coordinates) PathLongitude() string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

func (c Coordinates) RequestParams() string {
	return fmt.Sprintf("lat: %s lon: %s", c.PathLatitude(), c.PathLongitude())
}
