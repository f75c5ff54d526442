package geo

import (
	"math"
	"strings"

	"freight-core/internal/pkg/errs"
)

const EarthRadiusKm = 6371.0

var (
	ErrInvalidCoordinates = errs.New("coordinates out of range")
	ErrCityRequired       = errs.New("city is required")
)

// Immutable latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Coordinates{}, ErrInvalidCoordinates
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

type Location struct {
	address     string
	city        string
	coordinates Coordinates
}

func NewLocation(address, city string, coords Coordinates) (Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Location{}, ErrCityRequired
	}
	if _, err := NewCoordinates(coords.Lat, coords.Lng); err != nil {
		return Location{}, err
	}
	return Location{
		address:     strings.TrimSpace(address),
		city:        city,
		coordinates: coords,
	}, nil
}

// ReconstructLocation rebuilds a stored location without validation.
func ReconstructLocation(address, city string, coords Coordinates) Location {
	return Location{address: address, city: city, coordinates: coords}
}

func (l Location) Address() string          { return l.address }
func (l Location) City() string             { return l.city }
func (l Location) Coordinates() Coordinates { return l.coordinates }

// SameCity compares city names case-insensitively.
func SameCity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
