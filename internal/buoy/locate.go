package buoy

import (
	"errors"
	"fmt"

	"github.com/kelvins/geocoder"
)

// ErrGeocoderDisabled is returned when no geocoding API key is configured.
var ErrGeocoderDisabled = errors.New("geocoder is not configured")

// Locator resolves free-form places to coordinates and maps them onto the
// nearest registered station.
type Locator struct {
	registry *Registry
	enabled  bool
}

// NewLocator wires the geocoding backend. An empty apiKey disables lookups.
func NewLocator(registry *Registry, apiKey string) *Locator {
	if apiKey != "" {
		geocoder.ApiKey = apiKey
	}
	return &Locator{registry: registry, enabled: apiKey != ""}
}

// NearestStation geocodes a city/country pair and returns the closest
// station together with its distance in kilometers.
func (l *Locator) NearestStation(city, country string) (Station, float64, error) {
	if !l.enabled {
		return Station{}, 0, ErrGeocoderDisabled
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: city, Country: country})
	if err != nil {
		return Station{}, 0, fmt.Errorf("geocode %q: %w", city+", "+country, err)
	}

	st, km := l.registry.Nearest(loc.Latitude, loc.Longitude)
	return st, km, nil
}
