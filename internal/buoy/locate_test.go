package buoy

import (
	"errors"
	"testing"
)

func TestLocatorDisabledWithoutKey(t *testing.T) {
	locator := NewLocator(NewRegistry(DefaultStations()), "")

	_, _, err := locator.NearestStation("San Diego", "US")
	if !errors.Is(err, ErrGeocoderDisabled) {
		t.Fatalf("expected ErrGeocoderDisabled, got %v", err)
	}
}
