package geocode

import (
	"context"
	"errors"
	"testing"

	"partyconnect/internal/domain/geo"
)

func TestGeocodeExactMatch(t *testing.T) {
	r := NewTableResolver()
	c, err := r.Geocode(context.Background(), "Austin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 30.2672 || c.Lon != -97.7431 {
		t.Errorf("unexpected coordinates: %v", c)
	}
}

func TestGeocodePartialMatch(t *testing.T) {
	r := NewTableResolver()
	c, err := r.Geocode(context.Background(), "downtown los angeles area")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 34.0522 {
		t.Errorf("unexpected coordinates: %v", c)
	}
}

func TestGeocodeUnknown(t *testing.T) {
	r := NewTableResolver()
	_, err := r.Geocode(context.Background(), "atlantis")
	if !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("expected ErrUnknownLocation, got %v", err)
	}
	if _, err := r.Geocode(context.Background(), "   "); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("expected ErrUnknownLocation for blank query, got %v", err)
	}
}

func TestReverseGeocodeNearest(t *testing.T) {
	r := NewTableResolver()
	// A point a few km from central Austin should still resolve to Austin.
	name := r.ReverseGeocode(context.Background(), geo.Coordinates{Lat: 30.3, Lon: -97.75})
	if name != "Austin, TX" {
		t.Errorf("got %q, want Austin, TX", name)
	}
}

func TestReverseGeocodeUnknown(t *testing.T) {
	r := NewTableResolver()
	// Middle of the South Atlantic; nothing within the match radius.
	name := r.ReverseGeocode(context.Background(), geo.Coordinates{Lat: -40, Lon: -20})
	if name != "Unknown location" {
		t.Errorf("got %q, want Unknown location", name)
	}
}

func TestWithEntryOverride(t *testing.T) {
	r := NewTableResolver(
		WithEntry("austin", "Austin (test)", geo.Coordinates{Lat: 1, Lon: 2}),
		WithEntry("springfield", "Springfield, USA", geo.Coordinates{Lat: 39.8, Lon: -89.65}),
	)
	c, err := r.Geocode(context.Background(), "austin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 1 || c.Lon != 2 {
		t.Errorf("override not applied: %v", c)
	}
	if _, err := r.Geocode(context.Background(), "springfield"); err != nil {
		t.Errorf("added entry not found: %v", err)
	}
}
