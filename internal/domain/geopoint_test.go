package domain

import (
	"errors"
	"testing"
)

func TestGeoPointValidate(t *testing.T) {
	cases := []struct {
		name string
		p    GeoPoint
		ok   bool
	}{
		{"paris", GeoPoint{Lat: 48.8566, Lon: 2.3522}, true},
		{"zero", GeoPoint{}, true},
		{"pole", GeoPoint{Lat: 90, Lon: -180}, true},
		{"lat too high", GeoPoint{Lat: 90.1}, false},
		{"lat too low", GeoPoint{Lat: -91}, false},
		{"lon too high", GeoPoint{Lon: 180.5}, false},
		{"lon too low", GeoPoint{Lon: -181}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.p.Validate()
			if c.ok && err != nil {
				t.Fatalf("valid point rejected: %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidCoordinate) {
				t.Fatalf("error = %v, want ErrInvalidCoordinate", err)
			}
		})
	}
}
