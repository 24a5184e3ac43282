package domain

import "fmt"

// Immutable geographic coordinates (WGS 84).
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Validate rejects coordinates outside the valid WGS 84 range.
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %.6f out of range [-90,90]: %w", p.Lat, ErrInvalidCoordinate)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %.6f out of range [-180,180]: %w", p.Lon, ErrInvalidCoordinate)
	}
	return nil
}
