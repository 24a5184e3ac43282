// Package geo provides pure great-circle math over domain coordinates.
// All functions are deterministic and allocation-free; coordinate
// validation is the caller's responsibility.
package geo

import (
	"math"

	"delivery-matching-service/internal/domain"
)

// Mean Earth radius in kilometers (IUGG).
const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance between two points.
func DistanceKm(a, b domain.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Bearing returns the initial compass bearing from a to b in degrees [0,360).
func Bearing(a, b domain.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// IsWithinRadius reports whether point lies within radiusKm of center.
func IsWithinRadius(center, point domain.GeoPoint, radiusKm float64) bool {
	return DistanceKm(center, point) <= radiusKm
}
