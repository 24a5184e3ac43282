// Package config centralizes every named constant the matching and
// sequencing services consume. Nothing in internal/services reads the
// environment; binaries build a Matching value here and pass it down.
package config

import (
	"os"
	"strconv"

	"delivery-matching-service/internal/domain"
)

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetFloat returns the environment value for key parsed as a float,
// or fallback when unset or malformed.
func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetInt returns the environment value for key parsed as an int,
// or fallback when unset or malformed.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Matching carries every tunable the scorer and sequencer use.
type Matching struct {
	// Average speed per vehicle type, km/h. Travel time between stops is
	// distance divided by this, plus the destination's service minutes.
	SpeedKmh map[domain.VehicleType]float64

	// Fuel cost per driven kilometer, per vehicle type.
	FuelRatePerKm map[domain.VehicleType]float64

	// Service time assumed for stops derived from announcements, minutes.
	DefaultServiceMinutes float64

	// Pricing fallback when an announcement has no suggested price.
	MinimumFare float64
	PerKmRate   float64

	// Radius for the GEOGRAPHIC_PROXIMITY bonus, kilometers.
	ProximityRadiusKm float64

	// Candidates scoring below this are dropped by the ranker.
	MinScore int

	// Scoring penalties.
	DetourPenaltyPerPercent float64
	DetourPenaltyCap        float64
	TightWeightPenalty      float64
	WindowEdgePenalty       float64

	// A weight fits "with margin" when the free capacity left after the
	// insertion is at least this fraction of the vehicle's maximum.
	WeightMarginFraction float64

	// Arrival inside the first or last WindowEdgeFraction of a window
	// costs WindowEdgePenalty points.
	WindowEdgeFraction float64

	// Extra distance below this fraction of the route's total earns the
	// SAME_ROUTE bonus.
	SameRouteFraction float64

	// The PRIORITY_COMPATIBLE bonus requires no existing stop pushed past
	// this fraction of its window.
	PriorityWindowFraction float64

	// Scoring bonuses, each independently tunable.
	FragileBonus   float64
	CoolingBonus   float64
	SameRouteBonus float64
	ProximityBonus float64
	PriorityBonus  float64

	// Sequencer insertion cost divisors per priority.
	PriorityWeight map[domain.Priority]float64
}

// DefaultMatching returns the production defaults.
func DefaultMatching() Matching {
	return Matching{
		SpeedKmh: map[domain.VehicleType]float64{
			domain.VehicleBicycle: 15,
			domain.VehicleScooter: 35,
			domain.VehicleCar:     45,
			domain.VehicleVan:     40,
		},
		FuelRatePerKm: map[domain.VehicleType]float64{
			domain.VehicleBicycle: 0,
			domain.VehicleScooter: 0.04,
			domain.VehicleCar:     0.12,
			domain.VehicleVan:     0.18,
		},
		DefaultServiceMinutes:   5,
		MinimumFare:             5,
		PerKmRate:               1.2,
		ProximityRadiusKm:       2,
		MinScore:                60,
		DetourPenaltyPerPercent: 2,
		DetourPenaltyCap:        50,
		TightWeightPenalty:      10,
		WindowEdgePenalty:       5,
		WeightMarginFraction:    0.2,
		WindowEdgeFraction:      0.1,
		SameRouteFraction:       0.01,
		PriorityWindowFraction:  0.9,
		FragileBonus:            5,
		CoolingBonus:            5,
		SameRouteBonus:          5,
		ProximityBonus:          5,
		PriorityBonus:           5,
		PriorityWeight: map[domain.Priority]float64{
			domain.PriorityUrgent: 4,
			domain.PriorityHigh:   2,
			domain.PriorityNormal: 1,
			domain.PriorityLow:    0.75,
		},
	}
}

// MatchingFromEnv returns the defaults with the operationally tuned knobs
// overridable from the environment.
func MatchingFromEnv() Matching {
	m := DefaultMatching()
	m.MinScore = GetInt("MATCH_MIN_SCORE", m.MinScore)
	m.ProximityRadiusKm = GetFloat("MATCH_PROXIMITY_RADIUS_KM", m.ProximityRadiusKm)
	m.MinimumFare = GetFloat("PRICE_MINIMUM_FARE", m.MinimumFare)
	m.PerKmRate = GetFloat("PRICE_PER_KM_RATE", m.PerKmRate)
	m.DefaultServiceMinutes = GetFloat("STOP_SERVICE_MINUTES", m.DefaultServiceMinutes)
	return m
}

// Speed returns the configured speed for a vehicle type, falling back to
// the van profile for unknown types so estimates stay finite.
func (m Matching) Speed(v domain.VehicleType) float64 {
	if s, ok := m.SpeedKmh[v]; ok && s > 0 {
		return s
	}
	return m.SpeedKmh[domain.VehicleVan]
}

// FuelRate returns the configured fuel rate for a vehicle type.
func (m Matching) FuelRate(v domain.VehicleType) float64 {
	if r, ok := m.FuelRatePerKm[v]; ok {
		return r
	}
	return m.FuelRatePerKm[domain.VehicleVan]
}

// Weight returns the insertion cost divisor for a priority.
func (m Matching) Weight(p domain.Priority) float64 {
	if w, ok := m.PriorityWeight[p]; ok && w > 0 {
		return w
	}
	return 1
}
