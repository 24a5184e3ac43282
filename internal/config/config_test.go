package config

import (
	"testing"

	"delivery-matching-service/internal/domain"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CFG_TEST_STR", "hello")
	if got := Get("CFG_TEST_STR", "fallback"); got != "hello" {
		t.Fatalf("Get = %q, want hello", got)
	}
	if got := Get("CFG_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("Get unset = %q, want fallback", got)
	}

	t.Setenv("CFG_TEST_FLOAT", "2.5")
	if got := GetFloat("CFG_TEST_FLOAT", 1); got != 2.5 {
		t.Fatalf("GetFloat = %f, want 2.5", got)
	}
	t.Setenv("CFG_TEST_BAD_FLOAT", "not-a-number")
	if got := GetFloat("CFG_TEST_BAD_FLOAT", 1.5); got != 1.5 {
		t.Fatalf("GetFloat malformed = %f, want fallback 1.5", got)
	}

	t.Setenv("CFG_TEST_INT", "42")
	if got := GetInt("CFG_TEST_INT", 7); got != 42 {
		t.Fatalf("GetInt = %d, want 42", got)
	}
	if got := GetInt("CFG_TEST_UNSET", 7); got != 7 {
		t.Fatalf("GetInt unset = %d, want fallback 7", got)
	}
}

func TestMatchingFromEnv(t *testing.T) {
	t.Setenv("MATCH_MIN_SCORE", "75")
	t.Setenv("PRICE_MINIMUM_FARE", "8")

	m := MatchingFromEnv()
	if m.MinScore != 75 {
		t.Fatalf("MinScore = %d, want 75", m.MinScore)
	}
	if m.MinimumFare != 8 {
		t.Fatalf("MinimumFare = %f, want 8", m.MinimumFare)
	}
	// Untouched knobs keep their defaults.
	if m.DetourPenaltyCap != 50 {
		t.Fatalf("DetourPenaltyCap = %f, want 50", m.DetourPenaltyCap)
	}
}

func TestMatchingAccessorFallbacks(t *testing.T) {
	m := DefaultMatching()

	if got := m.Speed(domain.VehicleBicycle); got != 15 {
		t.Fatalf("bicycle speed = %f, want 15", got)
	}
	if got := m.Speed("HOVERBOARD"); got != m.SpeedKmh[domain.VehicleVan] {
		t.Fatalf("unknown vehicle speed = %f, want van fallback", got)
	}
	if got := m.FuelRate(domain.VehicleBicycle); got != 0 {
		t.Fatalf("bicycle fuel rate = %f, want 0", got)
	}
	if got := m.FuelRate("HOVERBOARD"); got != m.FuelRatePerKm[domain.VehicleVan] {
		t.Fatalf("unknown vehicle fuel rate = %f, want van fallback", got)
	}

	if got := m.Weight(domain.PriorityUrgent); got != 4 {
		t.Fatalf("urgent weight = %f, want 4", got)
	}
	if got := m.Weight(domain.PriorityLow); got != 0.75 {
		t.Fatalf("low weight = %f, want 0.75", got)
	}
	if got := m.Weight("UNKNOWN"); got != 1 {
		t.Fatalf("unknown priority weight = %f, want 1", got)
	}
}
