package domain

import (
	"errors"
	"testing"
)

func pickup(id, annID string, kg float64) Stop {
	return Stop{ID: id, Kind: StopPickup, Location: GeoPoint{Lat: 48.85, Lon: 2.35}, PayloadDeltaKg: kg, AnnouncementID: annID}
}

func dropoff(id, annID string, kg float64) Stop {
	return Stop{ID: id, Kind: StopDropoff, Location: GeoPoint{Lat: 48.86, Lon: 2.37}, PayloadDeltaKg: -kg, AnnouncementID: annID}
}

func TestRouteValidate(t *testing.T) {
	r := Route{
		ID:            "r1",
		DelivererID:   "d1",
		MaxCapacityKg: 100,
		VehicleType:   VehicleVan,
		Status:        RouteDraft,
		Stops: []Stop{
			pickup("s1", "a1", 40),
			pickup("s2", "a2", 30),
			dropoff("s3", "a1", 40),
			dropoff("s4", "a2", 30),
		},
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid route rejected: %v", err)
	}
	if got := r.MaxPayloadKg(); got != 70 {
		t.Fatalf("max payload = %f, want 70", got)
	}
	if !r.HasCapacityRemaining() {
		t.Fatal("route with headroom should report capacity remaining")
	}
}

func TestRouteValidateCapacityExceeded(t *testing.T) {
	r := Route{
		ID:            "r1",
		MaxCapacityKg: 50,
		Stops: []Stop{
			pickup("s1", "a1", 40),
			pickup("s2", "a2", 30),
			dropoff("s3", "a1", 40),
			dropoff("s4", "a2", 30),
		},
	}
	if err := r.Validate(); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("overloaded prefix error = %v, want ErrCapacityExceeded", err)
	}
}

func TestRouteValidateDropoffBeforePickup(t *testing.T) {
	r := Route{
		ID:            "r1",
		MaxCapacityKg: 100,
		Stops: []Stop{
			dropoff("s1", "a1", 10),
			pickup("s2", "a1", 10),
		},
	}
	if err := r.Validate(); !errors.Is(err, ErrUnpairedStop) {
		t.Fatalf("inverted pair error = %v, want ErrUnpairedStop", err)
	}
}

func TestRouteValidateEnRouteSnapshot(t *testing.T) {
	// Goods already on board: a leading dropoff with no preceding pickup
	// is legal as long as the payload walk stays non-negative.
	r := Route{
		ID:               "r1",
		MaxCapacityKg:    100,
		CurrentPayloadKg: 25,
		CurrentPosition:  &GeoPoint{Lat: 48.85, Lon: 2.35},
		Stops: []Stop{
			dropoff("s1", "a1", 25),
		},
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("en-route snapshot rejected: %v", err)
	}

	r.Stops = append(r.Stops, dropoff("s2", "a2", 10))
	if err := r.Validate(); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("negative payload error = %v, want ErrCapacityExceeded", err)
	}
}

func TestRouteValidateBadInputs(t *testing.T) {
	if err := (Route{ID: "r1"}).Validate(); err == nil {
		t.Fatal("zero capacity should be rejected")
	}

	r := Route{
		ID:            "r1",
		MaxCapacityKg: 100,
		Stops:         []Stop{{ID: "s1", Kind: StopPickup, Location: GeoPoint{Lat: 91, Lon: 0}, PayloadDeltaKg: 1}},
	}
	if err := r.Validate(); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("bad stop coordinate error = %v, want ErrInvalidCoordinate", err)
	}
}

func TestRouteHasCapacityRemainingAtLimit(t *testing.T) {
	r := Route{
		ID:            "r1",
		MaxCapacityKg: 50,
		Stops: []Stop{
			pickup("s1", "a1", 50),
			dropoff("s2", "a1", 50),
		},
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("route at exact capacity rejected: %v", err)
	}
	if r.HasCapacityRemaining() {
		t.Fatal("route at exact capacity should not report headroom")
	}
}

func TestVehicleTypeTwoWheeled(t *testing.T) {
	cases := map[VehicleType]bool{
		VehicleBicycle: true,
		VehicleScooter: true,
		VehicleCar:     false,
		VehicleVan:     false,
	}
	for v, want := range cases {
		if got := v.TwoWheeled(); got != want {
			t.Fatalf("%s.TwoWheeled() = %v, want %v", v, got, want)
		}
	}
}

func TestPairStops(t *testing.T) {
	stops := []Stop{
		pickup("s1", "a1", 10),
		pickup("s2", "a2", 5),
		dropoff("s3", "a2", 5),
		dropoff("s4", "a1", 10),
	}
	pairs, err := PairStops(stops)
	if err != nil {
		t.Fatalf("PairStops: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].AnnouncementID != "a1" || pairs[1].AnnouncementID != "a2" {
		t.Fatalf("pair order = %s, %s; want a1, a2", pairs[0].AnnouncementID, pairs[1].AnnouncementID)
	}
	if pairs[0].Pickup.ID != "s1" || pairs[0].Dropoff.ID != "s4" {
		t.Fatalf("a1 pair = %s/%s, want s1/s4", pairs[0].Pickup.ID, pairs[0].Dropoff.ID)
	}
	if pairs[0].Priority != PriorityNormal {
		t.Fatalf("derived pair priority = %s, want NORMAL", pairs[0].Priority)
	}
}

func TestPairStopsUnpaired(t *testing.T) {
	_, err := PairStops([]Stop{pickup("s1", "a1", 10)})
	if !errors.Is(err, ErrUnpairedStop) {
		t.Fatalf("missing dropoff error = %v, want ErrUnpairedStop", err)
	}

	_, err = PairStops([]Stop{
		pickup("s1", "a1", 10),
		pickup("s2", "a1", 10),
		dropoff("s3", "a1", 10),
	})
	if !errors.Is(err, ErrUnpairedStop) {
		t.Fatalf("duplicate pickup error = %v, want ErrUnpairedStop", err)
	}
}
