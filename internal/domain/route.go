package domain

import (
	"fmt"
	"time"
)

// Vehicle class a deliverer operates. Speeds and fuel rates per type are
// configuration values, not properties of the domain.
type VehicleType string

const (
	VehicleBicycle VehicleType = "BICYCLE"
	VehicleScooter VehicleType = "SCOOTER"
	VehicleCar     VehicleType = "CAR"
	VehicleVan     VehicleType = "VAN"
)

// TwoWheeled reports whether the vehicle handles fragile goods poorly.
func (v VehicleType) TwoWheeled() bool {
	return v == VehicleBicycle || v == VehicleScooter
}

// Optimization lifecycle of a route. Only DRAFT and ACTIVE routes are
// eligible inputs to the feasibility checker and sequencer.
type RouteStatus string

const (
	RouteDraft     RouteStatus = "DRAFT"
	RouteActive    RouteStatus = "ACTIVE"
	RouteCompleted RouteStatus = "COMPLETED"
	RouteCancelled RouteStatus = "CANCELLED"
)

// Plannable reports whether the route may still be mutated by matching
// or re-sequencing.
func (s RouteStatus) Plannable() bool {
	return s == RouteDraft || s == RouteActive
}

// Route is a deliverer's ordered, time- and capacity-constrained
// sequence of stops.
//
// CurrentPosition and CurrentPayloadKg describe an en-route snapshot:
// the deliverer's live location and the weight already on board before
// any of the remaining stops. Both are zero for routes not yet started.
type Route struct {
	ID               string
	DelivererID      string
	Stops            []Stop
	MaxCapacityKg    float64
	VehicleType      VehicleType
	CoolingCapable   bool
	CurrentPosition  *GeoPoint
	CurrentPayloadKg float64
	StartTime        time.Time
	Status           RouteStatus
}

// payloadEpsilon absorbs float accumulation noise in payload walks.
const payloadEpsilon = 1e-9

// Validate checks the route snapshot's own invariants before any
// computation touches it: valid stops, dropoffs after their pickups, and
// the running payload staying within [0, MaxCapacityKg] over every prefix.
// A violation means the snapshot is corrupt, not that a match is infeasible.
func (r Route) Validate() error {
	if r.MaxCapacityKg <= 0 {
		return fmt.Errorf("route %s: max capacity %.2f kg must be positive", r.ID, r.MaxCapacityKg)
	}
	if r.CurrentPosition != nil {
		if err := r.CurrentPosition.Validate(); err != nil {
			return fmt.Errorf("route %s: current position: %w", r.ID, err)
		}
	}
	if r.CurrentPayloadKg < 0 || r.CurrentPayloadKg > r.MaxCapacityKg {
		return fmt.Errorf("route %s: current payload %.2f/%.2f kg: %w",
			r.ID, r.CurrentPayloadKg, r.MaxCapacityKg, ErrCapacityExceeded)
	}

	picked := make(map[string]bool, len(r.Stops))
	payload := r.CurrentPayloadKg
	for i, s := range r.Stops {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("route %s: stop %d: %w", r.ID, i, err)
		}
		if s.Kind == StopDropoff && s.AnnouncementID != "" {
			// A dropoff with no preceding pickup is only legal when the
			// goods are already on board (en-route snapshot).
			if !picked[s.AnnouncementID] && r.CurrentPayloadKg == 0 {
				return fmt.Errorf("route %s: dropoff for announcement %s precedes its pickup: %w",
					r.ID, s.AnnouncementID, ErrUnpairedStop)
			}
		}
		if s.Kind == StopPickup {
			picked[s.AnnouncementID] = true
		}
		payload += s.PayloadDeltaKg
		if payload < -payloadEpsilon {
			return fmt.Errorf("route %s: payload %.2f kg negative after stop %d: %w",
				r.ID, payload, i, ErrCapacityExceeded)
		}
		if payload > r.MaxCapacityKg+payloadEpsilon {
			return fmt.Errorf("route %s: payload %.2f kg exceeds capacity %.2f after stop %d: %w",
				r.ID, payload, r.MaxCapacityKg, i, ErrCapacityExceeded)
		}
	}
	return nil
}

// MaxPayloadKg returns the largest running payload over the route.
func (r Route) MaxPayloadKg() float64 {
	payload := r.CurrentPayloadKg
	max := payload
	for _, s := range r.Stops {
		payload += s.PayloadDeltaKg
		if payload > max {
			max = payload
		}
	}
	return max
}

// HasCapacityRemaining reports whether the route could take on any
// additional load at all.
func (r Route) HasCapacityRemaining() bool {
	return r.MaxPayloadKg() < r.MaxCapacityKg
}
