package services

import (
	"context"
	"fmt"
	"time"

	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/domain"
)

// Insertion describes the best feasible placement of a pickup/dropoff
// pair inside an existing route.
type Insertion struct {
	// Indices of the new stops in the resulting sequence.
	PickupIndex  int
	DropoffIndex int

	// Increase in total route length caused by the two new stops.
	ExtraDistanceKm float64

	// Increase in total schedule duration, waiting and service included.
	ExtraDurationMinutes float64

	PickupArrival  time.Time
	DropoffArrival time.Time

	// Winning candidate sequence and its projected timings, kept for the
	// scorer so it never re-runs the search.
	stops   []domain.Stop
	timings []stopTiming
}

// FindBestInsertion decides whether a pickup+dropoff pair can be inserted
// into route without violating any stop's time window or the vehicle's
// capacity, and at which position.
//
// It enumerates every pair of insertion indices with the pickup at or
// before the dropoff, recomputes the schedule for each candidate, and
// keeps the feasible one with the smallest extra distance. Ties go to the
// earliest pickup arrival, then the lowest index pair, so the result is
// stable and deterministic.
//
// ok=false is the normal "not compatible" outcome, not an error. Errors
// are reserved for malformed snapshots and cancellation.
func FindBestInsertion(
	ctx context.Context,
	route domain.Route,
	pickup, dropoff domain.Stop,
	now time.Time,
	cfg config.Matching,
) (Insertion, bool, error) {
	if route.Status == domain.RouteCompleted || route.Status == domain.RouteCancelled {
		return Insertion{}, false, fmt.Errorf("find best insertion: route %s is %s: %w", route.ID, route.Status, ErrRouteNotPlannable)
	}
	if err := route.Validate(); err != nil {
		return Insertion{}, false, fmt.Errorf("find best insertion: %w", err)
	}
	if err := pickup.Validate(); err != nil {
		return Insertion{}, false, fmt.Errorf("find best insertion: pickup: %w", err)
	}
	if err := dropoff.Validate(); err != nil {
		return Insertion{}, false, fmt.Errorf("find best insertion: dropoff: %w", err)
	}

	// Baseline metrics of the route without the new pair. A baseline whose
	// own windows cannot be met admits no feasible insertion either.
	baseTimings, baseKm, baseOK := simulate(route, route.Stops, now, cfg)
	if !baseOK {
		return Insertion{}, false, nil
	}
	baseMinutes := scheduleDurationMinutes(route, baseTimings, now)

	n := len(route.Stops)
	var best Insertion
	found := false

	for pi := 0; pi <= n; pi++ {
		// The search loops are the only unbounded work; honor the caller's
		// cancellation signal between candidates.
		if err := ctx.Err(); err != nil {
			return Insertion{}, false, fmt.Errorf("find best insertion: %w: %w", ErrCancelled, err)
		}

		for di := pi; di <= n; di++ {
			candidate := spliceStops(route.Stops, pickup, dropoff, pi, di)
			timings, candKm, ok := simulate(route, candidate, now, cfg)
			if !ok {
				continue
			}

			ins := Insertion{
				PickupIndex:          pi,
				DropoffIndex:         di + 1,
				ExtraDistanceKm:      candKm - baseKm,
				ExtraDurationMinutes: scheduleDurationMinutes(route, timings, now) - baseMinutes,
				PickupArrival:        timings[pi].arrival,
				DropoffArrival:       timings[di+1].arrival,
				stops:                candidate,
				timings:              timings,
			}

			if !found || betterInsertion(ins, best) {
				best = ins
				found = true
			}
		}
	}

	if !found {
		return Insertion{}, false, nil
	}
	return best, true, nil
}

// distanceEpsilon separates genuinely cheaper insertions from float noise
// so tie-breaking stays stable.
const distanceEpsilon = 1e-9

// betterInsertion applies the deterministic preference chain: smaller
// extra distance, then earlier pickup arrival, then lower indices.
// Enumeration order (ascending index pairs) makes the index tie-break
// implicit: a later equal candidate never replaces the incumbent.
func betterInsertion(a, b Insertion) bool {
	if a.ExtraDistanceKm < b.ExtraDistanceKm-distanceEpsilon {
		return true
	}
	if a.ExtraDistanceKm > b.ExtraDistanceKm+distanceEpsilon {
		return false
	}
	return a.PickupArrival.Before(b.PickupArrival)
}

// spliceStops builds the candidate sequence with the pickup inserted at
// index pi and the dropoff immediately after index di of the original
// sequence, preserving pickup-before-dropoff order.
func spliceStops(stops []domain.Stop, pickup, dropoff domain.Stop, pi, di int) []domain.Stop {
	out := make([]domain.Stop, 0, len(stops)+2)
	out = append(out, stops[:pi]...)
	out = append(out, pickup)
	out = append(out, stops[pi:di]...)
	out = append(out, dropoff)
	out = append(out, stops[di:]...)
	return out
}
