package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/domain"
)

// OptimizeRoute computes a visiting order for a deliverer's full set of
// stops using cheapest insertion with priority weighting.
//
// The algorithm seeds the sequence with the pair whose window opens
// earliest, then repeatedly inserts the remaining pair with the lowest
// weighted cost (extra distance divided by the priority weight, so urgent
// work is placed earlier at a mild efficiency cost). Pairs with no
// feasible insertion anywhere are reported in Unscheduled, never silently
// dropped. It does not attempt global optimization; determinism and
// bounded work are preferred over optimality.
//
// The route's own stops are re-sequenced together with the pending pairs;
// its current position, when known, acts as the fixed starting point.
func OptimizeRoute(
	ctx context.Context,
	route domain.Route,
	pending []domain.PendingStopPair,
	now time.Time,
	cfg config.Matching,
) (domain.OptimizedRoute, error) {
	if route.Status == domain.RouteCompleted || route.Status == domain.RouteCancelled {
		return domain.OptimizedRoute{}, fmt.Errorf("optimize route: route %s is %s: %w", route.ID, route.Status, ErrRouteNotPlannable)
	}
	if err := route.Validate(); err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("optimize route: %w", err)
	}

	derived, err := domain.PairStops(route.Stops)
	if err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("optimize route: %w", err)
	}
	for _, p := range pending {
		if err := p.Pickup.Validate(); err != nil {
			return domain.OptimizedRoute{}, fmt.Errorf("optimize route: pending pair %s: %w", p.AnnouncementID, err)
		}
		if err := p.Dropoff.Validate(); err != nil {
			return domain.OptimizedRoute{}, fmt.Errorf("optimize route: pending pair %s: %w", p.AnnouncementID, err)
		}
	}

	out := domain.OptimizedRoute{RouteID: route.ID, DelivererID: route.DelivererID}

	remaining := make([]domain.PendingStopPair, 0, len(derived)+len(pending))
	remaining = append(remaining, derived...)
	remaining = append(remaining, pending...)
	if len(remaining) == 0 {
		return out, nil
	}

	// Distance of visiting the stops in their unsorted input order; the
	// optimization score quantifies improvement against this.
	naiveKm := naiveDistanceKm(route, pending)

	envelope := route
	envelope.Stops = nil

	var working []domain.Stop

	// Seed with the pair whose window opens earliest; a seed that cannot
	// stand alone on an empty route goes straight to Unscheduled.
	for len(remaining) > 0 && len(working) == 0 {
		if err := ctx.Err(); err != nil {
			return domain.OptimizedRoute{}, fmt.Errorf("optimize route: %w: %w", ErrCancelled, err)
		}

		si := seedIndex(remaining)
		seed := remaining[si]
		remaining = append(remaining[:si], remaining[si+1:]...)

		env := envelope
		ins, ok, insErr := FindBestInsertion(ctx, env, seed.Pickup, seed.Dropoff, now, cfg)
		if insErr != nil {
			return domain.OptimizedRoute{}, fmt.Errorf("optimize route: seed %s: %w", seed.AnnouncementID, insErr)
		}
		if !ok {
			out.Unscheduled = append(out.Unscheduled, seed)
			continue
		}
		working = ins.stops
	}

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return domain.OptimizedRoute{}, fmt.Errorf("optimize route: %w: %w", ErrCancelled, err)
		}

		env := envelope
		env.Stops = working

		bestIdx := -1
		var bestIns Insertion
		var bestCost float64

		feasible := remaining[:0]
		for _, pair := range remaining {
			ins, ok, insErr := FindBestInsertion(ctx, env, pair.Pickup, pair.Dropoff, now, cfg)
			if insErr != nil {
				return domain.OptimizedRoute{}, fmt.Errorf("optimize route: pair %s: %w", pair.AnnouncementID, insErr)
			}
			if !ok {
				// Adding stops only tightens constraints, so a pair that is
				// infeasible now stays infeasible; report it immediately.
				out.Unscheduled = append(out.Unscheduled, pair)
				continue
			}

			cost := ins.ExtraDistanceKm / cfg.Weight(pair.Priority)
			if bestIdx == -1 || cost < bestCost-distanceEpsilon ||
				(cost <= bestCost+distanceEpsilon && pair.AnnouncementID < feasible[bestIdx].AnnouncementID) {
				bestIdx = len(feasible)
				bestIns = ins
				bestCost = cost
			}
			feasible = append(feasible, pair)
		}
		remaining = feasible
		if bestIdx == -1 {
			break
		}

		working = bestIns.stops
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	env := envelope
	env.Stops = working
	timings, totalKm, ok := simulate(env, working, now, cfg)
	if !ok {
		// Every accepted insertion was simulated feasible, so this cannot
		// happen with consistent inputs.
		return domain.OptimizedRoute{}, errors.New("optimize route: final sequence infeasible")
	}

	speed := cfg.Speed(route.VehicleType)
	out.OrderedStops = make([]domain.ScheduledStop, len(working))
	for i, s := range working {
		out.OrderedStops[i] = domain.ScheduledStop{
			Stop:                        s,
			Order:                       i,
			EstimatedArrival:            timings[i].arrival,
			EstimatedDeparture:          timings[i].departure,
			DistanceFromPreviousKm:      timings[i].legKm,
			DurationFromPreviousMinutes: timings[i].legKm / speed * 60,
		}
	}
	out.TotalDistanceKm = totalKm
	out.TotalDurationMinutes = scheduleDurationMinutes(env, timings, now)
	out.TotalFuelCost = totalKm * cfg.FuelRate(route.VehicleType)
	out.OptimizationScore = optimizationScore(totalKm, naiveKm)
	return out, nil
}

// naiveDistanceKm measures the route as given: committed stops in stored
// order, then each pending pair's pickup and dropoff in input order.
func naiveDistanceKm(route domain.Route, pending []domain.PendingStopPair) float64 {
	stops := make([]domain.Stop, 0, len(route.Stops)+2*len(pending))
	stops = append(stops, route.Stops...)
	for _, p := range pending {
		stops = append(stops, p.Pickup, p.Dropoff)
	}
	return routeDistanceKm(route.CurrentPosition, stops)
}

// seedIndex selects the pair whose combined window opens earliest, ties
// broken by announcement id. Unconstrained pairs sort last.
func seedIndex(pairs []domain.PendingStopPair) int {
	best := 0
	bestAnchor := windowAnchor(pairs[0])
	for i := 1; i < len(pairs); i++ {
		anchor := windowAnchor(pairs[i])
		if anchor.Before(bestAnchor) ||
			(anchor.Equal(bestAnchor) && pairs[i].AnnouncementID < pairs[best].AnnouncementID) {
			best = i
			bestAnchor = anchor
		}
	}
	return best
}

// farFuture orders unconstrained pairs after every bounded one.
var farFuture = time.Unix(1<<40, 0)

func windowAnchor(p domain.PendingStopPair) time.Time {
	anchor := farFuture
	if !p.Pickup.Window.IsZero() && p.Pickup.Window.Earliest.Before(anchor) {
		anchor = p.Pickup.Window.Earliest
	}
	if !p.Dropoff.Window.IsZero() && p.Dropoff.Window.Earliest.Before(anchor) {
		anchor = p.Dropoff.Window.Earliest
	}
	return anchor
}

// optimizationScore quantifies improvement over the naive order,
// floored at 0 and capped at 100.
func optimizationScore(totalKm, naiveKm float64) float64 {
	if naiveKm <= 0 {
		return 0
	}
	score := 100 * (1 - totalKm/naiveKm)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
