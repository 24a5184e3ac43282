package services

import (
	"time"

	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/domain"
	"delivery-matching-service/internal/geo"
)

// stopTiming is the projected visit of one stop along a simulated route.
type stopTiming struct {
	// arrival is the effective service start: raw arrival, pushed forward
	// to the window's earliest bound when the vehicle gets there early.
	arrival   time.Time
	departure time.Time
	legKm     float64
}

// minutesDur converts fractional minutes to a time.Duration.
func minutesDur(min float64) time.Duration {
	return time.Duration(min * float64(time.Minute))
}

// departAt anchors a route's schedule: its declared start time, or the
// caller-supplied now for snapshots without one.
func departAt(route domain.Route, now time.Time) time.Time {
	if route.StartTime.IsZero() {
		return now
	}
	return route.StartTime
}

// routeDistanceKm sums the legs of visiting stops in order, starting from
// origin when the deliverer's position is known.
func routeDistanceKm(origin *domain.GeoPoint, stops []domain.Stop) float64 {
	var total float64
	cur := origin
	for i := range stops {
		if cur != nil {
			total += geo.DistanceKm(*cur, stops[i].Location)
		}
		cur = &stops[i].Location
	}
	return total
}

// simulate walks stops in order from the route's origin, projecting
// arrival and departure times and the running payload.
//
// Arriving before a window opens means waiting; arriving after it closes,
// or breaching capacity, makes the sequence infeasible (ok=false). Windows
// and capacity are hard constraints, never soft-penalized here.
func simulate(route domain.Route, stops []domain.Stop, now time.Time, cfg config.Matching) (timings []stopTiming, totalKm float64, ok bool) {
	speed := cfg.Speed(route.VehicleType)

	cur := departAt(route, now)
	loc := route.CurrentPosition
	payload := route.CurrentPayloadKg

	timings = make([]stopTiming, 0, len(stops))
	for i := range stops {
		s := &stops[i]

		var legKm float64
		if loc != nil {
			legKm = geo.DistanceKm(*loc, s.Location)
		}
		arrival := cur.Add(minutesDur(legKm / speed * 60))

		if !s.Window.IsZero() {
			if arrival.After(s.Window.Latest) {
				return nil, 0, false
			}
			if arrival.Before(s.Window.Earliest) {
				arrival = s.Window.Earliest
			}
		}

		payload += s.PayloadDeltaKg
		if payload < -1e-9 || payload > route.MaxCapacityKg+1e-9 {
			return nil, 0, false
		}

		departure := arrival.Add(minutesDur(s.ServiceDurationMinutes))
		timings = append(timings, stopTiming{arrival: arrival, departure: departure, legKm: legKm})

		totalKm += legKm
		cur = departure
		loc = &s.Location
	}
	return timings, totalKm, true
}

// scheduleDurationMinutes is the span from departure to the end of the
// last stop's service.
func scheduleDurationMinutes(route domain.Route, timings []stopTiming, now time.Time) float64 {
	if len(timings) == 0 {
		return 0
	}
	return timings[len(timings)-1].departure.Sub(departAt(route, now)).Minutes()
}

// maxPayloadKg returns the largest running payload over a stop sequence.
func maxPayloadKg(initial float64, stops []domain.Stop) float64 {
	payload := initial
	max := payload
	for _, s := range stops {
		payload += s.PayloadDeltaKg
		if payload > max {
			max = payload
		}
	}
	return max
}
