package dto

import (
	"time"

	"delivery-matching-service/internal/domain"
)

type OptimizeRequest struct {
	Route        Route      `json:"route"`
	PendingPairs []StopPair `json:"pending_pairs"`
	Now          *time.Time `json:"now,omitempty"`
}

type ScheduledStopResponse struct {
	Stop
	Order                       int       `json:"order"`
	EstimatedArrival            time.Time `json:"estimated_arrival"`
	EstimatedDeparture          time.Time `json:"estimated_departure"`
	DistanceFromPreviousKm      float64   `json:"distance_from_previous_km"`
	DurationFromPreviousMinutes float64   `json:"duration_from_previous_minutes"`
}

type OptimizedRouteResponse struct {
	RouteID              string                  `json:"route_id"`
	DelivererID          string                  `json:"deliverer_id"`
	OrderedStops         []ScheduledStopResponse `json:"ordered_stops"`
	TotalDistanceKm      float64                 `json:"total_distance_km"`
	TotalDurationMinutes float64                 `json:"total_duration_minutes"`
	TotalFuelCost        float64                 `json:"total_fuel_cost"`
	OptimizationScore    float64                 `json:"optimization_score"`
	Unscheduled          []StopPair              `json:"unscheduled"`
}

func OptimizedRouteFromDomain(r domain.OptimizedRoute) OptimizedRouteResponse {
	stops := make([]ScheduledStopResponse, 0, len(r.OrderedStops))
	for _, s := range r.OrderedStops {
		stops = append(stops, ScheduledStopResponse{
			Stop:                        stopFromDomain(s.Stop),
			Order:                       s.Order,
			EstimatedArrival:            s.EstimatedArrival,
			EstimatedDeparture:          s.EstimatedDeparture,
			DistanceFromPreviousKm:      s.DistanceFromPreviousKm,
			DurationFromPreviousMinutes: s.DurationFromPreviousMinutes,
		})
	}
	unscheduled := make([]StopPair, 0, len(r.Unscheduled))
	for _, p := range r.Unscheduled {
		unscheduled = append(unscheduled, StopPairFromDomain(p))
	}
	return OptimizedRouteResponse{
		RouteID:              r.RouteID,
		DelivererID:          r.DelivererID,
		OrderedStops:         stops,
		TotalDistanceKm:      r.TotalDistanceKm,
		TotalDurationMinutes: r.TotalDurationMinutes,
		TotalFuelCost:        r.TotalFuelCost,
		OptimizationScore:    r.OptimizationScore,
		Unscheduled:          unscheduled,
	}
}
