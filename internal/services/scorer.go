package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/domain"
	"delivery-matching-service/internal/geo"
)

// Score computes the 0-100 compatibility between one announcement and one
// route, with the reason tags that make the number auditable.
//
// A score of 0 means no feasible insertion exists; that is a normal
// negative result, not an error. Given identical inputs (including now)
// the returned candidate is always identical.
func Score(
	ctx context.Context,
	ann domain.Announcement,
	route domain.Route,
	now time.Time,
	cfg config.Matching,
) (domain.MatchCandidate, error) {
	if err := ann.Validate(); err != nil {
		return domain.MatchCandidate{}, fmt.Errorf("score: %w", err)
	}

	candidate := domain.MatchCandidate{
		AnnouncementID: ann.ID,
		RouteID:        route.ID,
		DelivererID:    route.DelivererID,
	}

	pickup, dropoff := announcementStops(ann, cfg)
	ins, ok, err := FindBestInsertion(ctx, route, pickup, dropoff, now, cfg)
	if err != nil {
		return domain.MatchCandidate{}, fmt.Errorf("score: %w", err)
	}
	if !ok {
		return candidate, nil
	}

	baseKm := routeDistanceKm(route.CurrentPosition, route.Stops)
	detour := detourPercentage(ins.ExtraDistanceKm, baseKm)

	detourPenalty := math.Min(detour*cfg.DetourPenaltyPerPercent, cfg.DetourPenaltyCap)

	// Weight fits "with margin" when the free capacity left at the worst
	// point of the new sequence is a comfortable share of the vehicle max.
	var weightPenalty float64
	free := route.MaxCapacityKg - maxPayloadKg(route.CurrentPayloadKg, ins.stops)
	if free < cfg.WeightMarginFraction*route.MaxCapacityKg {
		weightPenalty = cfg.TightWeightPenalty
	}

	var timingPenalty float64
	if nearWindowEdge(ann.PickupWindow, ins.PickupArrival, cfg.WindowEdgeFraction) ||
		nearWindowEdge(ann.DeliveryWindow, ins.DropoffArrival, cfg.WindowEdgeFraction) {
		timingPenalty = cfg.WindowEdgePenalty
	}

	score := 100 - detourPenalty - weightPenalty - timingPenalty
	if score < 0 {
		score = 0
	}

	reasons := make([]domain.Reason, 0, 7)
	if timingPenalty == 0 {
		reasons = append(reasons, domain.ReasonTimingCompatible)
	}
	if weightPenalty == 0 {
		reasons = append(reasons, domain.ReasonWeightCompatible)
	}

	if ann.IsFragile && !route.VehicleType.TwoWheeled() {
		score += cfg.FragileBonus
		reasons = append(reasons, domain.ReasonAcceptsFragile)
	}
	if ann.NeedsCooling && route.CoolingCapable {
		score += cfg.CoolingBonus
		reasons = append(reasons, domain.ReasonAcceptsCooling)
	}
	if baseKm > 0 && ins.ExtraDistanceKm < cfg.SameRouteFraction*baseKm {
		score += cfg.SameRouteBonus
		reasons = append(reasons, domain.ReasonSameRoute)
	}
	if nearExistingStop(ann.Pickup.Point, route.Stops, cfg.ProximityRadiusKm) &&
		nearExistingStop(ann.Dropoff.Point, route.Stops, cfg.ProximityRadiusKm) {
		score += cfg.ProximityBonus
		reasons = append(reasons, domain.ReasonGeographicProximity)
	}
	if (ann.Priority == domain.PriorityHigh || ann.Priority == domain.PriorityUrgent) &&
		!pushesPastWindowFraction(ins, cfg.PriorityWindowFraction) {
		score += cfg.PriorityBonus
		reasons = append(reasons, domain.ReasonPriorityCompatible)
	}

	if score > 100 {
		score = 100
	}

	candidate.Score = int(math.Round(score))
	candidate.Reasons = reasons
	candidate.ExtraDistanceKm = ins.ExtraDistanceKm
	candidate.DetourPercentage = detour
	candidate.EstimatedInsertionIndex = ins.PickupIndex
	candidate.EstimatedDurationMinutes = int(math.Round(ins.ExtraDurationMinutes))
	candidate.PriceEstimate = priceEstimate(ann, ins.ExtraDistanceKm, cfg)
	return candidate, nil
}

// announcementStops derives the pickup/dropoff pair an announcement would
// add to a route.
func announcementStops(ann domain.Announcement, cfg config.Matching) (pickup, dropoff domain.Stop) {
	pickup = domain.Stop{
		Kind:                   domain.StopPickup,
		Location:               ann.Pickup.Point,
		Window:                 ann.PickupWindow,
		ServiceDurationMinutes: cfg.DefaultServiceMinutes,
		PayloadDeltaKg:         ann.WeightKg,
		AnnouncementID:         ann.ID,
	}
	dropoff = domain.Stop{
		Kind:                   domain.StopDropoff,
		Location:               ann.Dropoff.Point,
		Window:                 ann.DeliveryWindow,
		ServiceDurationMinutes: cfg.DefaultServiceMinutes,
		PayloadDeltaKg:         -ann.WeightKg,
		AnnouncementID:         ann.ID,
	}
	return pickup, dropoff
}

// detourPercentage relates extra distance to the route's existing length.
// A route with no legs treats any positive extra distance as a full detour.
func detourPercentage(extraKm, baseKm float64) float64 {
	if baseKm <= 0 {
		if extraKm <= 0 {
			return 0
		}
		return 100
	}
	return extraKm / baseKm * 100
}

// nearWindowEdge reports whether t sits in the first or last edge fraction
// of a bounded window. Unconstrained and exact-time windows have no edges.
func nearWindowEdge(w domain.TimeWindow, t time.Time, edgeFraction float64) bool {
	if w.IsZero() || w.Duration() <= 0 {
		return false
	}
	pos := w.Position(t)
	return pos < edgeFraction || pos > 1-edgeFraction
}

// nearExistingStop reports whether p lies within radiusKm of any stop.
func nearExistingStop(p domain.GeoPoint, stops []domain.Stop, radiusKm float64) bool {
	for _, s := range stops {
		if geo.IsWithinRadius(s.Location, p, radiusKm) {
			return true
		}
	}
	return false
}

// pushesPastWindowFraction reports whether any pre-existing stop in the
// winning sequence now arrives past the given fraction of its window.
func pushesPastWindowFraction(ins Insertion, fraction float64) bool {
	for i, s := range ins.stops {
		if i == ins.PickupIndex || i == ins.DropoffIndex {
			continue
		}
		if s.Window.IsZero() || s.Window.Duration() <= 0 {
			continue
		}
		if s.Window.Position(ins.timings[i].arrival) > fraction {
			return true
		}
	}
	return false
}

// priceEstimate returns the requester's asking price, or a distance-based
// fallback when none was suggested.
func priceEstimate(ann domain.Announcement, extraKm float64, cfg config.Matching) float64 {
	if ann.SuggestedPrice > 0 {
		return ann.SuggestedPrice
	}
	return math.Max(cfg.MinimumFare, extraKm*cfg.PerKmRate)
}
