package domain

import "time"

// Reason tags explaining a compatibility score. The set is closed so the
// scorer's output is exhaustively testable; new tags require a new constant
// here, never an ad hoc string.
type Reason string

const (
	ReasonTimingCompatible    Reason = "TIMING_COMPATIBLE"
	ReasonWeightCompatible    Reason = "WEIGHT_COMPATIBLE"
	ReasonAcceptsFragile      Reason = "ACCEPTS_FRAGILE"
	ReasonAcceptsCooling      Reason = "ACCEPTS_COOLING"
	ReasonSameRoute           Reason = "SAME_ROUTE"
	ReasonGeographicProximity Reason = "GEOGRAPHIC_PROXIMITY"
	ReasonPriorityCompatible  Reason = "PRIORITY_COMPATIBLE"
)

// MatchCandidate is the scoring engine's verdict for one
// (announcement, route) pair. It is a transient recommendation: produced
// fresh on every scoring call, persisted or discarded by the caller.
type MatchCandidate struct {
	AnnouncementID           string
	RouteID                  string
	DelivererID              string
	Score                    int
	Reasons                  []Reason
	ExtraDistanceKm          float64
	DetourPercentage         float64
	EstimatedInsertionIndex  int
	PriceEstimate            float64
	EstimatedDurationMinutes int
}

// HasReason reports whether the candidate carries the given tag.
func (c MatchCandidate) HasReason(r Reason) bool {
	for _, have := range c.Reasons {
		if have == r {
			return true
		}
	}
	return false
}

// ScheduledStop is a stop with its projected timing inside an
// optimized route.
type ScheduledStop struct {
	Stop
	Order                       int
	EstimatedArrival            time.Time
	EstimatedDeparture          time.Time
	DistanceFromPreviousKm      float64
	DurationFromPreviousMinutes float64
}

// OptimizedRoute is the sequencer's output: a full visiting order with
// projected metrics, plus the pairs that could not be placed feasibly.
// Plain data; the caller persists, renders, or notifies from it.
type OptimizedRoute struct {
	RouteID              string
	DelivererID          string
	OrderedStops         []ScheduledStop
	TotalDistanceKm      float64
	TotalDurationMinutes float64
	TotalFuelCost        float64
	OptimizationScore    float64
	Unscheduled          []PendingStopPair
}
