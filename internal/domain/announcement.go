package domain

import (
	"fmt"
	"time"
)

// Priority of a delivery request. Higher priorities are inserted earlier
// by the route sequencer even at a mild efficiency cost.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Lifecycle of an announcement from publication to resolution.
type AnnouncementStatus string

const (
	AnnouncementOpen      AnnouncementStatus = "OPEN"
	AnnouncementMatched   AnnouncementStatus = "MATCHED"
	AnnouncementExpired   AnnouncementStatus = "EXPIRED"
	AnnouncementCancelled AnnouncementStatus = "CANCELLED"
)

// Address pairs a resolved coordinate with its human-readable label.
// Geocoding happens upstream; the matching core only consumes the point.
type Address struct {
	Point GeoPoint
	Label string
}

// Announcement is a published delivery request awaiting a deliverer match.
//
// Zero-valued PickupWindow/DeliveryWindow mean the requester is fully
// flexible on timing.
type Announcement struct {
	ID             string
	Pickup         Address
	Dropoff        Address
	PickupWindow   TimeWindow
	DeliveryWindow TimeWindow
	WeightKg       float64
	IsFragile      bool
	NeedsCooling   bool
	SuggestedPrice float64
	Priority       Priority
	Status         AnnouncementStatus
	CreatedAt      time.Time
}

// Validate checks the announcement invariants: resolved coordinates,
// well-formed windows, non-negative weight and price.
func (a Announcement) Validate() error {
	if err := a.Pickup.Point.Validate(); err != nil {
		return fmt.Errorf("announcement %s: pickup: %w", a.ID, err)
	}
	if err := a.Dropoff.Point.Validate(); err != nil {
		return fmt.Errorf("announcement %s: dropoff: %w", a.ID, err)
	}
	if err := a.PickupWindow.Validate(); err != nil {
		return fmt.Errorf("announcement %s: pickup window: %w", a.ID, err)
	}
	if err := a.DeliveryWindow.Validate(); err != nil {
		return fmt.Errorf("announcement %s: delivery window: %w", a.ID, err)
	}
	if a.WeightKg < 0 {
		return fmt.Errorf("announcement %s: weight %.2f kg must not be negative", a.ID, a.WeightKg)
	}
	if a.SuggestedPrice < 0 {
		return fmt.Errorf("announcement %s: suggested price %.2f must not be negative", a.ID, a.SuggestedPrice)
	}
	return nil
}

// ExpiredAt reports whether the delivery window has fully passed at the
// given instant. Stale-OPEN snapshots are treated as expired by the ranker.
func (a Announcement) ExpiredAt(now time.Time) bool {
	if a.DeliveryWindow.IsZero() {
		return false
	}
	return a.DeliveryWindow.Latest.Before(now)
}
