package domain

import "fmt"

// Kind of physical visit a stop represents.
type StopKind string

const (
	StopPickup  StopKind = "PICKUP"
	StopDropoff StopKind = "DROPOFF"
)

// Stop is one physical visit belonging to a route.
//
// PayloadDeltaKg is positive for pickups and negative for dropoffs. A
// pickup and its paired dropoff share the same AnnouncementID, and the
// dropoff must appear strictly after the pickup in route order.
type Stop struct {
	ID                     string
	Kind                   StopKind
	Location               GeoPoint
	Window                 TimeWindow
	ServiceDurationMinutes float64
	PayloadDeltaKg         float64
	AnnouncementID         string
}

// Validate checks the stop's own invariants (location, window, and the
// sign of the payload delta matching its kind).
func (s Stop) Validate() error {
	if err := s.Location.Validate(); err != nil {
		return fmt.Errorf("stop %s: %w", s.ID, err)
	}
	if err := s.Window.Validate(); err != nil {
		return fmt.Errorf("stop %s: %w", s.ID, err)
	}
	switch s.Kind {
	case StopPickup:
		if s.PayloadDeltaKg < 0 {
			return fmt.Errorf("stop %s: pickup payload delta %.2f must not be negative", s.ID, s.PayloadDeltaKg)
		}
	case StopDropoff:
		if s.PayloadDeltaKg > 0 {
			return fmt.Errorf("stop %s: dropoff payload delta %.2f must not be positive", s.ID, s.PayloadDeltaKg)
		}
	default:
		return fmt.Errorf("stop %s: unknown kind %q", s.ID, s.Kind)
	}
	if s.ServiceDurationMinutes < 0 {
		return fmt.Errorf("stop %s: service duration %.1f must not be negative", s.ID, s.ServiceDurationMinutes)
	}
	return nil
}

// PendingStopPair is one announcement's pickup and dropoff awaiting
// placement by the route sequencer.
type PendingStopPair struct {
	AnnouncementID string
	Pickup         Stop
	Dropoff        Stop
	Priority       Priority
}

// PairStops groups a route's stops into pickup/dropoff pairs by
// announcement, preserving pickup order. A stop without its partner means
// the snapshot is corrupt and yields ErrUnpairedStop.
func PairStops(stops []Stop) ([]PendingStopPair, error) {
	byAnn := make(map[string]*PendingStopPair)
	order := make([]string, 0, len(stops)/2)

	for _, s := range stops {
		p, ok := byAnn[s.AnnouncementID]
		if !ok {
			p = &PendingStopPair{AnnouncementID: s.AnnouncementID, Priority: PriorityNormal}
			byAnn[s.AnnouncementID] = p
			order = append(order, s.AnnouncementID)
		}
		switch s.Kind {
		case StopPickup:
			if p.Pickup.ID != "" {
				return nil, fmt.Errorf("announcement %s has two pickups: %w", s.AnnouncementID, ErrUnpairedStop)
			}
			p.Pickup = s
		case StopDropoff:
			if p.Dropoff.ID != "" {
				return nil, fmt.Errorf("announcement %s has two dropoffs: %w", s.AnnouncementID, ErrUnpairedStop)
			}
			p.Dropoff = s
		}
	}

	pairs := make([]PendingStopPair, 0, len(order))
	for _, id := range order {
		p := byAnn[id]
		if p.Pickup.ID == "" || p.Dropoff.ID == "" {
			return nil, fmt.Errorf("announcement %s: %w", id, ErrUnpairedStop)
		}
		pairs = append(pairs, *p)
	}
	return pairs, nil
}
