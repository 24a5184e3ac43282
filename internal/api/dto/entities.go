package dto

import (
	"time"

	"delivery-matching-service/internal/domain"
)

// Wire representations of the snapshot entities callers post for scoring
// and optimization. Conversion to domain types happens here so handlers
// never hand raw JSON shapes to the services.

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) ToDomain() domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

// Window with both bounds absent means fully flexible.
type Window struct {
	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`
}

func (w Window) ToDomain() domain.TimeWindow {
	var out domain.TimeWindow
	if w.Earliest != nil {
		out.Earliest = *w.Earliest
	}
	if w.Latest != nil {
		out.Latest = *w.Latest
	}
	return out
}

type Announcement struct {
	ID             string    `json:"id"`
	PickupPoint    Point     `json:"pickup_point"`
	PickupLabel    string    `json:"pickup_label"`
	DropoffPoint   Point     `json:"dropoff_point"`
	DropoffLabel   string    `json:"dropoff_label"`
	PickupWindow   Window    `json:"pickup_window"`
	DeliveryWindow Window    `json:"delivery_window"`
	WeightKg       float64   `json:"weight_kg"`
	IsFragile      bool      `json:"is_fragile"`
	NeedsCooling   bool      `json:"needs_cooling"`
	SuggestedPrice float64   `json:"suggested_price"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (a Announcement) ToDomain() domain.Announcement {
	priority := domain.Priority(a.Priority)
	if a.Priority == "" {
		priority = domain.PriorityNormal
	}
	status := domain.AnnouncementStatus(a.Status)
	if a.Status == "" {
		status = domain.AnnouncementOpen
	}
	return domain.Announcement{
		ID:             a.ID,
		Pickup:         domain.Address{Point: a.PickupPoint.ToDomain(), Label: a.PickupLabel},
		Dropoff:        domain.Address{Point: a.DropoffPoint.ToDomain(), Label: a.DropoffLabel},
		PickupWindow:   a.PickupWindow.ToDomain(),
		DeliveryWindow: a.DeliveryWindow.ToDomain(),
		WeightKg:       a.WeightKg,
		IsFragile:      a.IsFragile,
		NeedsCooling:   a.NeedsCooling,
		SuggestedPrice: a.SuggestedPrice,
		Priority:       priority,
		Status:         status,
		CreatedAt:      a.CreatedAt,
	}
}

type Stop struct {
	ID             string  `json:"id"`
	Kind           string  `json:"kind"`
	Location       Point   `json:"location"`
	Window         Window  `json:"window"`
	ServiceMinutes float64 `json:"service_minutes"`
	PayloadDeltaKg float64 `json:"payload_delta_kg"`
	AnnouncementID string  `json:"announcement_id"`
}

func (s Stop) ToDomain() domain.Stop {
	return domain.Stop{
		ID:                     s.ID,
		Kind:                   domain.StopKind(s.Kind),
		Location:               s.Location.ToDomain(),
		Window:                 s.Window.ToDomain(),
		ServiceDurationMinutes: s.ServiceMinutes,
		PayloadDeltaKg:         s.PayloadDeltaKg,
		AnnouncementID:         s.AnnouncementID,
	}
}

type Route struct {
	ID               string     `json:"id"`
	DelivererID      string     `json:"deliverer_id"`
	Stops            []Stop     `json:"stops"`
	MaxCapacityKg    float64    `json:"max_capacity_kg"`
	VehicleType      string     `json:"vehicle_type"`
	CoolingCapable   bool       `json:"cooling_capable"`
	CurrentPosition  *Point     `json:"current_position,omitempty"`
	CurrentPayloadKg float64    `json:"current_payload_kg"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	Status           string     `json:"status"`
}

func (r Route) ToDomain() domain.Route {
	out := domain.Route{
		ID:               r.ID,
		DelivererID:      r.DelivererID,
		MaxCapacityKg:    r.MaxCapacityKg,
		VehicleType:      domain.VehicleType(r.VehicleType),
		CoolingCapable:   r.CoolingCapable,
		CurrentPayloadKg: r.CurrentPayloadKg,
		Status:           domain.RouteStatus(r.Status),
	}
	if r.CurrentPosition != nil {
		p := r.CurrentPosition.ToDomain()
		out.CurrentPosition = &p
	}
	if r.StartTime != nil {
		out.StartTime = *r.StartTime
	}
	out.Stops = make([]domain.Stop, 0, len(r.Stops))
	for _, s := range r.Stops {
		out.Stops = append(out.Stops, s.ToDomain())
	}
	return out
}

type StopPair struct {
	AnnouncementID string `json:"announcement_id"`
	Pickup         Stop   `json:"pickup"`
	Dropoff        Stop   `json:"dropoff"`
	Priority       string `json:"priority"`
}

func (p StopPair) ToDomain() domain.PendingStopPair {
	priority := domain.Priority(p.Priority)
	if p.Priority == "" {
		priority = domain.PriorityNormal
	}
	return domain.PendingStopPair{
		AnnouncementID: p.AnnouncementID,
		Pickup:         p.Pickup.ToDomain(),
		Dropoff:        p.Dropoff.ToDomain(),
		Priority:       priority,
	}
}

func StopPairFromDomain(p domain.PendingStopPair) StopPair {
	return StopPair{
		AnnouncementID: p.AnnouncementID,
		Pickup:         stopFromDomain(p.Pickup),
		Dropoff:        stopFromDomain(p.Dropoff),
		Priority:       string(p.Priority),
	}
}

func stopFromDomain(s domain.Stop) Stop {
	out := Stop{
		ID:             s.ID,
		Kind:           string(s.Kind),
		Location:       Point{Lat: s.Location.Lat, Lon: s.Location.Lon},
		ServiceMinutes: s.ServiceDurationMinutes,
		PayloadDeltaKg: s.PayloadDeltaKg,
		AnnouncementID: s.AnnouncementID,
	}
	if !s.Window.IsZero() {
		earliest, latest := s.Window.Earliest, s.Window.Latest
		out.Window = Window{Earliest: &earliest, Latest: &latest}
	}
	return out
}
