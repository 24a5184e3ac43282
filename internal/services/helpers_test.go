package services

import (
	"math"
	"time"

	"delivery-matching-service/internal/domain"
)

// One degree of arc on the reference sphere, in kilometers. Test
// geometry lives on the equator so east/north offsets in km map
// directly to coordinates and leg distances stay exact.
const kmPerDegree = 2 * math.Pi * 6371.0 / 360

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func at(eastKm, northKm float64) domain.GeoPoint {
	return domain.GeoPoint{Lat: northKm / kmPerDegree, Lon: eastKm / kmPerDegree}
}

// corridorRoute is a draft van route with one committed pickup/dropoff
// pair running west to east along the equator.
func corridorRoute(fromKm, toKm, capacityKg float64) domain.Route {
	return domain.Route{
		ID:            "route-1",
		DelivererID:   "deliverer-1",
		MaxCapacityKg: capacityKg,
		VehicleType:   domain.VehicleVan,
		StartTime:     testStart,
		Status:        domain.RouteDraft,
		Stops: []domain.Stop{
			{ID: "base-pickup", Kind: domain.StopPickup, Location: at(fromKm, 0), PayloadDeltaKg: 20, AnnouncementID: "base"},
			{ID: "base-dropoff", Kind: domain.StopDropoff, Location: at(toKm, 0), PayloadDeltaKg: -20, AnnouncementID: "base"},
		},
	}
}

func emptyRoute(capacityKg float64) domain.Route {
	return domain.Route{
		ID:            "route-1",
		DelivererID:   "deliverer-1",
		MaxCapacityKg: capacityKg,
		VehicleType:   domain.VehicleVan,
		StartTime:     testStart,
		Status:        domain.RouteDraft,
	}
}

func pairAt(annID string, pickupAt, dropoffAt domain.GeoPoint, weightKg float64, prio domain.Priority) domain.PendingStopPair {
	return domain.PendingStopPair{
		AnnouncementID: annID,
		Priority:       prio,
		Pickup: domain.Stop{
			ID:             annID + "-pickup",
			Kind:           domain.StopPickup,
			Location:       pickupAt,
			PayloadDeltaKg: weightKg,
			AnnouncementID: annID,
		},
		Dropoff: domain.Stop{
			ID:             annID + "-dropoff",
			Kind:           domain.StopDropoff,
			Location:       dropoffAt,
			PayloadDeltaKg: -weightKg,
			AnnouncementID: annID,
		},
	}
}

func announcementAt(id string, pickupAt, dropoffAt domain.GeoPoint, weightKg float64) domain.Announcement {
	return domain.Announcement{
		ID:        id,
		Pickup:    domain.Address{Point: pickupAt},
		Dropoff:   domain.Address{Point: dropoffAt},
		WeightKg:  weightKg,
		Priority:  domain.PriorityNormal,
		Status:    domain.AnnouncementOpen,
		CreatedAt: testStart.Add(-time.Hour),
	}
}
