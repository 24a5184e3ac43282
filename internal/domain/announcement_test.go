package domain

import (
	"errors"
	"testing"
	"time"
)

func validAnnouncement() Announcement {
	return Announcement{
		ID:       "a1",
		Pickup:   Address{Point: GeoPoint{Lat: 48.85, Lon: 2.35}, Label: "12 rue de Rivoli"},
		Dropoff:  Address{Point: GeoPoint{Lat: 48.86, Lon: 2.37}, Label: "3 bd Voltaire"},
		WeightKg: 8,
		Priority: PriorityNormal,
		Status:   AnnouncementOpen,
	}
}

func TestAnnouncementValidate(t *testing.T) {
	if err := validAnnouncement().Validate(); err != nil {
		t.Fatalf("valid announcement rejected: %v", err)
	}

	a := validAnnouncement()
	a.Pickup.Point.Lat = 123
	if err := a.Validate(); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("bad pickup error = %v, want ErrInvalidCoordinate", err)
	}

	a = validAnnouncement()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a.DeliveryWindow = TimeWindow{Earliest: base.Add(time.Hour), Latest: base}
	if err := a.Validate(); !errors.Is(err, ErrInvalidTimeWindow) {
		t.Fatalf("inverted window error = %v, want ErrInvalidTimeWindow", err)
	}

	a = validAnnouncement()
	a.WeightKg = -1
	if err := a.Validate(); err == nil {
		t.Fatal("negative weight should be rejected")
	}

	a = validAnnouncement()
	a.SuggestedPrice = -5
	if err := a.Validate(); err == nil {
		t.Fatal("negative price should be rejected")
	}
}

func TestAnnouncementExpiredAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a := validAnnouncement()
	if a.ExpiredAt(now) {
		t.Fatal("flexible announcement should never expire")
	}

	a.DeliveryWindow = TimeWindow{Earliest: now.Add(-2 * time.Hour), Latest: now.Add(-time.Hour)}
	if !a.ExpiredAt(now) {
		t.Fatal("announcement past its delivery window should be expired")
	}

	a.DeliveryWindow = TimeWindow{Earliest: now.Add(-time.Hour), Latest: now}
	if a.ExpiredAt(now) {
		t.Fatal("announcement at its latest bound is not yet expired")
	}
}
