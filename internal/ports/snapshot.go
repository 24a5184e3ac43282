package ports

import (
	"context"

	"delivery-matching-service/internal/domain"
)

// AnnouncementRepository loads fully hydrated announcement snapshots.
// No partial loads, no lazy fields: the matching core assumes every
// returned value is complete.
type AnnouncementRepository interface {
	// ListOpen returns every announcement still awaiting a match.
	ListOpen(ctx context.Context) ([]domain.Announcement, error)
}

// RouteRepository loads fully hydrated route snapshots, stops included
// and in stored order.
type RouteRepository interface {
	// ListPlannable returns every DRAFT or ACTIVE route.
	ListPlannable(ctx context.Context) ([]domain.Route, error)

	// GetRoute returns one route by id.
	GetRoute(ctx context.Context, id string) (domain.Route, error)
}
