package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/domain"
)

// RankOptions tunes one ranking request.
type RankOptions struct {
	// MinScore overrides the configured threshold when positive.
	MinScore int

	// AllRoutesPerAnnouncement keeps every qualifying route per
	// announcement (the "browse available deliveries" view) instead of
	// only the single best one.
	AllRoutesPerAnnouncement bool
}

// RankMatches scores every OPEN announcement against every plannable
// route with capacity remaining and returns the qualifying candidates,
// best first.
//
// Pure computation over the supplied snapshots: nothing is mutated and no
// notification or persistence happens here.
func RankMatches(
	ctx context.Context,
	announcements []domain.Announcement,
	routes []domain.Route,
	opts RankOptions,
	now time.Time,
	cfg config.Matching,
) ([]domain.MatchCandidate, error) {
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = cfg.MinScore
	}

	createdAt := make(map[string]time.Time, len(announcements))
	candidates := make([]domain.MatchCandidate, 0, len(announcements))

	for _, ann := range announcements {
		if ann.Status != domain.AnnouncementOpen {
			continue
		}
		// The snapshot may lag the real status; a window that has fully
		// passed can never be matched regardless of what storage says.
		if ann.ExpiredAt(now) {
			continue
		}
		createdAt[ann.ID] = ann.CreatedAt

		for _, route := range routes {
			if !route.Status.Plannable() && route.Status != "" {
				continue
			}
			if !route.HasCapacityRemaining() {
				continue
			}

			c, err := Score(ctx, ann, route, now, cfg)
			if err != nil {
				return nil, fmt.Errorf("rank matches: announcement %s route %s: %w", ann.ID, route.ID, err)
			}
			if c.Score == 0 || c.Score < minScore {
				continue
			}
			candidates = append(candidates, c)
		}
	}

	// Descending score; ties by smallest detour, then smallest extra
	// distance, then oldest announcement for fairness. IDs close the chain
	// so the order is total and reproducible.
	slices.SortFunc(candidates, func(a, b domain.MatchCandidate) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		if a.DetourPercentage != b.DetourPercentage {
			if a.DetourPercentage < b.DetourPercentage {
				return -1
			}
			return 1
		}
		if a.ExtraDistanceKm != b.ExtraDistanceKm {
			if a.ExtraDistanceKm < b.ExtraDistanceKm {
				return -1
			}
			return 1
		}
		ca, cb := createdAt[a.AnnouncementID], createdAt[b.AnnouncementID]
		if !ca.Equal(cb) {
			if ca.Before(cb) {
				return -1
			}
			return 1
		}
		if a.AnnouncementID != b.AnnouncementID {
			if a.AnnouncementID < b.AnnouncementID {
				return -1
			}
			return 1
		}
		if a.RouteID < b.RouteID {
			return -1
		}
		if a.RouteID > b.RouteID {
			return 1
		}
		return 0
	})

	if opts.AllRoutesPerAnnouncement {
		return candidates, nil
	}

	// Keep only each announcement's best-scoring route.
	seen := make(map[string]bool, len(candidates))
	deduped := candidates[:0]
	for _, c := range candidates {
		if seen[c.AnnouncementID] {
			continue
		}
		seen[c.AnnouncementID] = true
		deduped = append(deduped, c)
	}
	return deduped, nil
}
