package ports

import (
	"context"
	"time"

	"delivery-matching-service/internal/domain"
)

// MatchCache stores recent ranking results per deliverer so the match
// discovery list and the background sweep do not recompute on every poll.
// Entries expire by TTL; results are recommendations, so slight staleness
// is acceptable.
type MatchCache interface {
	// GetRanked returns the cached candidates for a deliverer.
	// found=false on a miss; a miss is not an error.
	GetRanked(ctx context.Context, delivererID string) (candidates []domain.MatchCandidate, found bool, err error)

	// SetRanked stores candidates for a deliverer with the given TTL.
	SetRanked(ctx context.Context, delivererID string, candidates []domain.MatchCandidate, ttl time.Duration) error
}
