package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"delivery-matching-service/internal/domain"
	"delivery-matching-service/internal/platform/obs"
)

// RedisMatchCache is a redis-backed cache of ranked match candidates per
// deliverer. Entries are JSON blobs with a TTL; staleness is acceptable
// because candidates are recommendations, not commits.
type RedisMatchCache struct {
	Client *redis.Client
}

func NewRedisMatchCache(client *redis.Client) *RedisMatchCache {
	return &RedisMatchCache{Client: client}
}

func matchKey(delivererID string) string {
	return "matches:" + delivererID
}

// GetRanked returns the cached candidates for a deliverer.
// A missing key is a miss, not an error.
func (c *RedisMatchCache) GetRanked(ctx context.Context, delivererID string) (_ []domain.MatchCandidate, _ bool, err error) {
	defer obs.Time(ctx, "cache.matches.GetRanked")(&err)

	if c.Client == nil {
		return nil, false, errors.New("match cache: redis client is nil")
	}
	if delivererID == "" {
		return nil, false, errors.New("match cache: deliverer id must be non-empty")
	}

	raw, err := c.Client.Get(ctx, matchKey(delivererID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get ranked matches for %s: %w", delivererID, err)
	}

	var candidates []domain.MatchCandidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false, fmt.Errorf("get ranked matches for %s: decode cached value: %w", delivererID, err)
	}
	return candidates, true, nil
}

// SetRanked stores candidates for a deliverer with the given TTL.
func (c *RedisMatchCache) SetRanked(ctx context.Context, delivererID string, candidates []domain.MatchCandidate, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "cache.matches.SetRanked")(&err)

	if c.Client == nil {
		return errors.New("match cache: redis client is nil")
	}
	if delivererID == "" {
		return errors.New("match cache: deliverer id must be non-empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("match cache: ttl %s must be positive", ttl)
	}

	raw, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("set ranked matches for %s: encode candidates: %w", delivererID, err)
	}

	if err := c.Client.Set(ctx, matchKey(delivererID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set ranked matches for %s: %w", delivererID, err)
	}
	return nil
}
