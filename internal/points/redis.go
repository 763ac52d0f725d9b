package points

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// defaultLeaderboardKey is the sorted-set key when none is configured.
const defaultLeaderboardKey = "trivia:points"

// RedisStore keeps the ledger in a Redis sorted set, which makes the
// top-N query a single ZREVRANGE.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a store over an existing client. An empty key
// uses the default.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = defaultLeaderboardKey
	}
	return &RedisStore{client: client, key: key}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, userID string) (int64, error) {
	score, err := s.client.ZScore(ctx, s.key, userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get points: %w", err)
	}
	return int64(score), nil
}

// Add implements Store.
func (s *RedisStore) Add(ctx context.Context, userID string, delta int64) (int64, error) {
	total, err := s.client.ZIncrBy(ctx, s.key, float64(delta), userID).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to add points: %w", err)
	}
	return int64(total), nil
}

// Top implements Store.
func (s *RedisStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, nil
	}

	members, err := s.client.ZRevRangeWithScores(ctx, s.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query top points: %w", err)
	}

	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		userID, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{UserID: userID, Points: int64(m.Score)})
	}
	return entries, nil
}
