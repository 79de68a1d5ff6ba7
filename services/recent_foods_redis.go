package services

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"nutrilog/models"
)

// RedisRecentFoodsStore keeps each user's recency set in a sorted set scored
// by the usage timestamp in milliseconds.
type RedisRecentFoodsStore struct {
	rdb *redis.Client
}

func NewRedisRecentFoodsStore(rdb *redis.Client) *RedisRecentFoodsStore {
	return &RedisRecentFoodsStore{rdb: rdb}
}

func (s *RedisRecentFoodsStore) key(userID uint) string {
	return fmt.Sprintf("recentfoods:%d", userID)
}

func (s *RedisRecentFoodsStore) List(ctx context.Context, userID uint, limit int) ([]models.RecentFoodEntry, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, s.key(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	entries := make([]models.RecentFoodEntry, 0, len(zs))
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, models.RecentFoodEntry{
			FoodID:   id,
			LoggedAt: time.UnixMilli(int64(z.Score)),
		})
	}
	return entries, nil
}

// Apply runs the TTL sweep, the evictions and the insert in one MULTI/EXEC
// batch so a failure cannot leave the set partially updated. ZADD on an
// existing member refreshes its score, which gives the duplicate-suppression
// semantics for free.
func (s *RedisRecentFoodsStore) Apply(ctx context.Context, userID uint, evict []string, sweepBefore time.Time, insert models.RecentFoodEntry) error {
	key := s.key(userID)
	pipe := s.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("(%d", sweepBefore.UnixMilli()))
	for _, id := range evict {
		pipe.ZRem(ctx, key, id)
	}
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(insert.LoggedAt.UnixMilli()),
		Member: insert.FoodID,
	})
	pipe.Expire(ctx, key, RecentFoodsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return nil
}
