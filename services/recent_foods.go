package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nutrilog/models"
)

// Cache policy. Both are product decisions, not storage artifacts.
const (
	// RecentFoodsCapacity bounds the per-user suggestion set.
	RecentFoodsCapacity = 10
	// RecentFoodsTTL is the absolute age past which an entry is swept,
	// regardless of capacity pressure.
	RecentFoodsTTL = 30 * 24 * time.Hour
)

// RecentFoodsStore persists the per-user recency set. Apply must commit the
// sweep, the evictions and the insert as one atomic batch: partial
// application (eviction committed, insert lost) must never be observable.
// Inserting a food id that is already present refreshes its timestamp
// instead of growing the set.
type RecentFoodsStore interface {
	// List returns entries ordered most-recent-first, at most limit.
	List(ctx context.Context, userID uint, limit int) ([]models.RecentFoodEntry, error)
	Apply(ctx context.Context, userID uint, evict []string, sweepBefore time.Time, insert models.RecentFoodEntry) error
}

// RecentFoodsService maintains the bounded, time-decaying set of recently
// logged food ids used for quick re-entry suggestions. The whole subsystem
// is best-effort: it is an optimization, so failures are logged and never
// surfaced into the logging flow that triggered them.
type RecentFoodsService struct {
	store RecentFoodsStore
	log   *zap.Logger
	now   func() time.Time
}

func NewRecentFoodsService(store RecentFoodsStore, log *zap.Logger) *RecentFoodsService {
	return &RecentFoodsService{store: store, log: log, now: time.Now}
}

// RecordUsage refreshes foodID in the user's recency set: a full set gives
// up its least-recent entry (re-logging a food refreshes recency rather
// than growing the set), entries past the TTL are swept on every write, and
// the new entry lands last.
func (s *RecentFoodsService) RecordUsage(ctx context.Context, userID uint, foodID string) {
	now := s.now()

	entries, err := s.store.List(ctx, userID, RecentFoodsCapacity)
	if err != nil {
		s.log.Warn("recent foods: load failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	var evict []string
	if len(entries) >= RecentFoodsCapacity {
		evict = append(evict, entries[len(entries)-1].FoodID)
	}

	insert := models.RecentFoodEntry{FoodID: foodID, LoggedAt: now}
	if err := s.store.Apply(ctx, userID, evict, now.Add(-RecentFoodsTTL), insert); err != nil {
		s.log.Warn("recent foods: write failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// ListRecent returns up to RecentFoodsCapacity food ids, most recent first.
// Errors degrade to an empty suggestion list; this call never fails the
// caller's primary flow.
func (s *RecentFoodsService) ListRecent(ctx context.Context, userID uint) []string {
	entries, err := s.store.List(ctx, userID, RecentFoodsCapacity)
	if err != nil {
		s.log.Warn("recent foods: list failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.FoodID)
	}
	return ids
}
