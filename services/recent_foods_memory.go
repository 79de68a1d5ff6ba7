package services

import (
	"context"
	"sync"
	"time"

	"nutrilog/models"
)

// MemoryRecentFoodsStore is the in-process fallback used in tests and when
// no redis address is configured. One mutex around the whole Apply gives the
// same all-or-nothing batch the redis pipeline does.
type MemoryRecentFoodsStore struct {
	mu      sync.Mutex
	entries map[uint][]models.RecentFoodEntry // most recent first
}

func NewMemoryRecentFoodsStore() *MemoryRecentFoodsStore {
	return &MemoryRecentFoodsStore{entries: make(map[uint][]models.RecentFoodEntry)}
}

func (s *MemoryRecentFoodsStore) List(ctx context.Context, userID uint, limit int) ([]models.RecentFoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.entries[userID]
	if len(src) > limit {
		src = src[:limit]
	}
	out := make([]models.RecentFoodEntry, len(src))
	copy(out, src)
	return out, nil
}

func (s *MemoryRecentFoodsStore) Apply(ctx context.Context, userID uint, evict []string, sweepBefore time.Time, insert models.RecentFoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(evict)+1)
	for _, id := range evict {
		drop[id] = true
	}
	// The insert below replaces any entry with the same id.
	drop[insert.FoodID] = true

	kept := make([]models.RecentFoodEntry, 0, len(s.entries[userID])+1)
	kept = append(kept, insert)
	for _, e := range s.entries[userID] {
		if drop[e.FoodID] || e.LoggedAt.Before(sweepBefore) {
			continue
		}
		kept = append(kept, e)
	}
	s.entries[userID] = kept
	return nil
}
