package services

import (
	"context"
	"fmt"
	"sync"

	"nutrilog/models"
)

// MemoryLogStore is the in-process LogStore used in tests. Logs are copied
// on the way in and out so callers mutating an aggregate cannot reach the
// stored state without going through Patch, same as a remote store.
type MemoryLogStore struct {
	mu   sync.Mutex
	logs map[string]*models.DailyLog
}

func NewMemoryLogStore() *MemoryLogStore {
	return &MemoryLogStore{logs: make(map[string]*models.DailyLog)}
}

func storeKey(userID uint, key string) string {
	return fmt.Sprintf("%d/%s", userID, key)
}

func (s *MemoryLogStore) Get(ctx context.Context, userID uint, key string) (*models.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dl, ok := s.logs[storeKey(userID, key)]
	if !ok {
		return nil, ErrLogNotFound
	}
	return copyLog(dl), nil
}

func (s *MemoryLogStore) Create(ctx context.Context, dl *models.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := storeKey(dl.UserID, dl.LogDate)
	if _, ok := s.logs[k]; ok {
		return fmt.Errorf("%w: duplicate log %s", ErrRemoteUnavailable, k)
	}
	s.logs[k] = copyLog(dl)
	return nil
}

func (s *MemoryLogStore) Patch(ctx context.Context, userID uint, key string, patch LogPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dl, ok := s.logs[storeKey(userID, key)]
	if !ok {
		return fmt.Errorf("%w: patch of absent log", ErrRemoteUnavailable)
	}
	if patch.Meals != nil {
		dl.Meals = copyMeals(*patch.Meals)
	}
	if patch.Hydration != nil {
		h := *patch.Hydration
		dl.Hydration = &h
	}
	if patch.CalorieOverride != nil {
		v := *patch.CalorieOverride
		dl.CalorieOverride = &v
	}
	return nil
}

func copyLog(dl *models.DailyLog) *models.DailyLog {
	out := *dl
	out.Meals = copyMeals(dl.Meals)
	if dl.Hydration != nil {
		h := *dl.Hydration
		out.Hydration = &h
	}
	if dl.CalorieOverride != nil {
		v := *dl.CalorieOverride
		out.CalorieOverride = &v
	}
	return &out
}

func copyMeals(meals []models.Meal) []models.Meal {
	if meals == nil {
		return nil
	}
	out := make([]models.Meal, len(meals))
	for i, m := range meals {
		out[i] = m
		out[i].Foods = make([]models.FoodRecord, len(m.Foods))
		copy(out[i].Foods, m.Foods)
	}
	return out
}
