package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nutrilog/models"
)

// LogPatch names the fields a write wants to touch. Nil fields are not
// written, so a concurrent writer's changes to sibling columns survive the
// merge. This keeps the merge semantics explicit instead of baking them
// into one storage backend.
type LogPatch struct {
	Meals           *[]models.Meal
	Hydration       *models.HydrationEntry
	CalorieOverride *float64
}

// LogStore persists DailyLog aggregates keyed by (user, yyyy-MM-dd). Reads
// of an unmaterialized day return ErrLogNotFound; everything else that goes
// wrong wraps ErrRemoteUnavailable.
type LogStore interface {
	Get(ctx context.Context, userID uint, key string) (*models.DailyLog, error)
	Create(ctx context.Context, log *models.DailyLog) error
	Patch(ctx context.Context, userID uint, key string, patch LogPatch) error
}

// GormLogStore is the postgres-backed LogStore.
type GormLogStore struct {
	db *gorm.DB
}

func NewGormLogStore(db *gorm.DB) *GormLogStore {
	return &GormLogStore{db: db}
}

func (s *GormLogStore) Get(ctx context.Context, userID uint, key string) (*models.DailyLog, error) {
	var dl models.DailyLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND log_date = ?", userID, key).
		First(&dl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return &dl, nil
}

func (s *GormLogStore) Create(ctx context.Context, dl *models.DailyLog) error {
	if err := s.db.WithContext(ctx).Create(dl).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return nil
}

// Patch updates only the columns the patch names; last write wins per
// column, untouched columns are preserved.
func (s *GormLogStore) Patch(ctx context.Context, userID uint, key string, patch LogPatch) error {
	updates := map[string]interface{}{}
	if patch.Meals != nil {
		updates["meals"] = *patch.Meals
	}
	if patch.Hydration != nil {
		updates["hydration"] = patch.Hydration
	}
	if patch.CalorieOverride != nil {
		updates["calorie_override"] = *patch.CalorieOverride
	}
	if len(updates) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(&models.DailyLog{}).
		Where("user_id = ? AND log_date = ?", userID, key).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return nil
}
