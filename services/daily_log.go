package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nutrilog/models"
)

// dayKeyLayout is the canonical per-day document key format.
const dayKeyLayout = "2006-01-02"

// DayKey normalizes a timestamp to its calendar-day document key.
func DayKey(date time.Time) string {
	return date.Format(dayKeyLayout)
}

// DailyLogService owns the per-user, per-day aggregate of meals, food
// records and hydration. Every mutation follows the same shape: fetch or
// create the day's log, apply the change in memory, write back only the
// touched fields, publish the fresh aggregate to subscribers.
//
// Operations on the same (user, day) issued concurrently race
// read-modify-write: two concurrent AddFood calls can each write back a log
// carrying only their own addition. That is last-write-wins per field,
// inherited from the merge-on-write backend, and accepted here; callers
// needing stronger guarantees must serialize their writes.
type DailyLogService struct {
	store  LogStore
	recent *RecentFoodsService
	hub    *LogHub
	log    *zap.Logger
	now    func() time.Time
}

func NewDailyLogService(store LogStore, recent *RecentFoodsService, hub *LogHub, log *zap.Logger) *DailyLogService {
	return &DailyLogService{
		store:  store,
		recent: recent,
		hub:    hub,
		log:    log,
		now:    time.Now,
	}
}

// FetchOrCreate returns the materialized log for the user's calendar day,
// creating an empty one on first touch. This is the only state transition a
// log ever makes; logs are never deleted here. A lost race on create falls
// back to reading the winner's document, so a day never materializes twice.
func (s *DailyLogService) FetchOrCreate(ctx context.Context, userID uint, date time.Time) (*models.DailyLog, error) {
	key := DayKey(date)

	dl, err := s.store.Get(ctx, userID, key)
	if err == nil {
		return dl, nil
	}
	if !errors.Is(err, ErrLogNotFound) {
		return nil, err
	}

	fresh := &models.DailyLog{
		UserID:  userID,
		LogDate: key,
		Date:    date,
		Meals:   []models.Meal{},
	}
	if createErr := s.store.Create(ctx, fresh); createErr != nil {
		if dl, getErr := s.store.Get(ctx, userID, key); getErr == nil {
			s.log.Debug("daily log create raced, kept existing document",
				zap.Uint("user_id", userID), zap.String("day", key))
			return dl, nil
		}
		return nil, createErr
	}
	return fresh, nil
}

// AddFood stamps the record and appends it to the day's first meal, creating
// the synthetic catch-all meal on a day with no meal structure yet. The
// recent-foods update rides along best-effort.
func (s *DailyLogService) AddFood(ctx context.Context, userID uint, rec models.FoodRecord, date time.Time) (*models.DailyLog, error) {
	dl, err := s.FetchOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec.LoggedAt = &now
	if len(dl.Meals) == 0 {
		dl.Meals = append(dl.Meals, models.Meal{ID: uuid.NewString(), Name: models.DefaultMealName})
	}
	dl.Meals[0].Foods = append(dl.Meals[0].Foods, rec)

	if err := s.store.Patch(ctx, userID, dl.LogDate, LogPatch{Meals: &dl.Meals}); err != nil {
		return nil, err
	}
	s.hub.Publish(userID, dl.LogDate, dl)
	s.recent.RecordUsage(ctx, userID, rec.ID)
	return dl, nil
}

// AddMeal appends a new named meal with the given records, each stamped with
// the same logged-at time.
func (s *DailyLogService) AddMeal(ctx context.Context, userID uint, mealName string, records []models.FoodRecord, date time.Time) (*models.DailyLog, error) {
	dl, err := s.FetchOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	meal := models.Meal{ID: uuid.NewString(), Name: mealName}
	for _, rec := range records {
		ts := now
		rec.LoggedAt = &ts
		meal.Foods = append(meal.Foods, rec)
	}
	dl.Meals = append(dl.Meals, meal)

	if err := s.store.Patch(ctx, userID, dl.LogDate, LogPatch{Meals: &dl.Meals}); err != nil {
		return nil, err
	}
	s.hub.Publish(userID, dl.LogDate, dl)
	return dl, nil
}

// DeleteFood removes every record with the id from every meal on that day.
// Matching is by id only, so duplicate ids across meals are all removed.
func (s *DailyLogService) DeleteFood(ctx context.Context, userID uint, foodID string, date time.Time) (*models.DailyLog, error) {
	dl, err := s.FetchOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	for i := range dl.Meals {
		kept := dl.Meals[i].Foods[:0]
		for _, f := range dl.Meals[i].Foods {
			if f.ID != foodID {
				kept = append(kept, f)
			}
		}
		dl.Meals[i].Foods = kept
	}

	if err := s.store.Patch(ctx, userID, dl.LogDate, LogPatch{Meals: &dl.Meals}); err != nil {
		return nil, err
	}
	s.hub.Publish(userID, dl.LogDate, dl)
	return dl, nil
}

// AddWater accumulates within a calendar day and reseeds on rollover: the
// running total never carries into a new day.
func (s *DailyLogService) AddWater(ctx context.Context, userID uint, date time.Time, amountOunces, goalOunces float64) (*models.DailyLog, error) {
	dl, err := s.FetchOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if dl.Hydration != nil && DayKey(dl.Hydration.Date) == DayKey(date) {
		dl.Hydration.TotalOunces += amountOunces
		dl.Hydration.GoalOunces = goalOunces
	} else {
		dl.Hydration = &models.HydrationEntry{
			TotalOunces: amountOunces,
			GoalOunces:  goalOunces,
			Date:        date,
		}
	}

	if err := s.store.Patch(ctx, userID, dl.LogDate, LogPatch{Hydration: dl.Hydration}); err != nil {
		return nil, err
	}
	s.hub.Publish(userID, dl.LogDate, dl)
	return dl, nil
}

// SetCalorieOverride records a manual calorie figure for the day; derived
// totals stay untouched.
func (s *DailyLogService) SetCalorieOverride(ctx context.Context, userID uint, date time.Time, calories float64) (*models.DailyLog, error) {
	dl, err := s.FetchOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	dl.CalorieOverride = &calories
	if err := s.store.Patch(ctx, userID, dl.LogDate, LogPatch{CalorieOverride: &calories}); err != nil {
		return nil, err
	}
	s.hub.Publish(userID, dl.LogDate, dl)
	return dl, nil
}

// Subscribe streams every published aggregate for one user-day.
func (s *DailyLogService) Subscribe(userID uint, date time.Time) (<-chan *models.DailyLog, func()) {
	return s.hub.Subscribe(userID, DayKey(date))
}

// ListRecentFoodIDs surfaces the quick-add suggestions for a user.
func (s *DailyLogService) ListRecentFoodIDs(ctx context.Context, userID uint) []string {
	return s.recent.ListRecent(ctx, userID)
}
