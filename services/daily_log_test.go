package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nutrilog/models"
)

func newLogFixture() (*DailyLogService, *MemoryLogStore) {
	store := NewMemoryLogStore()
	recent := NewRecentFoodsService(NewMemoryRecentFoodsStore(), zap.NewNop())
	svc := NewDailyLogService(store, recent, NewLogHub(), zap.NewNop())
	return svc, store
}

func testRecord(id, name string) models.FoodRecord {
	return models.FoodRecord{
		ID:                 id,
		Name:               name,
		Calories:           100,
		ProteinGrams:       10,
		CarbGrams:          12,
		FatGrams:           3,
		ServingDescription: "100 g",
		ServingWeightGrams: 100,
	}
}

var testDay = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestFetchOrCreateIsIdempotent(t *testing.T) {
	svc, store := newLogFixture()
	ctx := context.Background()

	first, err := svc.FetchOrCreate(ctx, 1, testDay)
	require.NoError(t, err)
	second, err := svc.FetchOrCreate(ctx, 1, testDay.Add(4*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14", first.LogDate)
	assert.Equal(t, first.LogDate, second.LogDate)
	assert.Empty(t, first.Meals)
	assert.Len(t, store.logs, 1)
}

func TestFetchOrCreateSeparateDaysSeparateLogs(t *testing.T) {
	svc, store := newLogFixture()
	ctx := context.Background()

	_, err := svc.FetchOrCreate(ctx, 1, testDay)
	require.NoError(t, err)
	_, err = svc.FetchOrCreate(ctx, 1, testDay.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Len(t, store.logs, 2)
}

func TestAddFoodCreatesSyntheticMealAndStampsLoggedAt(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	dl, err := svc.AddFood(ctx, 1, testRecord("f1", "Oatmeal"), testDay)
	require.NoError(t, err)

	require.Len(t, dl.Meals, 1)
	assert.Equal(t, models.DefaultMealName, dl.Meals[0].Name)
	require.Len(t, dl.Meals[0].Foods, 1)
	assert.NotNil(t, dl.Meals[0].Foods[0].LoggedAt)
}

func TestAddFoodThenDeleteFoodLeavesDayEmpty(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	_, err := svc.AddFood(ctx, 1, testRecord("f1", "Oatmeal"), testDay)
	require.NoError(t, err)

	dl, err := svc.DeleteFood(ctx, 1, "f1", testDay)
	require.NoError(t, err)

	for _, m := range dl.Meals {
		assert.Empty(t, m.Foods)
	}
}

func TestDeleteFoodRemovesDuplicateIDsAcrossMeals(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	_, err := svc.AddFood(ctx, 1, testRecord("dup", "Coffee"), testDay)
	require.NoError(t, err)
	_, err = svc.AddMeal(ctx, 1, "Lunch", []models.FoodRecord{
		testRecord("dup", "Coffee"),
		testRecord("keep", "Salad"),
	}, testDay)
	require.NoError(t, err)

	dl, err := svc.DeleteFood(ctx, 1, "dup", testDay)
	require.NoError(t, err)

	var remaining []string
	for _, m := range dl.Meals {
		for _, f := range m.Foods {
			remaining = append(remaining, f.ID)
		}
	}
	assert.Equal(t, []string{"keep"}, remaining)
}

func TestAddMealAppendsNamedMeal(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	_, err := svc.AddFood(ctx, 1, testRecord("f1", "Oatmeal"), testDay)
	require.NoError(t, err)
	dl, err := svc.AddMeal(ctx, 1, "Dinner", []models.FoodRecord{testRecord("f2", "Curry")}, testDay)
	require.NoError(t, err)

	require.Len(t, dl.Meals, 2)
	assert.Equal(t, "Dinner", dl.Meals[1].Name)
	require.Len(t, dl.Meals[1].Foods, 1)
	assert.NotNil(t, dl.Meals[1].Foods[0].LoggedAt)
}

func TestAddWaterAccumulatesWithinDayAndResetsAcrossDays(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	dl, err := svc.AddWater(ctx, 1, testDay, 8, 64)
	require.NoError(t, err)
	require.NotNil(t, dl.Hydration)
	assert.Equal(t, 8.0, dl.Hydration.TotalOunces)

	dl, err = svc.AddWater(ctx, 1, testDay.Add(2*time.Hour), 12, 64)
	require.NoError(t, err)
	assert.Equal(t, 20.0, dl.Hydration.TotalOunces)

	// Day rollover seeds a fresh total instead of carrying the old one.
	nextDay := testDay.AddDate(0, 0, 1)
	dl, err = svc.AddWater(ctx, 1, nextDay, 10, 64)
	require.NoError(t, err)
	assert.Equal(t, 10.0, dl.Hydration.TotalOunces)
}

func TestAddWaterReseedsStaleHydrationEntry(t *testing.T) {
	svc, store := newLogFixture()
	ctx := context.Background()

	// A log whose hydration entry carries another day's date, as written by
	// older clients that reused one document across days.
	stale := &models.DailyLog{
		UserID:  1,
		LogDate: DayKey(testDay),
		Date:    testDay,
		Meals:   []models.Meal{},
		Hydration: &models.HydrationEntry{
			TotalOunces: 40,
			GoalOunces:  64,
			Date:        testDay.AddDate(0, 0, -3),
		},
	}
	require.NoError(t, store.Create(ctx, stale))

	dl, err := svc.AddWater(ctx, 1, testDay, 8, 64)
	require.NoError(t, err)
	assert.Equal(t, 8.0, dl.Hydration.TotalOunces)
}

func TestTotalsAreDerivedFromMeals(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	_, err := svc.AddFood(ctx, 1, testRecord("f1", "Oatmeal"), testDay)
	require.NoError(t, err)
	dl, err := svc.AddFood(ctx, 1, testRecord("f2", "Banana"), testDay)
	require.NoError(t, err)

	totals := dl.Totals()
	assert.Equal(t, 200.0, totals.Calories)
	assert.Equal(t, 20.0, totals.Protein)
	assert.Equal(t, 24.0, totals.Carbs)
	assert.Equal(t, 6.0, totals.Fat)
	assert.Equal(t, 200.0, dl.EffectiveCalories())
}

func TestCalorieOverrideWinsOverDerivedTotal(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	_, err := svc.AddFood(ctx, 1, testRecord("f1", "Oatmeal"), testDay)
	require.NoError(t, err)
	dl, err := svc.SetCalorieOverride(ctx, 1, testDay, 1800)
	require.NoError(t, err)

	assert.Equal(t, 1800.0, dl.EffectiveCalories())
	assert.Equal(t, 100.0, dl.Totals().Calories)
}

func TestPatchPreservesSiblingFields(t *testing.T) {
	svc, store := newLogFixture()
	ctx := context.Background()

	_, err := svc.AddWater(ctx, 1, testDay, 8, 64)
	require.NoError(t, err)
	_, err = svc.AddFood(ctx, 1, testRecord("f1", "Oatmeal"), testDay)
	require.NoError(t, err)

	// The meals patch must not clobber the hydration column.
	stored, err := store.Get(ctx, 1, DayKey(testDay))
	require.NoError(t, err)
	require.NotNil(t, stored.Hydration)
	assert.Equal(t, 8.0, stored.Hydration.TotalOunces)
	require.Len(t, stored.Meals, 1)
}

func TestAddFoodFeedsRecentFoods(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	_, err := svc.AddFood(ctx, 1, testRecord("f9", "Yogurt"), testDay)
	require.NoError(t, err)

	assert.Equal(t, []string{"f9"}, svc.ListRecentFoodIDs(ctx, 1))
}

func TestSubscribeReceivesPublishedAggregates(t *testing.T) {
	svc, _ := newLogFixture()
	ctx := context.Background()

	updates, cancel := svc.Subscribe(1, testDay)
	defer cancel()

	_, err := svc.AddFood(ctx, 1, testRecord("f1", "Oatmeal"), testDay)
	require.NoError(t, err)

	select {
	case dl := <-updates:
		require.NotNil(t, dl)
		require.Len(t, dl.Meals, 1)
	case <-time.After(time.Second):
		t.Fatal("no update published")
	}
}

// racingLogStore reports a miss on the first read so the service walks the
// create path against a day that is already materialized.
type racingLogStore struct {
	*MemoryLogStore
	misses int
}

func (s *racingLogStore) Get(ctx context.Context, userID uint, key string) (*models.DailyLog, error) {
	if s.misses > 0 {
		s.misses--
		return nil, ErrLogNotFound
	}
	return s.MemoryLogStore.Get(ctx, userID, key)
}

func TestFetchOrCreateRecoversFromCreateRace(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryLogStore()
	store := &racingLogStore{MemoryLogStore: mem, misses: 1}
	recent := NewRecentFoodsService(NewMemoryRecentFoodsStore(), zap.NewNop())
	svc := NewDailyLogService(store, recent, NewLogHub(), zap.NewNop())

	// Another writer materialized the day between our read and create.
	won := &models.DailyLog{UserID: 1, LogDate: DayKey(testDay), Date: testDay, Meals: []models.Meal{}}
	require.NoError(t, mem.Create(ctx, won))

	dl, err := svc.FetchOrCreate(ctx, 1, testDay)
	require.NoError(t, err)
	assert.Equal(t, won.LogDate, dl.LogDate)
	assert.Len(t, mem.logs, 1)
}
