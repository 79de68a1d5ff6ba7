package models

import "time"

// RecentFoodEntry is one (foodId, loggedAt) pair in a user's recent-foods
// set. It references the food id by value only; the live FoodRecord may be
// long gone by the time the suggestion is shown.
type RecentFoodEntry struct {
	FoodID   string    `json:"foodId"`
	LoggedAt time.Time `json:"timestamp"`
}
