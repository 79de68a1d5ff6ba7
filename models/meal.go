package models

// DefaultMealName is the synthetic bucket used when a day has no explicit
// meal structure.
const DefaultMealName = "All Meals"

// Meal is a named, ordered bucket of food records inside a daily log. Meals
// live embedded in the log document, not in their own table; a food record
// belongs to exactly one meal.
type Meal struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"` // "Breakfast"|"Lunch"|… or DefaultMealName
	Foods []FoodRecord `json:"foods"`
}
