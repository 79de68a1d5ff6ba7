package models

import "time"

// HydrationEntry tracks the running water total for one calendar day. The
// total resets when the tracked date rolls over; it never carries across
// days. Dates are compared at day granularity only.
type HydrationEntry struct {
	TotalOunces float64   `json:"totalOunces"`
	GoalOunces  float64   `json:"goalOunces"`
	Date        time.Time `json:"date"`
}

// MacroTotals is a derived macro summary; it is computed from meals on read
// and never stored.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailyLog is the aggregate root for one user's calendar day. LogDate holds
// the canonical yyyy-MM-dd key and doubles as the document id; exactly one
// row exists per (user, day). Meals and hydration are stored as JSON
// documents so a write can patch one column without clobbering its siblings.
type DailyLog struct {
	UserID          uint            `gorm:"primaryKey;autoIncrement:false" json:"-"`
	LogDate         string          `gorm:"primaryKey;type:varchar(10)" json:"id"`
	Date            time.Time       `json:"date"`
	Meals           []Meal          `gorm:"serializer:json" json:"meals"`
	Hydration       *HydrationEntry `gorm:"serializer:json" json:"hydration,omitempty"`
	CalorieOverride *float64        `json:"calorieOverride,omitempty"`
	CreatedAt       time.Time       `json:"-"`
	UpdatedAt       time.Time       `json:"-"`
}

// Totals sums nutrition over every food record in every meal.
func (d *DailyLog) Totals() MacroTotals {
	var t MacroTotals
	for _, m := range d.Meals {
		for _, f := range m.Foods {
			t.Calories += f.Calories
			t.Protein += f.ProteinGrams
			t.Carbs += f.CarbGrams
			t.Fat += f.FatGrams
		}
	}
	return t
}

// EffectiveCalories honors the manual override when the user has set one.
func (d *DailyLog) EffectiveCalories() float64 {
	if d.CalorieOverride != nil {
		return *d.CalorieOverride
	}
	return d.Totals().Calories
}
