package models

import "time"

// FoodRecord is the canonical, source-agnostic form of one food's nutrition
// and serving data, regardless of which provider it came from. Records are
// immutable once created; LoggedAt is stamped only when the record is
// attached to a daily log entry (catalog/search results leave it nil).
type FoodRecord struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Calories           float64    `json:"calories"`
	ProteinGrams       float64    `json:"proteinGrams"`
	CarbGrams          float64    `json:"carbGrams"`
	FatGrams           float64    `json:"fatGrams"`
	ServingDescription string     `json:"servingDescription"` // e.g. "1 cup"
	ServingWeightGrams float64    `json:"servingWeightGrams"`
	LoggedAt           *time.Time `json:"loggedAt,omitempty"`
}
