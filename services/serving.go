package services

import "strings"

// Serving is one candidate unit-of-measure + nutrient tuple for a food, as
// reported by the structured-serving provider. Numeric fields arrive as
// strings and go through ParseDecimal.
type Serving struct {
	Calories            string `json:"calories"`
	Protein             string `json:"protein"`
	Carbohydrate        string `json:"carbohydrate"`
	Fat                 string `json:"fat"`
	ServingDescription  string `json:"serving_description"`
	MetricServingAmount string `json:"metric_serving_amount"`
	MetricServingUnit   string `json:"metric_serving_unit"`
}

// WeightGrams is the serving's metric amount normalized to grams.
func (s Serving) WeightGrams() float64 {
	return NormalizeServingWeight(s.MetricServingAmount)
}

func (s Serving) isGrams() bool {
	return strings.EqualFold(strings.TrimSpace(s.MetricServingUnit), "g")
}

// SelectServing picks the most representative serving out of a non-empty
// candidate list; an empty list is a caller bug and comes back as
// ErrNoServings. A 100g gram serving is the most comparable baseline across
// foods; gram-denominated servings beat ounces/pieces because they are least
// ambiguous; anything still over 1000 normalized grams is treated as
// miscoded. First match wins:
//
//  1. normalized weight exactly 100, unit grams
//  2. unit grams, weight <= 1000
//  3. any unit, weight <= 1000
//  4. first candidate in input order
func SelectServing(candidates []Serving) (Serving, error) {
	if len(candidates) == 0 {
		return Serving{}, ErrNoServings
	}
	for _, c := range candidates {
		if c.isGrams() && c.WeightGrams() == defaultServingWeightGrams {
			return c, nil
		}
	}
	for _, c := range candidates {
		if c.isGrams() && c.WeightGrams() <= maxPlausibleServingGrams {
			return c, nil
		}
	}
	for _, c := range candidates {
		if c.WeightGrams() <= maxPlausibleServingGrams {
			return c, nil
		}
	}
	return candidates[0], nil
}
