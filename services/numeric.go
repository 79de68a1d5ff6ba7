package services

import (
	"strconv"
	"strings"
)

// Policy constants for serving-weight normalization. These are compatibility
// heuristics: historical log data was written with exactly these values, so
// they must not drift.
const (
	// Serving weights above this are assumed to be miscoded in a
	// thousandth-gram unit (milligrams reported as grams) and divided down.
	maxPlausibleServingGrams = 1000.0

	// Weight used when a provider reports no usable serving weight. 100g is
	// also the most comparable baseline across foods, so the serving
	// selector prefers it.
	defaultServingWeightGrams = 100.0
)

// ParseDecimal extracts a float from a locale-inconsistent decimal string.
// Comma decimal separators are accepted. Empty or unparseable input falls
// back to 0 rather than erroring; provider payloads routinely omit fields.
func ParseDecimal(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// NormalizeServingWeight converts a reported serving weight to grams. Values
// over 1000 are divided by 1000; a zero or missing weight defaults to 100g.
func NormalizeServingWeight(raw string) float64 {
	w := ParseDecimal(raw)
	if w > maxPlausibleServingGrams {
		w = w / 1000
	}
	if w == 0 {
		w = defaultServingWeightGrams
	}
	return w
}
