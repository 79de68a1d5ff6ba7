package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"nutrilog/models"
)

// nutritionBreakdownMarker is the literal section header the recipe model is
// instructed to emit; everything before it is prose and ignored.
const nutritionBreakdownMarker = "Nutritional Breakdown:"

const placeholderRecipeName = "AI Generated Recipe"

type fatSecretFoodEnvelope struct {
	Food struct {
		FoodID    string `json:"food_id"`
		FoodName  string `json:"food_name"`
		BrandName string `json:"brand_name"`
		Servings  struct {
			Serving json.RawMessage `json:"serving"`
		} `json:"servings"`
	} `json:"food"`
}

// decodeServings accepts servings.serving as either a bare object or an
// array; the provider emits both shapes from the same endpoint.
func decodeServings(raw json.RawMessage) []Serving {
	if len(raw) == 0 {
		return nil
	}
	var list []Serving
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single Serving
	if err := json.Unmarshal(raw, &single); err == nil {
		return []Serving{single}
	}
	return nil
}

// NormalizeStructuredFood converts a structured-serving detail payload
// (barcode/search provider) into a canonical FoodRecord: pick the most
// representative serving, then run every numeric field through the parser.
func NormalizeStructuredFood(payload []byte) (models.FoodRecord, error) {
	var env fatSecretFoodEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return models.FoodRecord{}, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if env.Food.FoodID == "" && env.Food.FoodName == "" {
		return models.FoodRecord{}, ErrInvalidSource
	}

	serving, err := SelectServing(decodeServings(env.Food.Servings.Serving))
	if err != nil {
		return models.FoodRecord{}, err
	}

	name := env.Food.FoodName
	if env.Food.BrandName != "" {
		name = env.Food.BrandName + " " + name
	}
	id := env.Food.FoodID
	if id == "" {
		id = uuid.NewString()
	}

	return models.FoodRecord{
		ID:                 id,
		Name:               name,
		Calories:           nonNegative(ParseDecimal(serving.Calories)),
		ProteinGrams:       nonNegative(ParseDecimal(serving.Protein)),
		CarbGrams:          nonNegative(ParseDecimal(serving.Carbohydrate)),
		FatGrams:           nonNegative(ParseDecimal(serving.Fat)),
		ServingDescription: serving.ServingDescription,
		ServingWeightGrams: serving.WeightGrams(),
	}, nil
}

type barcodeEnvelope struct {
	FoodID struct {
		Value string `json:"value"`
	} `json:"food_id"`
}

// decodeBarcodeID pulls the provider food id out of a barcode lookup reply.
// The provider signals "no match" with a zero id.
func decodeBarcodeID(payload []byte) (string, error) {
	var env barcodeEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if env.FoodID.Value == "" || env.FoodID.Value == "0" {
		return "", fmt.Errorf("%w: barcode not matched", ErrInvalidSource)
	}
	return env.FoodID.Value, nil
}

type searchEnvelope struct {
	Foods struct {
		Food json.RawMessage `json:"food"`
	} `json:"foods"`
}

// decodeSearchIDs lists the food ids in a search reply. Like servings, the
// "food" key may hold a single object or an array.
func decodeSearchIDs(payload []byte) ([]string, error) {
	var env searchEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	type hit struct {
		FoodID string `json:"food_id"`
	}
	var hits []hit
	if err := json.Unmarshal(env.Foods.Food, &hits); err != nil {
		var single hit
		if err := json.Unmarshal(env.Foods.Food, &single); err != nil {
			return nil, nil
		}
		hits = []hit{single}
	}
	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.FoodID != "" {
			ids = append(ids, h.FoodID)
		}
	}
	return ids, nil
}

type offProductEnvelope struct {
	Product struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			EnergyKcal    float64 `json:"energy-kcal_100g"`
			Proteins      float64 `json:"proteins_100g"`
			Carbohydrates float64 `json:"carbohydrates_100g"`
			Fat           float64 `json:"fat_100g"`
			ServingSize   string  `json:"serving_size"`
		} `json:"nutriments"`
	} `json:"product"`
}

// NormalizeFlatProduct converts a flat per-100g product payload. Nutrients
// are already per 100g, so no serving selection applies; missing fields
// default to zero since this feeds a searchable catalog, not a committed
// log entry.
func NormalizeFlatProduct(payload []byte) (models.FoodRecord, error) {
	var env offProductEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return models.FoodRecord{}, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	name := env.Product.ProductName
	if name == "" {
		name = "Unknown Product"
	}
	n := env.Product.Nutriments
	return models.FoodRecord{
		ID:                 uuid.NewString(),
		Name:               name,
		Calories:           nonNegative(n.EnergyKcal),
		ProteinGrams:       nonNegative(n.Proteins),
		CarbGrams:          nonNegative(n.Carbohydrates),
		FatGrams:           nonNegative(n.Fat),
		ServingDescription: "100g",
		ServingWeightGrams: NormalizeServingWeight(n.ServingSize),
	}, nil
}

// NormalizeRecipeText extracts a FoodRecord from an AI-generated recipe
// reply. The reply must carry a "Nutritional Breakdown:" section with one
// "Label: <number> <unit>" line per nutrient. Unlike the API shapes, a
// missing nutrient is an error here: this value commits a user-facing log
// entry, so silent zeroes are not acceptable.
func NormalizeRecipeText(text string) (models.FoodRecord, error) {
	lines := strings.Split(text, "\n")

	found := make(map[string]float64, 4)
	inBreakdown := false
	for _, line := range lines {
		if strings.Contains(line, nutritionBreakdownMarker) {
			inBreakdown = true
			continue
		}
		if !inBreakdown {
			continue
		}
		label, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		fields := strings.Fields(value)
		if len(fields) == 0 {
			continue
		}
		v := ParseDecimal(fields[0])
		switch key := strings.ToLower(label); {
		case strings.Contains(key, "calories"):
			found["calories"] = v
		case strings.Contains(key, "protein"):
			found["protein"] = v
		case strings.Contains(key, "fats"):
			found["fats"] = v
		case strings.Contains(key, "carbs"):
			found["carbs"] = v
		}
	}

	for _, k := range []string{"calories", "protein", "fats", "carbs"} {
		if _, ok := found[k]; !ok {
			return models.FoodRecord{}, fmt.Errorf("%w: missing %s", ErrIncompleteNutrition, k)
		}
	}

	name := placeholderRecipeName
	if len(lines) > 0 {
		if first := strings.TrimSpace(lines[0]); first != "" {
			name = first
		}
	}

	return models.FoodRecord{
		ID:                 uuid.NewString(),
		Name:               name,
		Calories:           nonNegative(found["calories"]),
		ProteinGrams:       nonNegative(found["protein"]),
		CarbGrams:          nonNegative(found["carbs"]),
		FatGrams:           nonNegative(found["fats"]),
		ServingDescription: "1 serving",
		ServingWeightGrams: defaultServingWeightGrams,
	}, nil
}

// ParseNutritionSummary parses the one-line pipe-delimited macro summary
// attached to lightweight search results, e.g.
//
//	"Calories: 180-200 kcal | Fat: 5g | Carbs: 20g | Protein: 8g"
//
// Catalog context: every field defaults to 0 on parse failure, never an
// error. The range form for calories takes the value after the dash; that
// phrasing is pinned by tests but not guaranteed across provider replies.
func ParseNutritionSummary(line string) models.MacroTotals {
	var out models.MacroTotals
	for _, part := range strings.Split(line, "|") {
		label, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(value)
		if len(fields) == 0 {
			continue
		}
		token := fields[0]
		switch key := strings.ToLower(label); {
		case strings.Contains(key, "calories"):
			if i := strings.LastIndex(token, "-"); i >= 0 && i+1 < len(token) {
				token = token[i+1:]
			}
			out.Calories = ParseDecimal(numericPrefix(token))
		case strings.Contains(key, "protein"):
			out.Protein = ParseDecimal(numericPrefix(token))
		case strings.Contains(key, "carbs"):
			out.Carbs = ParseDecimal(numericPrefix(token))
		case strings.Contains(key, "fat"):
			out.Fat = ParseDecimal(numericPrefix(token))
		}
	}
	return out
}

// numericPrefix strips a trailing unit glued to the number ("5g" -> "5").
func numericPrefix(s string) string {
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || s[end] == ',') {
		end++
	}
	return s[:end]
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
