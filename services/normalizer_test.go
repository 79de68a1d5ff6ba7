package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredArrayPayload = `{
	"food": {
		"food_id": "33691",
		"food_name": "Oatmeal",
		"brand_name": "Quaker",
		"servings": {
			"serving": [
				{
					"calories": "150",
					"protein": "5",
					"carbohydrate": "27",
					"fat": "3",
					"serving_description": "100 g",
					"metric_serving_amount": "100.000",
					"metric_serving_unit": "g"
				},
				{
					"calories": "225",
					"protein": "7,5",
					"carbohydrate": "40.5",
					"fat": "4.5",
					"serving_description": "1 cup",
					"metric_serving_amount": "150.000",
					"metric_serving_unit": "g"
				}
			]
		}
	}
}`

const structuredObjectPayload = `{
	"food": {
		"food_id": "33691",
		"food_name": "Oatmeal",
		"brand_name": "Quaker",
		"servings": {
			"serving": {
				"calories": "150",
				"protein": "5",
				"carbohydrate": "27",
				"fat": "3",
				"serving_description": "100 g",
				"metric_serving_amount": "100.000",
				"metric_serving_unit": "g"
			}
		}
	}
}`

func TestNormalizeStructuredFood(t *testing.T) {
	rec, err := NormalizeStructuredFood([]byte(structuredArrayPayload))
	require.NoError(t, err)

	assert.Equal(t, "33691", rec.ID)
	assert.Equal(t, "Quaker Oatmeal", rec.Name)
	assert.Equal(t, 150.0, rec.Calories)
	assert.Equal(t, 5.0, rec.ProteinGrams)
	assert.Equal(t, 27.0, rec.CarbGrams)
	assert.Equal(t, 3.0, rec.FatGrams)
	assert.Equal(t, "100 g", rec.ServingDescription)
	assert.Equal(t, 100.0, rec.ServingWeightGrams)
	assert.Nil(t, rec.LoggedAt)
}

func TestNormalizeStructuredFoodObjectEqualsArray(t *testing.T) {
	fromArray, err := NormalizeStructuredFood([]byte(structuredArrayPayload))
	require.NoError(t, err)
	fromObject, err := NormalizeStructuredFood([]byte(structuredObjectPayload))
	require.NoError(t, err)
	assert.Equal(t, fromArray, fromObject)
}

func TestNormalizeStructuredFoodNoBrand(t *testing.T) {
	payload := `{"food": {"food_id": "7", "food_name": "Banana", "servings": {"serving": {"metric_serving_amount": "118", "metric_serving_unit": "g", "calories": "105"}}}}`
	rec, err := NormalizeStructuredFood([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "Banana", rec.Name)
}

func TestNormalizeStructuredFoodNoServings(t *testing.T) {
	payload := `{"food": {"food_id": "7", "food_name": "Banana", "servings": {}}}`
	_, err := NormalizeStructuredFood([]byte(payload))
	assert.ErrorIs(t, err, ErrNoServings)
}

func TestNormalizeStructuredFoodInvalidPayload(t *testing.T) {
	_, err := NormalizeStructuredFood([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = NormalizeStructuredFood([]byte(`{"unrelated": true}`))
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestNormalizeFlatProduct(t *testing.T) {
	payload := `{
		"product": {
			"product_name": "Dark Chocolate 85%",
			"nutriments": {
				"energy-kcal_100g": 584,
				"proteins_100g": 9.7,
				"carbohydrates_100g": 24,
				"fat_100g": 46.3
			}
		}
	}`
	rec, err := NormalizeFlatProduct([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "Dark Chocolate 85%", rec.Name)
	assert.Equal(t, 584.0, rec.Calories)
	assert.Equal(t, 9.7, rec.ProteinGrams)
	assert.Equal(t, 24.0, rec.CarbGrams)
	assert.Equal(t, 46.3, rec.FatGrams)
	assert.Equal(t, "100g", rec.ServingDescription)
	assert.Equal(t, 100.0, rec.ServingWeightGrams)
}

func TestNormalizeFlatProductMissingFieldsDefaultToZero(t *testing.T) {
	rec, err := NormalizeFlatProduct([]byte(`{"product": {"product_name": "Mystery Snack", "nutriments": {}}}`))
	require.NoError(t, err)
	assert.Zero(t, rec.Calories)
	assert.Zero(t, rec.ProteinGrams)
	assert.Zero(t, rec.CarbGrams)
	assert.Zero(t, rec.FatGrams)
	assert.Equal(t, 100.0, rec.ServingWeightGrams)
}

const recipeReply = `Protein Overnight Oats
Mix oats, greek yogurt and milk. Refrigerate overnight.

Nutritional Breakdown:
Calories: 350 kcal
Protein: 20 g
Fats: 10 g
Carbs: 40 g`

func TestNormalizeRecipeText(t *testing.T) {
	rec, err := NormalizeRecipeText(recipeReply)
	require.NoError(t, err)

	assert.Equal(t, "Protein Overnight Oats", rec.Name)
	assert.Equal(t, 350.0, rec.Calories)
	assert.Equal(t, 20.0, rec.ProteinGrams)
	assert.Equal(t, 10.0, rec.FatGrams)
	assert.Equal(t, 40.0, rec.CarbGrams)
}

func TestNormalizeRecipeTextMissingNutrient(t *testing.T) {
	text := `Some Soup

Nutritional Breakdown:
Calories: 220 kcal
Protein: 9 g
Fats: 6 g`
	_, err := NormalizeRecipeText(text)
	assert.ErrorIs(t, err, ErrIncompleteNutrition)
}

func TestNormalizeRecipeTextIgnoresLinesBeforeMarker(t *testing.T) {
	text := `Trick Dish
Calories: 9999 kcal

Nutritional Breakdown:
Calories: 100 kcal
Protein: 1 g
Fats: 2 g
Carbs: 3 g`
	rec, err := NormalizeRecipeText(text)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rec.Calories)
}

func TestNormalizeRecipeTextNoMarker(t *testing.T) {
	_, err := NormalizeRecipeText("Just a recipe with no numbers at all.")
	assert.ErrorIs(t, err, ErrIncompleteNutrition)
}

func TestParseNutritionSummary(t *testing.T) {
	got := ParseNutritionSummary("Calories: 180-200 kcal | Fat: 5g | Carbs: 20g | Protein: 8g")
	assert.Equal(t, 200.0, got.Calories) // range form takes the value after the dash
	assert.Equal(t, 5.0, got.Fat)
	assert.Equal(t, 20.0, got.Carbs)
	assert.Equal(t, 8.0, got.Protein)
}

func TestParseNutritionSummaryPlainCalories(t *testing.T) {
	got := ParseNutritionSummary("Calories: 410 kcal | Protein: 12 g")
	assert.Equal(t, 410.0, got.Calories)
	assert.Equal(t, 12.0, got.Protein)
}

func TestParseNutritionSummaryGarbageDefaultsToZero(t *testing.T) {
	assert.Zero(t, ParseNutritionSummary("not a summary at all"))
	assert.Zero(t, ParseNutritionSummary(""))
}
