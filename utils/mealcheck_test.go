package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodCandidate() map[string]any {
	return map[string]any{
		"name":      "Frango com arroz",
		"meal_type": "lunch",
		"foods": []any{
			map[string]any{
				"name": "Frango grelhado", "quantity": 150.0, "unit": "g",
				"protein": 45.0, "carbs": 0.0, "fat": 5.0, "calories": 225.0,
			},
			map[string]any{
				"name": "Arroz integral", "quantity": 100.0, "unit": "g",
				"protein": 2.6, "carbs": 25.0, "fat": 1.0, "calories": 120.0,
			},
		},
		"totals": map[string]any{
			"protein": 47.6, "carbs": 25.0, "fat": 6.0, "calories": 345.0,
		},
	}
}

func TestValidateMealAccepts(t *testing.T) {
	result := ValidateMeal(goodCandidate())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 100, result.Score)
}

func TestValidateMealRejectsMissingName(t *testing.T) {
	candidate := goodCandidate()
	candidate["name"] = "   "

	result := ValidateMeal(candidate)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Nome da refeição ausente ou inválido")
	assert.Equal(t, 80, result.Score)
}

func TestValidateMealRejectsBadType(t *testing.T) {
	candidate := goodCandidate()
	candidate["meal_type"] = "brunch"

	result := ValidateMeal(candidate)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "brunch")
}

func TestValidateMealRejectsEmptyFoods(t *testing.T) {
	candidate := goodCandidate()
	candidate["foods"] = []any{}

	result := ValidateMeal(candidate)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Refeição sem alimentos")
}

func TestValidateMealRejectsNonArrayFoods(t *testing.T) {
	candidate := goodCandidate()
	candidate["foods"] = "arroz e feijão"

	result := ValidateMeal(candidate)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Campo 'foods' deve ser um array")
}

func TestValidateMealRejectsNegativeQuantity(t *testing.T) {
	candidate := goodCandidate()
	candidate["foods"].([]any)[0].(map[string]any)["quantity"] = -50.0

	result := ValidateMeal(candidate)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Frango grelhado: quantidade deve ser > 0")
}

func TestValidateMealWarnsOnOddUnit(t *testing.T) {
	candidate := goodCandidate()
	candidate["foods"].([]any)[0].(map[string]any)["unit"] = "punhado"

	result := ValidateMeal(candidate)

	// odd unit is advisory, not fatal
	assert.True(t, result.Valid)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "punhado")
	assert.Equal(t, 98, result.Score)
}

func TestValidateMealWarnsOnCalorieMacroMismatch(t *testing.T) {
	candidate := goodCandidate()
	// declared calories way off the 4/4/9 estimate
	candidate["foods"].([]any)[0].(map[string]any)["calories"] = 900.0
	candidate["totals"].(map[string]any)["calories"] = 1020.0

	result := ValidateMeal(candidate)

	assert.True(t, result.Valid)
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "calorias declaradas") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateMealWarnsWhenTotalsDrift(t *testing.T) {
	candidate := goodCandidate()
	candidate["totals"].(map[string]any)["calories"] = 500.0

	result := ValidateMeal(candidate)

	assert.True(t, result.Valid)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "Totais não batem")
}

func TestValidateMealWarnsOnMissingTotals(t *testing.T) {
	candidate := goodCandidate()
	delete(candidate, "totals")

	result := ValidateMeal(candidate)

	assert.True(t, result.Valid)
	assert.Contains(t, result.Warnings, "Campo 'totals' ausente")
	assert.Equal(t, 95, result.Score)
}

func TestValidateMealScoreNeverNegative(t *testing.T) {
	result := ValidateMeal(map[string]any{})

	assert.False(t, result.Valid)
	assert.GreaterOrEqual(t, result.Score, 0)
}

func TestAutoCorrectTotalsRecomputesFromFoods(t *testing.T) {
	candidate := goodCandidate()
	candidate["totals"].(map[string]any)["calories"] = 999.0

	corrected := AutoCorrectTotals(candidate)

	totals := corrected["totals"].(map[string]any)
	assert.Equal(t, 345.0, totals["calories"])
	assert.Equal(t, 47.6, totals["protein"])

	// input not mutated
	assert.Equal(t, 999.0, candidate["totals"].(map[string]any)["calories"])
}

func TestAutoCorrectTotalsIsIdempotent(t *testing.T) {
	once := AutoCorrectTotals(goodCandidate())
	twice := AutoCorrectTotals(once)

	assert.Equal(t, once["totals"], twice["totals"])
}

func TestAutoCorrectTotalsNoFoodsPassthrough(t *testing.T) {
	candidate := map[string]any{"name": "Vazia"}

	assert.Equal(t, candidate, AutoCorrectTotals(candidate))
}

func TestCandidateToMealDefaults(t *testing.T) {
	meal := CandidateToMeal(map[string]any{
		"meal_type": "brunch",
		"foods": []any{
			map[string]any{"name": "Ovo", "quantity": 2.0, "protein": 12.0, "carbs": 1.0, "fat": 10.0, "calories": 140.0},
			map[string]any{"quantity": 1.0}, // nameless, dropped
		},
	})

	assert.Equal(t, "Refeição gerada", meal.Name)
	assert.Equal(t, "breakfast", meal.Type)
	require.Len(t, meal.Foods, 1)
	assert.Equal(t, "g", meal.Foods[0].Unit)
	// no declared totals: falls back to the computed sum
	assert.Equal(t, 140.0, meal.TotalMacros.Calories)
	assert.Equal(t, 12.0, meal.TotalMacros.Protein)
}

func TestCandidateToMealKeepsDeclaredTotals(t *testing.T) {
	candidate := goodCandidate()

	meal := CandidateToMeal(candidate)

	assert.Equal(t, "Frango com arroz", meal.Name)
	assert.Equal(t, "lunch", meal.Type)
	assert.Len(t, meal.Foods, 2)
	assert.Equal(t, 345.0, meal.TotalMacros.Calories)
}
