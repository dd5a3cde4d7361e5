package utils

import (
	"strings"
	"testing"

	"dietchat-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planMeal(id, mealType string, calories, protein float64) models.Meal {
	return models.Meal{
		ID:   id,
		Name: "Refeição " + id,
		Type: mealType,
		Foods: []models.MealFood{
			{Name: "Alimento", Quantity: 100, Unit: "g",
				Macros: models.Macros{Calories: calories, Protein: protein, Carbs: 10, Fat: 5}},
		},
		TotalMacros: models.Macros{Calories: calories, Protein: protein, Carbs: 10, Fat: 5},
	}
}

func testProfile() *models.NutritionProfile {
	return &models.NutritionProfile{
		MealsPerDay:    3,
		TargetCalories: 2000,
		TargetProtein:  150,
		TargetCarbs:    200,
		TargetFat:      70,
	}
}

func TestValidateMealPlanAcceptsOnTarget(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 600, 40),
		planMeal("b", "lunch", 900, 60),
		planMeal("c", "dinner", 500, 35),
	}

	result := ValidateMealPlan(plan, testProfile())

	assert.True(t, result.Valid)
	assert.Equal(t, 2000.0, result.TotalCalories)
	assert.Zero(t, result.Variance)
}

func TestValidateMealPlanRejectsLargeVariance(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 400, 30),
		planMeal("b", "lunch", 500, 40),
		planMeal("c", "dinner", 400, 30),
	}

	result := ValidateMealPlan(plan, testProfile())

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "differ significantly")
}

func TestValidateMealPlanWarnsOnMealCountMismatch(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 1000, 70),
		planMeal("b", "lunch", 1000, 70),
	}

	result := ValidateMealPlan(plan, testProfile())

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "profile indicates 3")
}

func TestValidateMealPlanFlagsTinyMeal(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 50, 5),
		planMeal("b", "lunch", 1000, 70),
		planMeal("c", "dinner", 950, 65),
	}

	result := ValidateMealPlan(plan, testProfile())

	assert.False(t, result.Valid)
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "very low calories") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScaleMealsWithinToleranceUntouched(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 990, 60),
		planMeal("b", "lunch", 990, 60),
	}

	scaled := ScaleMealsToTarget(plan, 2000)

	assert.Equal(t, plan, scaled)
}

func TestScaleMealsDoublesToTarget(t *testing.T) {
	plan := []models.Meal{planMeal("a", "breakfast", 500, 25), planMeal("b", "lunch", 500, 25)}

	scaled := ScaleMealsToTarget(plan, 2000)

	require.Len(t, scaled, 2)
	assert.Equal(t, 1000.0, scaled[0].TotalMacros.Calories)
	assert.Equal(t, 50.0, scaled[0].TotalMacros.Protein)
	assert.Equal(t, 200.0, scaled[0].Foods[0].Quantity)
	// description rebuilt from the scaled foods
	assert.Equal(t, "200g Alimento", scaled[0].Description)
	// originals untouched
	assert.Equal(t, 500.0, plan[0].TotalMacros.Calories)
}

func TestScaleMealsGuards(t *testing.T) {
	plan := []models.Meal{planMeal("a", "breakfast", 0, 0)}

	assert.Equal(t, plan, ScaleMealsToTarget(plan, 0))
	assert.Empty(t, ScaleMealsToTarget(nil, 2000))
	// zero-calorie plan cannot be scaled
	assert.Equal(t, plan, ScaleMealsToTarget(plan, 2000))
}

func TestRecalculateSmallDeltaOnlySwaps(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 600, 40),
		planMeal("b", "lunch", 900, 60),
	}
	edited := planMeal("a", "breakfast", 630, 42)

	out := RecalculatePlanAfterEdit(plan, edited)

	require.Len(t, out, 2)
	assert.Equal(t, 630.0, out[0].TotalMacros.Calories)
	// the other meal is byte-for-byte the original
	assert.Equal(t, plan[1], out[1])
}

func TestRecalculateSpreadsDeltaAcrossOthers(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 600, 40),
		planMeal("b", "lunch", 900, 60),
		planMeal("c", "dinner", 500, 35),
	}
	edited := planMeal("a", "breakfast", 900, 55) // +300 kcal

	out := RecalculatePlanAfterEdit(plan, edited)

	require.Len(t, out, 3)
	assert.Equal(t, 900.0, out[0].TotalMacros.Calories)
	// -150 each: 900 -> 750 (factor 0.833), 500 -> 350 (factor 0.7)
	assert.Equal(t, 750.0, out[1].TotalMacros.Calories)
	assert.Equal(t, 350.0, out[2].TotalMacros.Calories)
}

func TestRecalculateClampsFactor(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 600, 40),
		planMeal("b", "lunch", 100, 10),
	}
	edited := planMeal("a", "breakfast", 900, 55) // other meal would go negative

	out := RecalculatePlanAfterEdit(plan, edited)

	// raw factor (100-300)/100 = -2 clamps to 0.5
	assert.Equal(t, 50.0, out[1].TotalMacros.Calories)
}

func TestRecalculateSkipsTinyMeals(t *testing.T) {
	plan := []models.Meal{
		planMeal("a", "breakfast", 600, 40),
		planMeal("b", "lunch", 5, 1),
	}
	edited := planMeal("a", "breakfast", 900, 55)

	out := RecalculatePlanAfterEdit(plan, edited)

	assert.Equal(t, plan[1], out[1])
}

func TestRecalculateUnknownMealReturnsOriginal(t *testing.T) {
	plan := []models.Meal{planMeal("a", "breakfast", 600, 40)}
	edited := planMeal("zz", "snack", 300, 20)

	out := RecalculatePlanAfterEdit(plan, edited)

	assert.Equal(t, plan, out)
}

func TestRecalculateSingleMealPlan(t *testing.T) {
	plan := []models.Meal{planMeal("a", "breakfast", 600, 40)}
	edited := planMeal("a", "breakfast", 900, 55)

	out := RecalculatePlanAfterEdit(plan, edited)

	require.Len(t, out, 1)
	assert.Equal(t, 900.0, out[0].TotalMacros.Calories)
}

func TestIsFullPlanRequest(t *testing.T) {
	assert.True(t, IsFullPlanRequest("monta minha dieta"))
	assert.True(t, IsFullPlanRequest("quero o plano do dia"))
	assert.True(t, IsFullPlanRequest("cria 4 refeições"))
	assert.False(t, IsFullPlanRequest("o que tem muita proteína?"))
}

func TestExtractMealCount(t *testing.T) {
	count, ok := ExtractMealCount("cria 4 refeições")
	assert.True(t, ok)
	assert.Equal(t, 4, count)

	_, ok = ExtractMealCount("cria 9 refeições")
	assert.False(t, ok)

	_, ok = ExtractMealCount("cria refeições")
	assert.False(t, ok)
}
