package utils

import (
	"fmt"
	"math"

	"dietchat-backend/models"
)

// MealTargets is the per-meal-type macro sub-budget derived from a user's
// daily totals. Ephemeral: recomputed on every request, never persisted.
type MealTargets struct {
	Breakfast models.Macros `json:"breakfast"`
	Lunch     models.Macros `json:"lunch"`
	Dinner    models.Macros `json:"dinner"`
	Snack     models.Macros `json:"snack"`
}

type mealSplit struct {
	breakfast, lunch, dinner, snack float64
}

// Fixed evidence-based splits (Kerksick et al., 2017 - JISSN). Any other meal
// count falls back to the 3-meal table.
var mealSplits = map[int]mealSplit{
	3: {breakfast: 0.30, lunch: 0.45, dinner: 0.25, snack: 0},
	4: {breakfast: 0.25, lunch: 0.35, dinner: 0.30, snack: 0.10},
	5: {breakfast: 0.20, lunch: 0.30, dinner: 0.25, snack: 0.25},
}

// CalculateMealDistribution splits the daily targets across meal slots. Each
// field is rounded independently per macro; the 4/4/9 calorie identity is not
// renormalized afterwards, so the sub-budgets may drift by a few kcal.
func CalculateMealDistribution(targetCalories, targetProtein, targetCarbs, targetFat float64, mealsPerDay int) MealTargets {
	dist, ok := mealSplits[mealsPerDay]
	if !ok {
		dist = mealSplits[3]
	}

	share := func(pct float64) models.Macros {
		return models.Macros{
			Calories: math.Round(targetCalories * pct),
			Protein:  math.Round(targetProtein * pct),
			Carbs:    math.Round(targetCarbs * pct),
			Fat:      math.Round(targetFat * pct),
		}
	}

	return MealTargets{
		Breakfast: share(dist.breakfast),
		Lunch:     share(dist.lunch),
		Dinner:    share(dist.dinner),
		Snack:     share(dist.snack),
	}
}

// ForType returns the sub-budget for one meal-type enum value.
func (t MealTargets) ForType(mealType string) models.Macros {
	switch mealType {
	case "breakfast":
		return t.Breakfast
	case "lunch":
		return t.Lunch
	case "dinner":
		return t.Dinner
	case "snack":
		return t.Snack
	}
	return models.Macros{}
}

// FormatMealTargets renders one slot's budget for prompt/display use.
func FormatMealTargets(mealType string, targets MealTargets) string {
	m := targets.ForType(mealType)
	return fmt.Sprintf("%.0fkcal | %.0fg prot | %.0fg carb | %.0fg gord",
		m.Calories, m.Protein, m.Carbs, m.Fat)
}
