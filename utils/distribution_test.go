package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMealDistributionThreeMeals(t *testing.T) {
	targets := CalculateMealDistribution(2000, 150, 200, 70, 3)

	assert.Equal(t, 600.0, targets.Breakfast.Calories)
	assert.Equal(t, 900.0, targets.Lunch.Calories)
	assert.Equal(t, 500.0, targets.Dinner.Calories)
	assert.Equal(t, 0.0, targets.Snack.Calories)

	// percentages apply per macro, rounded independently
	assert.Equal(t, 45.0, targets.Breakfast.Protein)
	assert.Equal(t, 68.0, targets.Lunch.Protein) // round(67.5) away from zero
	assert.Equal(t, 38.0, targets.Dinner.Protein)
}

func TestCalculateMealDistributionFourMeals(t *testing.T) {
	targets := CalculateMealDistribution(2000, 150, 200, 70, 4)

	assert.Equal(t, 500.0, targets.Breakfast.Calories)
	assert.Equal(t, 700.0, targets.Lunch.Calories)
	assert.Equal(t, 600.0, targets.Dinner.Calories)
	assert.Equal(t, 200.0, targets.Snack.Calories)
}

func TestCalculateMealDistributionFiveMeals(t *testing.T) {
	targets := CalculateMealDistribution(2000, 150, 200, 70, 5)

	assert.Equal(t, 400.0, targets.Breakfast.Calories)
	assert.Equal(t, 600.0, targets.Lunch.Calories)
	assert.Equal(t, 500.0, targets.Dinner.Calories)
	assert.Equal(t, 500.0, targets.Snack.Calories)
}

func TestCalculateMealDistributionUnknownCountFallsBackToThree(t *testing.T) {
	got := CalculateMealDistribution(2000, 150, 200, 70, 7)
	want := CalculateMealDistribution(2000, 150, 200, 70, 3)

	assert.Equal(t, want, got)
}

func TestForTypeUnknownIsZero(t *testing.T) {
	targets := CalculateMealDistribution(2000, 150, 200, 70, 3)

	assert.Zero(t, targets.ForType("brunch"))
}

func TestFormatMealTargets(t *testing.T) {
	targets := CalculateMealDistribution(2000, 150, 200, 70, 3)

	s := FormatMealTargets("breakfast", targets)
	assert.Equal(t, "600kcal | 45g prot | 60g carb | 21g gord", s)
}
