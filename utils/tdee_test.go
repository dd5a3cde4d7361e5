package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTDEEMaintain(t *testing.T) {
	// Mifflin-St Jeor: 10*80 + 6.25*180 - 5*30 + 5 = 1780; * 1.55 = 2759
	tdee, err := CalculateTDEE(80, 180, 30, "male", "moderate", "maintain")

	require.NoError(t, err)
	assert.Equal(t, 2759.0, tdee)
}

func TestCalculateTDEEGoalAdjustments(t *testing.T) {
	maintain, err := CalculateTDEE(80, 180, 30, "male", "moderate", "maintain")
	require.NoError(t, err)

	lose, err := CalculateTDEE(80, 180, 30, "male", "moderate", "lose_weight")
	require.NoError(t, err)
	assert.Equal(t, maintain-400, lose)

	gain, err := CalculateTDEE(80, 180, 30, "male", "moderate", "gain_muscle")
	require.NoError(t, err)
	assert.Equal(t, maintain+400, gain)
}

func TestCalculateTDEEFemaleFormula(t *testing.T) {
	// 10*60 + 6.25*165 - 5*25 - 161 = 1345.25; * 1.375 = 1849.7 -> 1850
	tdee, err := CalculateTDEE(60, 165, 25, "female", "light", "maintain")

	require.NoError(t, err)
	assert.Equal(t, 1850.0, tdee)
}

func TestCalculateTDEEFloors(t *testing.T) {
	tdee, err := CalculateTDEE(45, 155, 60, "female", "sedentary", "lose_weight")

	require.NoError(t, err)
	assert.Equal(t, 1200.0, tdee)
}

func TestCalculateTDEERejectsImplausibleInput(t *testing.T) {
	_, err := CalculateTDEE(80, 300, 30, "male", "moderate", "maintain")
	assert.Error(t, err)

	_, err = CalculateTDEE(0, 180, 30, "male", "moderate", "maintain")
	assert.Error(t, err)

	_, err = CalculateTDEE(80, 180, -1, "male", "moderate", "maintain")
	assert.Error(t, err)
}

func TestCalculateTDEEUnknownActivityDefaultsToSedentary(t *testing.T) {
	sedentary, err := CalculateTDEE(80, 180, 30, "male", "sedentary", "maintain")
	require.NoError(t, err)

	unknown, err := CalculateTDEE(80, 180, 30, "male", "couch", "maintain")
	require.NoError(t, err)
	assert.Equal(t, sedentary, unknown)
}

func TestDefaultMacroTargets(t *testing.T) {
	protein, carbs, fat := DefaultMacroTargets(2000, 80, "lose_weight")

	assert.Equal(t, 160.0, protein) // 2.0 g/kg when cutting
	assert.Equal(t, 72.0, fat)      // 0.9 g/kg
	// remaining: 2000 - 160*4 - 72*9 = 712 kcal -> 178 g
	assert.Equal(t, 178.0, carbs)
}

func TestDefaultMacroTargetsNeverNegativeCarbs(t *testing.T) {
	_, carbs, _ := DefaultMacroTargets(800, 100, "gain_muscle")

	assert.Equal(t, 0.0, carbs)
}

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(180, 81)

	require.NoError(t, err)
	assert.InDelta(t, 25.0, bmi, 0.01)
	assert.Equal(t, "Overweight", BMICategory(bmi))
}

func TestBMICategories(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(17.0))
	assert.Equal(t, "Normal weight", BMICategory(22.0))
	assert.Equal(t, "Obesity class I", BMICategory(32.0))
	assert.Equal(t, "Obesity class III", BMICategory(42.0))
}
