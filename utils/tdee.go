package utils

import (
	"errors"
	"math"
)

// Activity multipliers applied over the Mifflin-St Jeor resting rate.
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Calorie adjustment per goal: safe deficit/surplus of ~400 kcal/day.
var goalAdjustments = map[string]float64{
	"lose_weight": -400,
	"gain_muscle": 400,
	"maintain":    0,
}

// CalculateTDEE estimates total daily energy expenditure via Mifflin-St Jeor,
// adjusted for activity level and goal. Height in cm, weight in kg.
func CalculateTDEE(weightKg, heightCm float64, age int, gender, activityLevel, goal string) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 || age <= 0 {
		return 0, errors.New("height, weight and age must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := activityFactors[activityLevel]
	if !ok {
		factor = activityFactors["sedentary"]
	}
	tdee := bmr*factor + goalAdjustments[goal]

	// Never drop below safe minimums.
	floor := 1200.0
	if gender == "male" {
		floor = 1500.0
	}
	if tdee < floor {
		tdee = floor
	}

	return math.Round(tdee), nil
}

// DefaultMacroTargets derives daily gram targets from the calorie budget:
// protein by g/kg per goal, fat at 0.9 g/kg, carbs from the remaining kcal.
func DefaultMacroTargets(tdee, weightKg float64, goal string) (protein, carbs, fat float64) {
	perKg := 1.6
	switch goal {
	case "lose_weight":
		perKg = 2.0
	case "gain_muscle":
		perKg = 1.8
	}
	protein = math.Round(weightKg * perKg)
	fat = math.Round(weightKg * 0.9)

	remaining := tdee - protein*4 - fat*9
	if remaining < 0 {
		remaining = 0
	}
	carbs = math.Round(remaining / 4)
	return protein, carbs, fat
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
