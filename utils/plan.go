package utils

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"dietchat-backend/models"
)

// PlanValidation is the advisory result of checking a whole generated plan
// against the user's profile.
type PlanValidation struct {
	Valid          bool     `json:"valid"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	TotalCalories  float64  `json:"totalCalories"`
	TargetCalories float64  `json:"targetCalories"`
	Variance       float64  `json:"variance"` // % off target
}

// ValidateMealPlan checks meal count, calorie total and macro coherence of a
// full plan. Advisory only; never fails on odd input.
func ValidateMealPlan(meals []models.Meal, profile *models.NutritionProfile) PlanValidation {
	var errs, warns []string

	expectedMeals := 3
	if profile != nil && profile.MealsPerDay > 0 {
		expectedMeals = profile.MealsPerDay
	}
	if len(meals) != expectedMeals {
		warns = append(warns, fmt.Sprintf("Plan has %d meals, but profile indicates %d", len(meals), expectedMeals))
	}

	var totalCalories, totalProtein, totalCarbs, totalFat float64
	for _, m := range meals {
		totalCalories += m.TotalMacros.Calories
		totalProtein += m.TotalMacros.Protein
		totalCarbs += m.TotalMacros.Carbs
		totalFat += m.TotalMacros.Fat
	}

	targetCalories := 2000.0
	if profile != nil && profile.TargetCalories > 0 {
		targetCalories = profile.TargetCalories
	}
	variance := (totalCalories - targetCalories) / targetCalories * 100

	if math.Abs(variance) > 10 {
		errs = append(errs, fmt.Sprintf("Total calories (%.0f) differ significantly from target (%.0f)", totalCalories, targetCalories))
	} else if math.Abs(variance) > 5 {
		direction := "below"
		if variance > 0 {
			direction = "above"
		}
		warns = append(warns, fmt.Sprintf("Total calories (%.0f) are %.0f%% %s target", totalCalories, math.Abs(variance), direction))
	}

	for idx, meal := range meals {
		if meal.TotalMacros.Calories < 100 {
			errs = append(errs, fmt.Sprintf("Meal %d (%s) has very low calories (%.0f kcal)", idx+1, meal.Name, meal.TotalMacros.Calories))
		}
		if len(meal.Foods) == 0 {
			errs = append(errs, fmt.Sprintf("Meal %d (%s) has no foods", idx+1, meal.Name))
		}
	}

	calculated := totalProtein*4 + totalCarbs*4 + totalFat*9
	if diff := math.Abs(calculated - totalCalories); diff > 100 {
		warns = append(warns, fmt.Sprintf("Macros do not match total calories (difference: %.0f kcal)", diff))
	}

	return PlanValidation{
		Valid:          len(errs) == 0,
		Errors:         errs,
		Warnings:       warns,
		TotalCalories:  totalCalories,
		TargetCalories: targetCalories,
		Variance:       variance,
	}
}

// ScaleMealsToTarget multiplies every food quantity and macro by a uniform
// factor so the plan's calorie total hits the target. Plans already within 5%
// of target come back untouched. Descriptions are regenerated from the scaled
// foods.
func ScaleMealsToTarget(meals []models.Meal, targetCalories float64) []models.Meal {
	if targetCalories <= 0 || len(meals) == 0 {
		return meals
	}

	var currentCalories float64
	for _, m := range meals {
		currentCalories += m.TotalMacros.Calories
	}
	if currentCalories <= 0 {
		log.Printf("[ScaleMealsToTarget] plan has no calories, skipping scaling")
		return meals
	}

	variance := math.Abs((currentCalories - targetCalories) / targetCalories)
	if variance <= 0.05 {
		return meals
	}

	factor := targetCalories / currentCalories
	log.Printf("[ScaleMealsToTarget] scaling from %.0f to %.0f kcal (factor %.2f)", currentCalories, targetCalories, factor)

	out := make([]models.Meal, len(meals))
	for i, meal := range meals {
		scaled := meal
		scaled.Foods = make([]models.MealFood, len(meal.Foods))

		parts := make([]string, 0, len(meal.Foods))
		var totals models.Macros
		for j, food := range meal.Foods {
			sf := food
			sf.Quantity = math.Round(food.Quantity * factor)
			sf.Macros = models.Macros{
				Calories: math.Round(food.Macros.Calories * factor),
				Protein:  round1(food.Macros.Protein * factor),
				Carbs:    round1(food.Macros.Carbs * factor),
				Fat:      round1(food.Macros.Fat * factor),
			}
			scaled.Foods[j] = sf

			totals.Calories += sf.Macros.Calories
			totals.Protein += sf.Macros.Protein
			totals.Carbs += sf.Macros.Carbs
			totals.Fat += sf.Macros.Fat
			parts = append(parts, fmt.Sprintf("%.0fg %s", sf.Quantity, sf.Name))
		}

		scaled.TotalMacros = totals
		if desc := strings.Join(parts, ", "); desc != "" {
			scaled.Description = desc
		}
		out[i] = scaled
	}
	return out
}

// RecalculatePlanAfterEdit swaps an edited meal into its plan and spreads the
// calorie delta it introduced across the remaining meals, so the plan total
// stays put. Small deltas (<50 kcal) only swap. Per-meal adjustment factors
// are clamped to [0.5, 2.0]; meals under 10 kcal are left unscaled.
func RecalculatePlanAfterEdit(originalPlan []models.Meal, editedMeal models.Meal) []models.Meal {
	mealIndex := -1
	for i, m := range originalPlan {
		if m.ID == editedMeal.ID || m.Type == editedMeal.Type {
			mealIndex = i
			break
		}
	}
	if mealIndex == -1 {
		log.Printf("[RecalculatePlanAfterEdit] meal not found in plan, returning original")
		return originalPlan
	}

	caloriesDiff := editedMeal.TotalMacros.Calories - originalPlan[mealIndex].TotalMacros.Calories

	if math.Abs(caloriesDiff) < 50 {
		out := make([]models.Meal, len(originalPlan))
		copy(out, originalPlan)
		out[mealIndex] = editedMeal
		return out
	}

	otherMeals := len(originalPlan) - 1
	if otherMeals == 0 {
		return []models.Meal{editedMeal}
	}

	adjustmentPerMeal := -caloriesDiff / float64(otherMeals)
	log.Printf("[RecalculatePlanAfterEdit] adjusting %d meals by %.0f kcal each", otherMeals, adjustmentPerMeal)

	out := make([]models.Meal, len(originalPlan))
	for i, meal := range originalPlan {
		if i == mealIndex {
			out[i] = editedMeal
			continue
		}

		currentCals := meal.TotalMacros.Calories
		if currentCals < 10 {
			log.Printf("[RecalculatePlanAfterEdit] meal %q has very low calories, skipping adjustment", meal.Name)
			out[i] = meal
			continue
		}

		factor := (currentCals + adjustmentPerMeal) / currentCals
		safeFactor := math.Max(0.5, math.Min(2.0, factor))
		if safeFactor != factor {
			log.Printf("[RecalculatePlanAfterEdit] factor %.2f limited to %.2f for meal %q", factor, safeFactor, meal.Name)
		}

		adjusted := meal
		adjusted.Foods = make([]models.MealFood, len(meal.Foods))
		for j, food := range meal.Foods {
			af := food
			af.Quantity = math.Round(food.Quantity*safeFactor*100) / 100
			af.Macros = models.Macros{
				Calories: math.Round(food.Macros.Calories * safeFactor),
				Protein:  round1(food.Macros.Protein * safeFactor),
				Carbs:    round1(food.Macros.Carbs * safeFactor),
				Fat:      round1(food.Macros.Fat * safeFactor),
			}
			adjusted.Foods[j] = af
		}
		adjusted.TotalMacros = models.Macros{
			Calories: math.Round(meal.TotalMacros.Calories * safeFactor),
			Protein:  round1(meal.TotalMacros.Protein * safeFactor),
			Carbs:    round1(meal.TotalMacros.Carbs * safeFactor),
			Fat:      round1(meal.TotalMacros.Fat * safeFactor),
		}
		out[i] = adjusted
	}
	return out
}

var fullPlanTriggers = []string{
	"plano do dia", "plano de hoje", "plano",
	"dieta do dia", "dieta de hoje", "dieta",
	"minhas refeições", "cria refeições", "faz refeições",
	"monta meu plano", "monta minha dieta",
	"cardápio", "menu do dia",
}

var (
	rePlanWithCount  = regexp.MustCompile(`(?:cria|faz|monta|gera)\s+\d+\s+(?:refeições|refeicoes)`)
	reMealCountToken = regexp.MustCompile(`(?i)(\d+)\s+(?:refeições|refeicoes)`)
)

// IsFullPlanRequest reports whether a message asks for a complete day plan
// rather than a single meal.
func IsFullPlanRequest(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, trigger := range fullPlanTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return rePlanWithCount.MatchString(lower)
}

// ExtractMealCount pulls the requested meal count (1..6) out of a message.
func ExtractMealCount(message string) (int, bool) {
	m := reMealCountToken.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 || count > 6 {
		return 0, false
	}
	return count, true
}
