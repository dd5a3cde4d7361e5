package utils

import (
	"fmt"
	"math"
	"strings"

	"dietchat-backend/models"
)

// ValidationResult is the advisory outcome of checking one candidate meal.
// Valid is true iff no errors were recorded; warnings never affect validity.
// Callers decide whether to reject, auto-correct, or proceed despite warnings.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Score    int      `json:"score"` // 0-100 meal quality
}

var validUnits = []string{
	"g", "kg", "ml", "l",
	"colher", "colher de sopa", "colher de chá",
	"xícara", "copo",
	"unidade", "unidades",
	"filé", "peito",
	"fatia", "fatias",
	"pote", "lata", "pacote",
	"porção", "porções",
}

func isKnownUnit(unit string) bool {
	unit = strings.ToLower(unit)
	for _, u := range validUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// num pulls a numeric field out of an untyped candidate, tolerating the types
// encoding/json and hand-built literals produce.
func num(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func foodList(m map[string]any) ([]map[string]any, bool) {
	raw, ok := m["foods"].([]any)
	if !ok {
		return nil, false
	}
	foods := make([]map[string]any, 0, len(raw))
	for _, f := range raw {
		if fm, ok := f.(map[string]any); ok {
			foods = append(foods, fm)
		} else {
			foods = append(foods, map[string]any{})
		}
	}
	return foods, true
}

func sumFoods(foods []map[string]any) models.Macros {
	var out models.Macros
	for _, f := range foods {
		p, _ := num(f, "protein")
		c, _ := num(f, "carbs")
		ft, _ := num(f, "fat")
		k, _ := num(f, "calories")
		out.Protein += p
		out.Carbs += c
		out.Fat += ft
		out.Calories += k
	}
	return out
}

// ValidateMeal assesses an untyped candidate meal (usually decoded straight
// from an LLM reply) for structural validity and nutritional plausibility.
// It performs no I/O and never panics on odd shapes; unexpected types are
// reported inside the result, not thrown.
func ValidateMeal(meal map[string]any) ValidationResult {
	var errs, warns []string
	score := 100

	// Name
	name := strings.TrimSpace(str(meal, "name"))
	if name == "" {
		errs = append(errs, "Nome da refeição ausente ou inválido")
		score -= 20
	} else if len([]rune(name)) > 100 {
		warns = append(warns, "Nome muito longo (>100 caracteres)")
		score -= 5
	}

	// Type
	mealType := str(meal, "meal_type")
	if !models.IsMealType(mealType) {
		errs = append(errs, fmt.Sprintf("Tipo de refeição inválido: %q. Use: breakfast, lunch, dinner, ou snack", mealType))
		score -= 20
	}

	// Foods array
	foods, isArray := foodList(meal)
	switch {
	case !isArray:
		errs = append(errs, "Campo 'foods' deve ser um array")
		score -= 30
	case len(foods) == 0:
		errs = append(errs, "Refeição sem alimentos")
		score -= 30
	case len(foods) > 20:
		warns = append(warns, fmt.Sprintf("Muitos alimentos (%d). Considere simplificar.", len(foods)))
		score -= 10
	}

	for idx, food := range foods {
		label := str(food, "name")
		if label == "" {
			label = fmt.Sprintf("Alimento %d", idx+1)
		}

		if strings.TrimSpace(str(food, "name")) == "" {
			errs = append(errs, label+": nome ausente")
			score -= 10
		}

		if qty, ok := num(food, "quantity"); !ok {
			errs = append(errs, label+": quantidade deve ser número")
			score -= 10
		} else if qty <= 0 {
			errs = append(errs, label+": quantidade deve ser > 0")
			score -= 10
		} else if qty > 5000 {
			warns = append(warns, fmt.Sprintf("%s: quantidade muito alta (%.0f). Verifique unidade.", label, qty))
			score -= 5
		}

		unit := strings.TrimSpace(str(food, "unit"))
		if unit == "" {
			errs = append(errs, label+": unidade ausente")
			score -= 10
		} else if !isKnownUnit(unit) {
			warns = append(warns, fmt.Sprintf("%s: unidade %q não é padrão", label, unit))
			score -= 2
		}

		protein, hasProt := num(food, "protein")
		if !hasProt || protein < 0 {
			errs = append(errs, label+": proteína inválida")
			score -= 10
		} else if protein > 100 {
			warns = append(warns, fmt.Sprintf("%s: proteína muito alta (%.0fg). Máximo realista: ~100g", label, protein))
			score -= 5
		}

		carbs, hasCarbs := num(food, "carbs")
		if !hasCarbs || carbs < 0 {
			errs = append(errs, label+": carboidratos inválidos")
			score -= 10
		} else if carbs > 300 {
			warns = append(warns, fmt.Sprintf("%s: carboidratos muito altos (%.0fg)", label, carbs))
			score -= 5
		}

		fat, hasFat := num(food, "fat")
		if !hasFat || fat < 0 {
			errs = append(errs, label+": gordura inválida")
			score -= 10
		} else if fat > 100 {
			warns = append(warns, fmt.Sprintf("%s: gordura muito alta (%.0fg)", label, fat))
			score -= 5
		}

		calories, hasCal := num(food, "calories")
		switch {
		case !hasCal || calories < 0:
			errs = append(errs, label+": calorias inválidas")
			score -= 10
		case calories < 5:
			warns = append(warns, fmt.Sprintf("%s: calorias muito baixas (%.0fkcal)", label, calories))
			score -= 3
		case calories > 2000:
			warns = append(warns, fmt.Sprintf("%s: calorias muito altas (%.0fkcal) para um alimento", label, calories))
			score -= 5
		}

		// 4-4-9 consistency per food (±20%)
		if hasProt && hasCarbs && hasFat && hasCal && calories > 0 {
			estimated := protein*4 + carbs*4 + fat*9
			if math.Abs(estimated-calories) > calories*0.20 {
				warns = append(warns, fmt.Sprintf(
					"%s: calorias declaradas (%.0f) diferem muito do cálculo (%.0f). Verifique macros.",
					label, calories, math.Round(estimated)))
				score -= 3
			}
		}
	}

	// Declared totals vs computed sum, flat ±10 per macro
	if totals, ok := meal["totals"].(map[string]any); ok && isArray && len(foods) > 0 {
		calc := sumFoods(foods)
		const tolerance = 10.0

		declCal, _ := num(totals, "calories")
		if math.Abs(declCal-calc.Calories) > tolerance {
			warns = append(warns, fmt.Sprintf("Totais não batem: declarado %.0fkcal, calculado %.0fkcal", declCal, math.Round(calc.Calories)))
			score -= 8
		}
		declProt, _ := num(totals, "protein")
		if math.Abs(declProt-calc.Protein) > tolerance {
			warns = append(warns, fmt.Sprintf("Proteína total não bate: declarado %.0fg, calculado %.0fg", declProt, math.Round(calc.Protein)))
			score -= 5
		}
		declCarbs, _ := num(totals, "carbs")
		if math.Abs(declCarbs-calc.Carbs) > tolerance {
			warns = append(warns, fmt.Sprintf("Carboidratos totais não batem: declarado %.0fg, calculado %.0fg", declCarbs, math.Round(calc.Carbs)))
			score -= 5
		}
		declFat, _ := num(totals, "fat")
		if math.Abs(declFat-calc.Fat) > tolerance {
			warns = append(warns, fmt.Sprintf("Gordura total não bate: declarado %.0fg, calculado %.0fg", declFat, math.Round(calc.Fat)))
			score -= 5
		}
	} else if meal["totals"] == nil {
		warns = append(warns, "Campo 'totals' ausente")
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
		Score:    score,
	}
}

// AutoCorrectTotals returns a copy of the candidate with totals recomputed as
// the exact sum of the per-food macros (calories rounded to integer, grams to
// one decimal). Run before validation to paper over LLM arithmetic drift.
// Idempotent; meals without foods pass through untouched.
func AutoCorrectTotals(meal map[string]any) map[string]any {
	foods, ok := foodList(meal)
	if !ok || len(foods) == 0 {
		return meal
	}

	calc := sumFoods(foods)

	out := make(map[string]any, len(meal))
	for k, v := range meal {
		out[k] = v
	}
	out["totals"] = map[string]any{
		"calories": math.Round(calc.Calories),
		"protein":  round1(calc.Protein),
		"carbs":    round1(calc.Carbs),
		"fat":      round1(calc.Fat),
	}
	return out
}

// CandidateToMeal converts a validated candidate into the typed model,
// filling gaps defensively: foods without a name are dropped, missing totals
// fall back to the computed sum.
func CandidateToMeal(meal map[string]any) models.Meal {
	out := models.Meal{
		Name:        strings.TrimSpace(str(meal, "name")),
		Description: str(meal, "description"),
		Type:        str(meal, "meal_type"),
	}
	if out.Name == "" {
		out.Name = "Refeição gerada"
	}
	if !models.IsMealType(out.Type) {
		out.Type = "breakfast"
	}

	foods, _ := foodList(meal)
	for _, f := range foods {
		name := strings.TrimSpace(str(f, "name"))
		if name == "" {
			continue
		}
		qty, _ := num(f, "quantity")
		unit := str(f, "unit")
		if unit == "" {
			unit = "g"
		}
		p, _ := num(f, "protein")
		c, _ := num(f, "carbs")
		ft, _ := num(f, "fat")
		k, _ := num(f, "calories")
		out.Foods = append(out.Foods, models.MealFood{
			Name:     name,
			Quantity: qty,
			Unit:     unit,
			Macros:   models.Macros{Protein: p, Carbs: c, Fat: ft, Calories: k},
			Notes:    str(f, "notes"),
		})
	}

	if totals, ok := meal["totals"].(map[string]any); ok {
		p, _ := num(totals, "protein")
		c, _ := num(totals, "carbs")
		ft, _ := num(totals, "fat")
		k, _ := num(totals, "calories")
		out.TotalMacros = models.Macros{Protein: p, Carbs: c, Fat: ft, Calories: k}
	} else {
		out.TotalMacros = models.SumFoodMacros(out.Foods)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
