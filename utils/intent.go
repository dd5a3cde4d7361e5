package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// IntentType tags the structured action a chat message asks for.
type IntentType string

const (
	IntentCreate     IntentType = "create"
	IntentEdit       IntentType = "edit"
	IntentSubstitute IntentType = "substitute"
	IntentAdjust     IntentType = "adjust"
	IntentChat       IntentType = "chat"
)

// UserIntent is the result of classifying one user message. Only the fields
// relevant to the given Type are populated.
type UserIntent struct {
	Type IntentType

	// create
	MealCount int
	MealTypes []string

	// edit / substitute / adjust
	MealID  string
	Changes string

	// substitute
	OldFood string
	NewFood string

	// adjust
	Macro    string // "proteina" | "carboidrato" | "gordura" | "caloria"
	Amount   int
	Increase bool
}

var (
	reEditWithID   = regexp.MustCompile(`(?i)edit[ae]?\s+(?:o\s+|a\s+)?\[?id:\s*([a-f0-9-]+)\]?`)
	reEditByName   = regexp.MustCompile(`(?i)(?:edit[ae]?|mud[ae]|alter[ae])\s+(?:o\s+|a\s+)?(?:refeição\s+)?["']?(.+?)["']?$`)
	reSubstitute   = regexp.MustCompile(`(?i)(?:substitu[íi]|troca?)[re]?\s+(?:o\s+|a\s+)?(.+?)\s+por\s+(.+?)(?:\s+na|\s+no|\s+em|$)`)
	reAdjust       = regexp.MustCompile(`(?i)(aumenta?|diminui?|reduz)\s+(prote[íi]na|carboidrato|gordura|caloria)s?\s+(?:em\s+)?(\d+)`)
	reCreateCount  = regexp.MustCompile(`(?i)(?:cri[ae]|faz|ger[ae])\s+(?:um\s+)?(\d+)\s+(?:refeições?|refeiç)`)
	reCreateTyped  = regexp.MustCompile(`(?i)(?:cri[ae]|faz|ger[ae])\s+(?:um[ae]?\s+)?(café|almoço|jantar|lanche)`)
	reCreateAlone  = regexp.MustCompile(`(?i)(?:cri[ae]|faz|ger[ae])\s+(?:refeição|plano|dieta)`)
	reContextID    = regexp.MustCompile(`(?i)\[ID:\s*([a-f0-9-]+)\]`)
	reNonWordChars = regexp.MustCompile(`[^\w\s]`)
)

// Portuguese meal names as they appear in chat, mapped to the closed enum.
var mealNameToType = map[string]string{
	"café":   "breakfast",
	"almoço": "lunch",
	"jantar": "dinner",
	"lanche": "snack",
}

// intentRule is one step of the classification cascade: it either produces an
// intent or declines so the next rule can try.
type intentRule func(message, lower, mealsContext string) (UserIntent, bool)

// Cascade order matters: patterns overlap, and later rules assume the earlier
// ones did not fire.
var intentRules = []intentRule{
	matchEditWithID,
	matchEditByName,
	matchSubstitution,
	matchMacroAdjust,
	matchCreateWithCount,
	matchCreateTyped,
	matchCreateGeneric,
}

// DetectIntent maps a free-text user message (plus the meals context blob with
// its inline [ID: …] markers) to exactly one intent. It never fails: anything
// unmatched resolves to IntentChat.
func DetectIntent(message, mealsContext string) UserIntent {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, rule := range intentRules {
		if intent, ok := rule(message, lower, mealsContext); ok {
			return intent
		}
	}
	return UserIntent{Type: IntentChat}
}

// "edita o [ID: xxx]" — identifier given inline.
func matchEditWithID(message, lower, _ string) (UserIntent, bool) {
	m := reEditWithID.FindStringSubmatch(lower)
	if m == nil {
		return UserIntent{}, false
	}
	return UserIntent{Type: IntentEdit, MealID: m[1], Changes: message}, true
}

// "edita o café da manhã" / "muda a refeição 'X'" — resolve the name against
// the context blob. If no line carries that name, fall through.
func matchEditByName(message, lower, mealsContext string) (UserIntent, bool) {
	m := reEditByName.FindStringSubmatch(lower)
	if m == nil {
		return UserIntent{}, false
	}
	nameQuery := strings.ToLower(strings.NewReplacer(`"`, "", "'", "").Replace(m[1]))
	for _, line := range strings.Split(mealsContext, "\n") {
		if !strings.Contains(strings.ToLower(line), nameQuery) {
			continue
		}
		if id := reContextID.FindStringSubmatch(line); id != nil {
			return UserIntent{Type: IntentEdit, MealID: id[1], Changes: message}, true
		}
	}
	return UserIntent{}, false
}

// "substitui X por Y" / "troca X por Y" — bind to the meal whose context line
// mentions any >3-char word of the original message.
func matchSubstitution(message, lower, mealsContext string) (UserIntent, bool) {
	m := reSubstitute.FindStringSubmatch(lower)
	if m == nil {
		return UserIntent{}, false
	}
	oldFood := strings.TrimSpace(m[1])
	newFood := strings.TrimSpace(m[2])

	for _, word := range strings.Fields(message) {
		clean := reNonWordChars.ReplaceAllString(word, "")
		if len([]rune(clean)) <= 3 {
			continue
		}
		idRe, err := regexp.Compile(`(?i)\[ID:\s*([a-f0-9-]+)\][^\n]*` + regexp.QuoteMeta(clean))
		if err != nil {
			continue
		}
		if id := idRe.FindStringSubmatch(mealsContext); id != nil {
			return UserIntent{
				Type:    IntentSubstitute,
				MealID:  id[1],
				OldFood: oldFood,
				NewFood: newFood,
			}, true
		}
	}
	return UserIntent{}, false
}

// "aumenta proteína em 20" / "reduz caloria em 300" — binds to the first
// identifier of the context blob. The blob is built newest-first, so this is
// the most recently created meal, but not necessarily the one the user means.
func matchMacroAdjust(_, lower, mealsContext string) (UserIntent, bool) {
	m := reAdjust.FindStringSubmatch(lower)
	if m == nil {
		return UserIntent{}, false
	}
	amount, _ := strconv.Atoi(m[3])

	macro := "proteina"
	switch {
	case strings.Contains(m[2], "carb"):
		macro = "carboidrato"
	case strings.Contains(m[2], "gord"):
		macro = "gordura"
	case strings.Contains(m[2], "calor"):
		macro = "caloria"
	}

	id := reContextID.FindStringSubmatch(mealsContext)
	if id == nil {
		return UserIntent{}, false
	}
	return UserIntent{
		Type:     IntentAdjust,
		MealID:   id[1],
		Macro:    macro,
		Amount:   amount,
		Increase: strings.HasPrefix(m[1], "aument"),
	}, true
}

// "cria 4 refeições"
func matchCreateWithCount(_, lower, _ string) (UserIntent, bool) {
	m := reCreateCount.FindStringSubmatch(lower)
	if m == nil {
		return UserIntent{}, false
	}
	count, _ := strconv.Atoi(m[1])
	return UserIntent{Type: IntentCreate, MealCount: count}, true
}

// "cria um café da manhã" / "faz um almoço"
func matchCreateTyped(_, lower, _ string) (UserIntent, bool) {
	m := reCreateTyped.FindStringSubmatch(lower)
	if m == nil {
		return UserIntent{}, false
	}
	return UserIntent{
		Type:      IntentCreate,
		MealCount: 1,
		MealTypes: []string{mealNameToType[m[1]]},
	}, true
}

// "cria refeição" / "faz plano" / "gera dieta" — no count given.
func matchCreateGeneric(_, lower, _ string) (UserIntent, bool) {
	if !reCreateAlone.MatchString(lower) {
		return UserIntent{}, false
	}
	return UserIntent{Type: IntentCreate, MealCount: 1}, true
}

// IntentPrompt builds the supplementary instruction injected into the LLM
// system prompt for the given intent. Chat (and unmatched create) contributes
// nothing.
func IntentPrompt(intent UserIntent) string {
	switch intent.Type {
	case IntentEdit:
		return fmt.Sprintf(
			"\n\n⚠️ MODO EDIÇÃO ATIVADO\nO usuário quer EDITAR a refeição [ID: %s].\nMudanças solicitadas: %s\n\nRESPONDA com JSON incluindo \"action\": \"edit\" e \"meal_id\": \"%s\"",
			intent.MealID, intent.Changes, intent.MealID,
		)
	case IntentSubstitute:
		return fmt.Sprintf(
			"\n\n⚠️ MODO SUBSTITUIÇÃO\nSubstituir %q por %q na refeição [ID: %s].\nMANTENHA macros similares ajustando a quantidade.",
			intent.OldFood, intent.NewFood, intent.MealID,
		)
	case IntentAdjust:
		action := "DIMINUIR"
		if intent.Increase {
			action = "AUMENTAR"
		}
		unit := "g"
		if intent.Macro == "caloria" {
			unit = "kcal"
		}
		return fmt.Sprintf(
			"\n\n⚠️ MODO AJUSTE\n%s %s em %d%s na refeição [ID: %s].",
			action, intent.Macro, intent.Amount, unit, intent.MealID,
		)
	case IntentCreate:
		if len(intent.MealTypes) > 0 {
			return fmt.Sprintf("\n\n⚠️ CRIAR %s", strings.ToUpper(intent.MealTypes[0]))
		}
		if intent.MealCount > 1 {
			return fmt.Sprintf("\n\n⚠️ CRIAR %d REFEIÇÕES", intent.MealCount)
		}
		return ""
	default:
		return ""
	}
}
