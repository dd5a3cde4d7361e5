package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleContext = "\n\nÚltimas refeições:\n" +
	"- Almoço Fit [ID: aa11bb22-c3d4] (lunch): 150g frango grelhado, 100g arroz | 650kcal, 48g prot\n" +
	"- Café Reforçado [ID: ee55ff66-a7b8] (breakfast): 3 unidade ovo, 2 fatia pão | 420kcal, 25g prot\n"

func TestDetectIntentEditWithInlineID(t *testing.T) {
	intent := DetectIntent("edita o [ID: aa11bb22-c3d4] tirando o arroz", sampleContext)

	assert.Equal(t, IntentEdit, intent.Type)
	assert.Equal(t, "aa11bb22-c3d4", intent.MealID)
	assert.Contains(t, intent.Changes, "tirando o arroz")
}

func TestDetectIntentEditByName(t *testing.T) {
	intent := DetectIntent("muda o café reforçado", sampleContext)

	assert.Equal(t, IntentEdit, intent.Type)
	assert.Equal(t, "ee55ff66-a7b8", intent.MealID)
}

func TestDetectIntentEditByNameWithoutContextFallsThrough(t *testing.T) {
	intent := DetectIntent("edita a janta de ontem", "")

	assert.Equal(t, IntentChat, intent.Type)
}

func TestDetectIntentSubstitution(t *testing.T) {
	intent := DetectIntent("troca o frango por peixe no almoço", sampleContext)

	assert.Equal(t, IntentSubstitute, intent.Type)
	assert.Equal(t, "aa11bb22-c3d4", intent.MealID)
	assert.Equal(t, "frango", intent.OldFood)
	assert.Equal(t, "peixe", intent.NewFood)
}

func TestDetectIntentMacroAdjust(t *testing.T) {
	intent := DetectIntent("aumenta proteína em 20", sampleContext)

	assert.Equal(t, IntentAdjust, intent.Type)
	assert.Equal(t, "proteina", intent.Macro)
	assert.Equal(t, 20, intent.Amount)
	assert.True(t, intent.Increase)
	// binds to the first (most recent) meal of the context
	assert.Equal(t, "aa11bb22-c3d4", intent.MealID)
}

func TestDetectIntentAdjustDecrease(t *testing.T) {
	intent := DetectIntent("reduz caloria em 300", sampleContext)

	assert.Equal(t, IntentAdjust, intent.Type)
	assert.Equal(t, "caloria", intent.Macro)
	assert.Equal(t, 300, intent.Amount)
	assert.False(t, intent.Increase)
}

func TestDetectIntentCreateWithCount(t *testing.T) {
	intent := DetectIntent("cria 4 refeições para hoje", "")

	assert.Equal(t, IntentCreate, intent.Type)
	assert.Equal(t, 4, intent.MealCount)
}

func TestDetectIntentCreateTyped(t *testing.T) {
	intent := DetectIntent("faz um almoço leve", "")

	assert.Equal(t, IntentCreate, intent.Type)
	assert.Equal(t, 1, intent.MealCount)
	assert.Equal(t, []string{"lunch"}, intent.MealTypes)
}

func TestDetectIntentCreateGeneric(t *testing.T) {
	intent := DetectIntent("gera dieta pra mim", "")

	assert.Equal(t, IntentCreate, intent.Type)
	assert.Equal(t, 1, intent.MealCount)
}

func TestDetectIntentFallsBackToChat(t *testing.T) {
	intent := DetectIntent("qual a melhor fonte de vitamina C?", sampleContext)

	assert.Equal(t, IntentChat, intent.Type)
	assert.Empty(t, intent.MealID)
}

func TestIntentPromptEditMentionsMealID(t *testing.T) {
	prompt := IntentPrompt(UserIntent{Type: IntentEdit, MealID: "abc-123", Changes: "sem arroz"})

	assert.Contains(t, prompt, "abc-123")
	assert.Contains(t, prompt, "sem arroz")
	assert.Contains(t, prompt, "MODO EDIÇÃO")
}

func TestIntentPromptChatIsEmpty(t *testing.T) {
	assert.Empty(t, IntentPrompt(UserIntent{Type: IntentChat}))
}
