package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fencedReply = "Aqui está sua refeição:\n\n```json\n" +
	`{"meal_type":"lunch","name":"Almoço Fit","foods":[{"name":"Frango","quantity":150,"unit":"g","protein":45,"carbs":0,"fat":5,"calories":225}],"totals":{"protein":45,"carbs":0,"fat":5,"calories":225}}` +
	"\n```\n\nBom apetite!"

func TestParseMealCandidatesFromFence(t *testing.T) {
	meals := ParseMealCandidates(fencedReply)

	require.Len(t, meals, 1)
	assert.Equal(t, "Almoço Fit", meals[0]["name"])
}

func TestParseMealCandidatesFromArray(t *testing.T) {
	reply := `Montei duas refeições: [` +
		`{"meal_type":"breakfast","name":"Café","foods":[{"name":"Ovo","quantity":2,"unit":"unidade","protein":12,"carbs":1,"fat":10,"calories":140}],"totals":{"calories":140,"protein":12,"carbs":1,"fat":10}},` +
		`{"meal_type":"lunch","name":"Almoço","foods":[{"name":"Arroz","quantity":100,"unit":"g","protein":2,"carbs":28,"fat":0,"calories":130}],"totals":{"calories":130,"protein":2,"carbs":28,"fat":0}}` +
		`]`

	meals := ParseMealCandidates(reply)

	require.Len(t, meals, 2)
	assert.Equal(t, "Café", meals[0]["name"])
	assert.Equal(t, "Almoço", meals[1]["name"])
}

func TestParseMealCandidatesFromBareObject(t *testing.T) {
	reply := `Sua refeição: {"meal_type":"dinner","name":"Jantar","foods":[{"name":"Sopa","quantity":300,"unit":"ml","protein":10,"carbs":20,"fat":5,"calories":165}],"totals":{"calories":165,"protein":10,"carbs":20,"fat":5}}`

	meals := ParseMealCandidates(reply)

	require.Len(t, meals, 1)
	assert.Equal(t, "Jantar", meals[0]["name"])
}

func TestParseMealCandidatesIgnoresProse(t *testing.T) {
	assert.Empty(t, ParseMealCandidates("Proteína é essencial para hipertrofia."))
}

func TestParseMealCandidatesDropsLowCalorieNoise(t *testing.T) {
	reply := `{"meal_type":"snack","name":"Água","foods":[{"name":"Água","quantity":200,"unit":"ml"}],"totals":{"calories":0}}`

	assert.Empty(t, ParseMealCandidates(reply))
}

func TestParseMealCandidatesRequiresFoods(t *testing.T) {
	reply := `{"meal_type":"lunch","name":"Vazia","foods":[],"totals":{"calories":500}}`

	assert.Empty(t, ParseMealCandidates(reply))
}

func TestExtractJSONToleratesTrailingComma(t *testing.T) {
	got := ExtractJSON(`resultado: {"a": 1, "b": 2,}`)

	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, m["a"])
}

func TestExtractJSONNilOnGarbage(t *testing.T) {
	assert.Nil(t, ExtractJSON("sem json aqui"))
}

func TestStripJSONKeepsProse(t *testing.T) {
	got := StripJSON(fencedReply)

	assert.Contains(t, got, "Aqui está sua refeição:")
	assert.Contains(t, got, "Bom apetite!")
	assert.NotContains(t, got, "meal_type")
}

func TestStripJSONPureJSONFallsBackToOriginal(t *testing.T) {
	pure := `{"meal_type":"lunch","name":"Almoço"}`

	assert.Equal(t, pure, StripJSON(pure))
}

func TestStripJSONEmpty(t *testing.T) {
	assert.Equal(t, "", StripJSON(""))
}
