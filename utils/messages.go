package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Helpers for digesting raw LLM replies: the model is asked to answer with a
// meal JSON embedded in prose, but nothing upstream enforces that shape, so
// everything here is best-effort and failure just yields fewer candidates.

var (
	reJSONFence    = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	reAnyFence     = regexp.MustCompile("(?s)```.*?```")
	reObjectBlock  = regexp.MustCompile(`(?s)\{.*\}`)
	reArrayBlock   = regexp.MustCompile(`(?s)\[.*\]`)
	reMealTypeObj  = regexp.MustCompile(`(?s)\{.*?"meal_type".*?\}`)
	reDanglingJSON = regexp.MustCompile(`,\s*([\]}])`)
	reKeyFragment  = regexp.MustCompile(`\s*"?\w+"?:\s*\}?\}?\]?`)
	reBlankLines   = regexp.MustCompile(`\n\s*\n`)
)

// ParseMealCandidates extracts zero or more untyped candidate meals from an
// LLM reply. Strategies, in order: fenced ```json blocks, a bracket-matched
// top-level array, objects containing "meal_type", and finally raw brace
// matching. A candidate is kept when it has foods and declared totals above
// 50 kcal; everything else is noise.
func ParseMealCandidates(response string) []map[string]any {
	var meals []map[string]any

	appendCandidate := func(v any) {
		m, ok := v.(map[string]any)
		if !ok {
			return
		}
		foods, ok := m["foods"].([]any)
		if !ok || len(foods) == 0 {
			return
		}
		totals, ok := m["totals"].(map[string]any)
		if !ok {
			return
		}
		if cal, ok := num(totals, "calories"); !ok || cal <= 50 {
			return
		}
		meals = append(meals, m)
	}

	appendParsed := func(raw string) {
		var parsed any
		if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
			return
		}
		if arr, ok := parsed.([]any); ok {
			for _, item := range arr {
				appendCandidate(item)
			}
			return
		}
		appendCandidate(parsed)
	}

	for _, m := range reJSONFence.FindAllStringSubmatch(response, -1) {
		appendParsed(m[1])
	}

	if len(meals) == 0 {
		if raw, ok := balancedSlice(response, '[', ']'); ok {
			appendParsed(raw)
		}
	}

	if len(meals) == 0 {
		for _, m := range reMealTypeObj.FindAllString(response, -1) {
			appendParsed(m)
		}
	}

	if len(meals) == 0 {
		search := response
		for {
			raw, ok := balancedSlice(search, '{', '}')
			if !ok {
				break
			}
			appendParsed(raw)
			idx := strings.Index(search, raw)
			search = search[idx+len(raw):]
		}
	}

	return meals
}

// balancedSlice returns the first balanced open..close region of s.
func balancedSlice(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// ExtractJSON returns the last parseable JSON object or array embedded in the
// text, tolerating trailing commas. Nil when none parses.
func ExtractJSON(text string) any {
	if text == "" {
		return nil
	}

	var candidates []string
	candidates = append(candidates, reObjectBlock.FindAllString(text, -1)...)
	candidates = append(candidates, reArrayBlock.FindAllString(text, -1)...)

	for i := len(candidates) - 1; i >= 0; i-- {
		var parsed any
		if err := json.Unmarshal([]byte(candidates[i]), &parsed); err == nil {
			return parsed
		}
		cleaned := reDanglingJSON.ReplaceAllString(candidates[i], "$1")
		if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
			return parsed
		}
	}
	return nil
}

// StripJSON removes code fences and JSON blocks from an assistant reply,
// keeping only the human-readable text. If nothing readable remains, the
// original content comes back unchanged rather than an empty bubble.
func StripJSON(content string) string {
	if content == "" {
		return content
	}

	cleaned := reAnyFence.ReplaceAllString(content, "")

	prev := ""
	for prev != cleaned {
		prev = cleaned
		cleaned = reObjectBlock.ReplaceAllString(cleaned, "")
		cleaned = reArrayBlock.ReplaceAllString(cleaned, "")
	}

	cleaned = reDanglingJSON.ReplaceAllString(cleaned, "$1")
	cleaned = reKeyFragment.ReplaceAllString(cleaned, "")
	cleaned = reBlankLines.ReplaceAllString(cleaned, "\n")

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return content
	}
	return cleaned
}
