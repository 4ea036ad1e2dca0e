package service

import (
	"strings"
	"unicode"
)

// NormalizeIngredients trims, lowercases and de-duplicates ingredient names, keeping first-seen order.
func NormalizeIngredients(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Pantry answers whether a recipe ingredient is on hand.
// An ingredient is covered when every word of some pantry item appears in its name,
// so "chicken" covers "chicken breast" but "chicken stock" does not cover "chicken".
type Pantry struct {
	items [][]string
}

// NewPantry builds a Pantry from raw user input.
func NewPantry(items []string) Pantry {
	var p Pantry
	for _, item := range NormalizeIngredients(items) {
		if tokens := tokenize(item); len(tokens) > 0 {
			p.items = append(p.items, tokens)
		}
	}
	return p
}

// Len returns the number of usable pantry items.
func (p Pantry) Len() int {
	return len(p.items)
}

// Covers reports whether the ingredient name is satisfied by the pantry.
func (p Pantry) Covers(name string) bool {
	nameTokens := tokenize(name)
	if len(nameTokens) == 0 {
		return false
	}
	have := make(map[string]bool, len(nameTokens))
	for _, tok := range nameTokens {
		have[tok] = true
	}

	for _, item := range p.items {
		covered := true
		for _, tok := range item {
			if !have[tok] {
				covered = false
				break
			}
		}
		if covered {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, f := range fields {
		fields[i] = singular(f)
	}
	return fields
}

// singular folds common English plurals so "tomatoes" matches "tomato".
func singular(word string) string {
	if len(word) <= 3 {
		return word
	}
	switch {
	case strings.HasSuffix(word, "ies"):
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "oes"),
		strings.HasSuffix(word, "ches"),
		strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "xes"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "s"):
		return strings.TrimSuffix(word, "s")
	default:
		return word
	}
}
