package types

import "strings"

// DietaryPreferences is the fixed preference vocabulary, in display order.
var DietaryPreferences = []string{
	"Vegetarian",
	"Vegan",
	"Gluten-Free",
	"Dairy-Free",
	"Keto",
	"Low-Carb",
}

// CanonicalPreference matches s case-insensitively against the vocabulary.
func CanonicalPreference(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, pref := range DietaryPreferences {
		if strings.EqualFold(pref, s) {
			return pref, true
		}
	}
	return "", false
}

// CanonicalPreferences canonicalizes and de-duplicates prefs, dropping unknown values.
func CanonicalPreferences(prefs []string) []string {
	out := make([]string, 0, len(prefs))
	seen := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		canon, ok := CanonicalPreference(p)
		if !ok || seen[canon] {
			continue
		}
		seen[canon] = true
		out = append(out, canon)
	}
	return out
}
