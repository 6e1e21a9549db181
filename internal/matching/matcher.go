package matching

import "strings"

// wordOverlapThreshold is the fixed fraction of an ingredient's words that
// must appear among a pantry name's words for the last-resort overlap rule.
// Not tunable per call.
const wordOverlapThreshold = 0.5

// Matcher decides whether a normalized recipe ingredient is available in a
// pantry set. The fallbacks run in order, first hit wins: exact equality,
// ingredient-contains-pantry, pantry-contains-ingredient, word overlap.
type Matcher struct{}

func NewMatcher() *Matcher { return &Matcher{} }

// Match returns the pantry name the ingredient resolved to, or "" and false
// when nothing in the pantry covers it. The ingredient must already be
// normalized with the same Normalizer that built the PantrySet.
func (m *Matcher) Match(ingredient string, pantry *PantrySet) (string, bool) {
	if ingredient == "" || pantry == nil || pantry.Len() == 0 {
		return "", false
	}

	if pantry.Contains(ingredient) {
		return ingredient, true
	}

	for _, name := range pantry.Names() {
		if strings.Contains(ingredient, name) {
			return name, true
		}
	}

	for _, name := range pantry.Names() {
		if strings.Contains(name, ingredient) {
			return name, true
		}
	}

	ingredientWords := wordSet(ingredient)
	if len(ingredientWords) == 0 {
		return "", false
	}
	for _, name := range pantry.Names() {
		overlap := 0
		for w := range wordSet(name) {
			if _, ok := ingredientWords[w]; ok {
				overlap++
			}
		}
		if float64(overlap)/float64(len(ingredientWords)) >= wordOverlapThreshold {
			return name, true
		}
	}

	return "", false
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
