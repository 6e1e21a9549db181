package matching

import "strings"

// DefaultDescriptorWords is the stock vocabulary of qualifier words stripped
// during normalization. Passed into NewNormalizer so tests and alternate
// deployments can substitute their own list.
var DefaultDescriptorWords = []string{
	"fresh", "organic", "whole", "extra", "virgin", "raw",
	"free-range", "grass-fed", "wild-caught", "canned", "dried",
	"frozen", "chopped", "sliced", "diced", "minced", "crushed",
	"unsalted", "salted", "sweetened", "unsweetened", "low-fat",
	"fat-free", "reduced", "light", "heavy", "pure", "natural",
}

// Normalizer reduces free-text ingredient and pantry names to a canonical
// lowercase comparison key. Deterministic: same input, same output.
type Normalizer struct {
	descriptors map[string]struct{}
}

func NewNormalizer(descriptorWords []string) *Normalizer {
	set := make(map[string]struct{}, len(descriptorWords))
	for _, w := range descriptorWords {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Normalizer{descriptors: set}
}

// Normalize lowercases and trims, drops parenthetical content, strips
// descriptor words as whole words, collapses whitespace, then applies the
// singularization heuristic exactly once.
func (n *Normalizer) Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = stripParens(s)

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, drop := n.descriptors[w]; !drop {
			kept = append(kept, w)
		}
	}
	s = strings.Join(kept, " ")

	return singularize(s)
}

// stripParens removes every "(...)" span. Unbalanced opens drop the rest of
// the string, matching how a scanner would read it.
func stripParens(s string) string {
	if !strings.ContainsRune(s, '(') {
		return s
	}
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// singularize applies one pass of the English plural heuristic to the whole
// key: "ies" -> "y", then "es" -> "", then a bare trailing "s" on keys longer
// than three runes.
func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "es"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s") && len(s) > 3:
		return s[:len(s)-1]
	}
	return s
}
