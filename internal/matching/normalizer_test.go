package matching

import "testing"

func TestNormalizeCanonicalKeys(t *testing.T) {
	t.Parallel()
	norm := NewNormalizer(DefaultDescriptorWords)

	cases := []struct {
		in   string
		want string
	}{
		{"Fresh Tomatoes", "tomato"},
		{"Whole Milk (2%)", "milk"},
		{"Extra Virgin Olive Oil", "olive oil"},
		{"Eggs", "egg"},
		{"Berries", "berry"},
		{"  Unsalted Butter ", "butter"},
		{"Grass-fed Ground Beef", "ground beef"},
		{"Sugar", "sugar"},
		{"milk", "milk"},
		{"Chopped Onions (red)", "onion"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := norm.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()
	norm := NewNormalizer(DefaultDescriptorWords)

	inputs := []string{
		"Fresh Tomatoes",
		"Whole Milk (2%)",
		"Extra Virgin Olive Oil",
		"Eggs",
		"Berries",
		"chicken breast",
		"all-purpose flour",
	}
	for _, in := range inputs {
		once := norm.Normalize(in)
		twice := norm.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeCustomVocabulary(t *testing.T) {
	t.Parallel()
	norm := NewNormalizer([]string{"jumbo"})

	if got := norm.Normalize("Jumbo Fresh Shrimp"); got != "fresh shrimp" {
		t.Fatalf("custom vocabulary: got %q, want %q", got, "fresh shrimp")
	}
}

func TestStripParensUnbalanced(t *testing.T) {
	t.Parallel()
	if got := stripParens("milk (2%"); got != "milk" {
		t.Fatalf("stripParens unbalanced: got %q", got)
	}
}
