package matching

import (
	"testing"

	"github.com/pantrypal/pantrypal-backend/internal/domain/pantry"
)

func pantrySetOf(t *testing.T, names ...string) *PantrySet {
	t.Helper()
	norm := NewNormalizer(DefaultDescriptorWords)
	items := make([]pantry.Item, 0, len(names))
	for _, n := range names {
		items = append(items, pantry.Item{Name: n})
	}
	return NewPantrySet(norm, items)
}

func TestMatchIsReflexive(t *testing.T) {
	t.Parallel()
	m := NewMatcher()
	ps := pantrySetOf(t, "milk", "egg", "flour", "olive oil")

	for _, name := range ps.Names() {
		got, ok := m.Match(name, ps)
		if !ok || got != name {
			t.Errorf("Match(%q) = (%q, %v), want itself", name, got, ok)
		}
	}
}

func TestMatchFallbackOrder(t *testing.T) {
	t.Parallel()
	m := NewMatcher()

	cases := []struct {
		name       string
		ingredient string
		pantry     []string
		want       string
		wantOK     bool
	}{
		{"exact", "milk", []string{"milk", "egg"}, "milk", true},
		// Ingredient string contains a pantry name.
		{"ingredient contains pantry", "coconut milk", []string{"milk"}, "milk", true},
		// Pantry name contains the ingredient string.
		{"pantry contains ingredient", "milk", []string{"milk 2%"}, "milk 2%", true},
		// Word overlap is the last resort: 2 of 3 ingredient words present.
		{"word overlap", "tomato basil sauce", []string{"tomato sauce"}, "tomato sauce", true},
		// Below the 0.5 overlap threshold.
		{"overlap below threshold", "spicy green mango chutney", []string{"mango lassi"}, "", false},
		{"no match", "sugar", []string{"milk", "egg", "flour"}, "", false},
		{"empty pantry", "milk", nil, "", false},
		{"empty ingredient", "", []string{"milk"}, "", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ps := pantrySetOf(t, tc.pantry...)
			got, ok := m.Match(tc.ingredient, ps)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("Match(%q, %v) = (%q, %v), want (%q, %v)",
					tc.ingredient, tc.pantry, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	t.Parallel()
	m := NewMatcher()
	// Both pantry names contain the ingredient; the sorted scan must always
	// resolve to the same one.
	ps := pantrySetOf(t, "almond milk", "coconut milk drink")

	first, ok := m.Match("milk", ps)
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 50; i++ {
		got, ok := m.Match("milk", ps)
		if !ok || got != first {
			t.Fatalf("run %d: Match = (%q, %v), want (%q, true)", i, got, ok, first)
		}
	}
}
