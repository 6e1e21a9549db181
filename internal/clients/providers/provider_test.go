package providers

import "testing"

func TestParseMinutes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"25", 25},
		{"25 min", 25},
		{"PT25M", 25},
		{"PT1H30M", 90},
		{"pt2h", 120},
		{"soon", 0},
	}
	for _, tc := range cases {
		if got := parseMinutes(tc.in); got != tc.want {
			t.Errorf("parseMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseServings(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want int
	}{
		{"", 4},
		{"4", 4},
		{"serves 6", 6},
		{"Makes 12 muffins", 12},
		{"a few", 4},
	}
	for _, tc := range cases {
		if got := parseServings(tc.in); got != tc.want {
			t.Errorf("parseServings(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	t.Parallel()
	if _, err := New("paprika", Config{}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestMealieNormalizeSkipsSectionHeaders(t *testing.T) {
	t.Parallel()
	m := &mealie{serverURL: "https://mealie.local"}

	r := mealieRecipe{
		ID:   "abc-123",
		Slug: "pancakes",
		Name: "Pancakes",
		RecipeIngredient: []mealieIngredient{
			{Title: "Dry ingredients", IsFood: false},
			{
				IsFood:   true,
				Quantity: 200,
				Display:  "200 g flour",
				Food:     &mealieNamed{Name: "flour"},
				Unit:     &mealieNamed{Name: "g"},
			},
		},
	}

	got := m.normalize(r)
	if got.ExternalID != "pancakes" {
		t.Fatalf("external id = %q, want slug", got.ExternalID)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Name != "flour" {
		t.Fatalf("ingredients = %+v, want only flour", got.Ingredients)
	}
	if got.ImageURL != "https://mealie.local/api/media/recipes/abc-123/images/original.webp" {
		t.Fatalf("image url = %q", got.ImageURL)
	}
	if got.Servings != 4 {
		t.Fatalf("servings = %d, want default 4", got.Servings)
	}
}
