package matching

import (
	"math"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
)

// MatchResult is the value object produced by matching one recipe against
// one pantry snapshot. It is cached verbatim on the user's preference row.
type MatchResult struct {
	MatchPercentage     float64            `json:"match_percentage"`
	AvailableCount      int                `json:"available_count"`
	MissingCount        int                `json:"missing_count"`
	ExpiringCount       int                `json:"expiring_count"`
	MissingIngredients  []types.Ingredient `json:"missing_ingredients"`
	ExpiringIngredients []types.Ingredient `json:"expiring_ingredients"`
	UsesExpiringItems   bool               `json:"uses_expiring_items"`
}

// Calculator computes MatchResults. Stateless beyond its collaborators.
type Calculator struct {
	norm    *Normalizer
	matcher *Matcher
}

func NewCalculator(norm *Normalizer, matcher *Matcher) *Calculator {
	return &Calculator{norm: norm, matcher: matcher}
}

// Match walks the recipe's ingredient list against the pantry. An empty
// recipe never matches: zero percentage, zero counts.
func (c *Calculator) Match(ingredients []types.Ingredient, pantry *PantrySet, expiring map[string]struct{}) MatchResult {
	result := MatchResult{
		MissingIngredients:  []types.Ingredient{},
		ExpiringIngredients: []types.Ingredient{},
	}
	total := len(ingredients)
	if total == 0 {
		return result
	}

	for _, ing := range ingredients {
		normalized := c.norm.Normalize(ing.Name)
		matched, ok := c.matcher.Match(normalized, pantry)
		if !ok {
			result.MissingIngredients = append(result.MissingIngredients, ing)
			continue
		}
		result.AvailableCount++
		if _, soon := expiring[matched]; soon {
			result.ExpiringIngredients = append(result.ExpiringIngredients, ing)
		}
	}

	result.MissingCount = len(result.MissingIngredients)
	result.ExpiringCount = len(result.ExpiringIngredients)
	result.UsesExpiringItems = result.ExpiringCount > 0
	result.MatchPercentage = roundPercent(float64(result.AvailableCount) / float64(total) * 100)
	return result
}

// roundPercent rounds half away from zero to two decimals.
func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}
