package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/clients/inventory"
	"github.com/pantrypal/pantrypal-backend/internal/data/repos/catalog"
	"github.com/pantrypal/pantrypal-backend/internal/matching"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

// A run that cannot write several recipes in a row has lost the store, not
// hit a few bad rows. Abort and report partial counts.
const maxConsecutiveStoreFailures = 3

// MatchStats summarizes one batch run. Partial success is the norm: callers
// can tell "3 of 50 failed" from total failure.
type MatchStats struct {
	TotalRecipes         int      `json:"total_recipes"`
	RecipesUpdated       int      `json:"recipes_updated"`
	RecipesWithMatches   int      `json:"recipes_with_matches"`
	RecipesUsingExpiring int      `json:"recipes_using_expiring"`
	Errors               []string `json:"errors,omitempty"`
}

// MatchService recomputes the cached match result of every catalog recipe
// for one user against that user's current pantry snapshot.
type MatchService interface {
	RunMatch(ctx context.Context, userID uuid.UUID, expiringDays int) (*MatchStats, error)
}

type matchService struct {
	log     *logger.Logger
	recipes catalog.RecipeRepo
	prefs   catalog.PreferenceRepo
	pantry  inventory.Client
	norm    *matching.Normalizer
	calc    *matching.Calculator
	expiry  *matching.ExpiryClassifier
}

func NewMatchService(baseLog *logger.Logger, recipes catalog.RecipeRepo, prefs catalog.PreferenceRepo, pantry inventory.Client) MatchService {
	norm := matching.NewNormalizer(matching.DefaultDescriptorWords)
	return &matchService{
		log:     baseLog.With("service", "MatchService"),
		recipes: recipes,
		prefs:   prefs,
		pantry:  pantry,
		norm:    norm,
		calc:    matching.NewCalculator(norm, matching.NewMatcher()),
		expiry:  matching.NewExpiryClassifier(norm),
	}
}

func (s *matchService) RunMatch(ctx context.Context, userID uuid.UUID, expiringDays int) (*MatchStats, error) {
	stats := &MatchStats{}

	items, err := s.pantry.ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load pantry snapshot: %w", err)
	}
	pantrySet := matching.NewPantrySet(s.norm, items)
	expiring := s.expiry.ExpiringNames(items, expiringDays)

	dbc := dbctx.Context{Ctx: ctx}
	recipes, err := s.recipes.ListAll(dbc)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	stats.TotalRecipes = len(recipes)

	// Every recipe is its own write. A failed one never corrupts rows
	// already written for its siblings.
	consecutiveFailures := 0
	for _, recipe := range recipes {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		result := s.calc.Match(recipe.Ingredients, pantrySet, expiring)
		if err := s.prefs.ApplyMatchResult(dbc, userID, recipe.ID, result); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", recipe.ID, err))
			consecutiveFailures++
			if consecutiveFailures >= maxConsecutiveStoreFailures {
				s.log.Error("Aborting match run, store unreachable", "user_id", userID, "written", stats.RecipesUpdated)
				return stats, fmt.Errorf("match run aborted after %d consecutive store failures: %w", consecutiveFailures, err)
			}
			continue
		}
		consecutiveFailures = 0

		stats.RecipesUpdated++
		if result.MatchPercentage > 0 {
			stats.RecipesWithMatches++
		}
		if result.UsesExpiringItems {
			stats.RecipesUsingExpiring++
		}
	}

	s.log.Info("Match run complete",
		"user_id", userID,
		"total", stats.TotalRecipes,
		"updated", stats.RecipesUpdated,
		"with_matches", stats.RecipesWithMatches,
		"using_expiring", stats.RecipesUsingExpiring,
		"errors", len(stats.Errors),
	)
	return stats, nil
}
