package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/clients/imagestore"
	"github.com/pantrypal/pantrypal-backend/internal/data/repos/catalog"
	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

// RecipeView is the read model: shared recipe fields merged with the calling
// user's preference row. Preference fields default to zero when the user has
// no row yet.
type RecipeView struct {
	types.Recipe

	MatchPercentage     float64            `json:"match_percentage"`
	AvailableCount      int                `json:"available_count"`
	MissingCount        int                `json:"missing_count"`
	ExpiringCount       int                `json:"expiring_count"`
	MissingIngredients  []types.Ingredient `json:"missing_ingredients"`
	ExpiringIngredients []types.Ingredient `json:"expiring_ingredients"`
	UsesExpiringItems   bool               `json:"uses_expiring_items"`
	Favorite            bool               `json:"favorite"`
	Notes               string             `json:"notes"`
	TimesCooked         int                `json:"times_cooked"`
	LastCooked          *time.Time         `json:"last_cooked,omitempty"`
}

type RecipeService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*RecipeView, error)
	Get(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeView, error)
	Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*RecipeView, error)
	// Suggestions returns the user's best-matching recipes, highest cached
	// match percentage first.
	Suggestions(ctx context.Context, userID uuid.UUID, limit int) ([]*RecipeView, error)
	// Expiring returns recipes whose cached match uses soon-to-expire items.
	Expiring(ctx context.Context, userID uuid.UUID) ([]*RecipeView, error)
	Favorites(ctx context.Context, userID uuid.UUID) ([]*RecipeView, error)
	// Delete removes a recipe from the shared catalog along with every
	// user's preference rows and the stored image.
	Delete(ctx context.Context, recipeID uuid.UUID) error
}

type recipeService struct {
	db      *gorm.DB
	log     *logger.Logger
	recipes catalog.RecipeRepo
	prefs   catalog.PreferenceRepo
	images  catalog.ImageRepo
	store   imagestore.Store
}

func NewRecipeService(db *gorm.DB, baseLog *logger.Logger, recipes catalog.RecipeRepo, prefs catalog.PreferenceRepo, images catalog.ImageRepo, store imagestore.Store) RecipeService {
	return &recipeService{
		db:      db,
		log:     baseLog.With("service", "RecipeService"),
		recipes: recipes,
		prefs:   prefs,
		images:  images,
		store:   store,
	}
}

func (s *recipeService) List(ctx context.Context, userID uuid.UUID) ([]*RecipeView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	recipes, err := s.recipes.ListAll(dbc)
	if err != nil {
		return nil, err
	}
	return s.merge(dbc, userID, recipes)
}

func (s *recipeService) Get(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	recipe, err := s.recipes.GetByID(dbc, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, errs.ErrNotFound)
	}
	pref, err := s.prefs.GetByUserAndRecipe(dbc, userID, recipeID)
	if err != nil {
		return nil, err
	}
	return newRecipeView(recipe, pref), nil
}

func (s *recipeService) Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*RecipeView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	recipes, err := s.recipes.Search(dbc, query, limit)
	if err != nil {
		return nil, err
	}
	return s.merge(dbc, userID, recipes)
}

func (s *recipeService) Suggestions(ctx context.Context, userID uuid.UUID, limit int) ([]*RecipeView, error) {
	views, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].MatchPercentage > views[j].MatchPercentage
	})
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

func (s *recipeService) Expiring(ctx context.Context, userID uuid.UUID) ([]*RecipeView, error) {
	views, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := views[:0]
	for _, v := range views {
		if v.UsesExpiringItems {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *recipeService) Favorites(ctx context.Context, userID uuid.UUID) ([]*RecipeView, error) {
	views, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := views[:0]
	for _, v := range views {
		if v.Favorite {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *recipeService) Delete(ctx context.Context, recipeID uuid.UUID) error {
	var imageKey string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		recipe, err := s.recipes.GetByID(dbc, recipeID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return fmt.Errorf("recipe %s: %w", recipeID, errs.ErrNotFound)
		}

		if img, err := s.images.GetByRecipe(dbc, recipeID); err == nil && img != nil {
			imageKey = img.StorageKey
		}
		if err := s.prefs.DeleteByRecipe(dbc, recipeID); err != nil {
			return err
		}
		if err := s.images.DeleteByRecipe(dbc, recipeID); err != nil {
			return err
		}
		return s.recipes.Delete(dbc, recipeID)
	})
	if err != nil {
		return err
	}

	if imageKey != "" {
		if err := s.store.Delete(imageKey); err != nil {
			s.log.Warn("Failed to remove stored image file", "recipe_id", recipeID, "key", imageKey, "error", err)
		}
	}
	return nil
}

func (s *recipeService) merge(dbc dbctx.Context, userID uuid.UUID, recipes []*types.Recipe) ([]*RecipeView, error) {
	prefRows, err := s.prefs.ListByUser(dbc, userID)
	if err != nil {
		return nil, err
	}
	byRecipe := make(map[uuid.UUID]*types.UserRecipePreference, len(prefRows))
	for _, p := range prefRows {
		byRecipe[p.RecipeID] = p
	}

	views := make([]*RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, newRecipeView(r, byRecipe[r.ID]))
	}
	return views, nil
}

func newRecipeView(recipe *types.Recipe, pref *types.UserRecipePreference) *RecipeView {
	v := &RecipeView{
		Recipe:              *recipe,
		MissingIngredients:  []types.Ingredient{},
		ExpiringIngredients: []types.Ingredient{},
	}
	if pref == nil {
		return v
	}
	v.MatchPercentage = pref.MatchPercentage
	v.AvailableCount = pref.AvailableCount
	v.MissingCount = pref.MissingCount
	v.ExpiringCount = pref.ExpiringCount
	if pref.MissingIngredients != nil {
		v.MissingIngredients = pref.MissingIngredients
	}
	if pref.ExpiringIngredients != nil {
		v.ExpiringIngredients = pref.ExpiringIngredients
	}
	v.UsesExpiringItems = pref.UsesExpiringItems
	v.Favorite = pref.Favorite
	v.Notes = pref.Notes
	v.TimesCooked = pref.TimesCooked
	v.LastCooked = pref.LastCooked
	return v
}
