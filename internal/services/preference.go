package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/data/repos/catalog"
	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

// PreferenceService owns the per-user, per-recipe preference record. All
// operations are idempotent under retry.
type PreferenceService interface {
	GetOrCreate(dbc dbctx.Context, userID, recipeID uuid.UUID) (*types.UserRecipePreference, error)
	ToggleFavorite(dbc dbctx.Context, userID, recipeID uuid.UUID) (bool, error)
	RecordCooked(dbc dbctx.Context, userID, recipeID uuid.UUID) (*types.UserRecipePreference, error)
	SetNotes(dbc dbctx.Context, userID, recipeID uuid.UUID, notes string) error
}

type preferenceService struct {
	db      *gorm.DB
	log     *logger.Logger
	recipes catalog.RecipeRepo
	prefs   catalog.PreferenceRepo
}

func NewPreferenceService(db *gorm.DB, baseLog *logger.Logger, recipes catalog.RecipeRepo, prefs catalog.PreferenceRepo) PreferenceService {
	return &preferenceService{
		db:      db,
		log:     baseLog.With("service", "PreferenceService"),
		recipes: recipes,
		prefs:   prefs,
	}
}

func (s *preferenceService) GetOrCreate(dbc dbctx.Context, userID, recipeID uuid.UUID) (*types.UserRecipePreference, error) {
	if err := s.requireRecipe(dbc, recipeID); err != nil {
		return nil, err
	}
	if err := s.prefs.Ensure(dbc, userID, recipeID); err != nil {
		return nil, err
	}
	row, err := s.prefs.GetByUserAndRecipe(dbc, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("preference row missing after ensure: %w", errs.ErrPersistence)
	}
	return row, nil
}

func (s *preferenceService) ToggleFavorite(dbc dbctx.Context, userID, recipeID uuid.UUID) (bool, error) {
	var next bool
	err := s.inTx(dbc, func(inner dbctx.Context) error {
		row, err := s.GetOrCreate(inner, userID, recipeID)
		if err != nil {
			return err
		}
		next = !row.Favorite
		return s.prefs.UpdateFields(inner, userID, recipeID, map[string]any{"favorite": next})
	})
	if err != nil {
		return false, err
	}
	return next, nil
}

func (s *preferenceService) RecordCooked(dbc dbctx.Context, userID, recipeID uuid.UUID) (*types.UserRecipePreference, error) {
	var out *types.UserRecipePreference
	err := s.inTx(dbc, func(inner dbctx.Context) error {
		row, err := s.GetOrCreate(inner, userID, recipeID)
		if err != nil {
			return err
		}
		if err := s.prefs.UpdateFields(inner, userID, recipeID, map[string]any{
			"times_cooked": row.TimesCooked + 1,
			"last_cooked":  time.Now().UTC(),
		}); err != nil {
			return err
		}
		out, err = s.prefs.GetByUserAndRecipe(inner, userID, recipeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *preferenceService) SetNotes(dbc dbctx.Context, userID, recipeID uuid.UUID, notes string) error {
	return s.inTx(dbc, func(inner dbctx.Context) error {
		if _, err := s.GetOrCreate(inner, userID, recipeID); err != nil {
			return err
		}
		return s.prefs.UpdateFields(inner, userID, recipeID, map[string]any{"notes": notes})
	})
}

func (s *preferenceService) requireRecipe(dbc dbctx.Context, recipeID uuid.UUID) error {
	recipe, err := s.recipes.GetByID(dbc, recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return fmt.Errorf("recipe %s: %w", recipeID, errs.ErrNotFound)
	}
	return nil
}

func (s *preferenceService) inTx(dbc dbctx.Context, run func(inner dbctx.Context) error) error {
	if dbc.Tx != nil {
		return run(dbc)
	}
	return s.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		return run(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
	})
}
