package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/matching"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type PreferenceRepo interface {
	// Ensure creates the (user, recipe) row with zero-valued match fields if
	// it does not exist. No-op when it does; concurrent calls are safe.
	Ensure(dbc dbctx.Context, userID, recipeID uuid.UUID) error
	GetByUserAndRecipe(dbc dbctx.Context, userID, recipeID uuid.UUID) (*types.UserRecipePreference, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.UserRecipePreference, error)
	ListByRecipe(dbc dbctx.Context, recipeID uuid.UUID) ([]*types.UserRecipePreference, error)
	ApplyMatchResult(dbc dbctx.Context, userID, recipeID uuid.UUID, result matching.MatchResult) error
	UpdateFields(dbc dbctx.Context, userID, recipeID uuid.UUID, updates map[string]any) error
	// ReHome moves preference rows from one recipe to another, skipping users
	// who already hold a row on the destination. Returns rows moved.
	ReHome(dbc dbctx.Context, fromRecipeID, toRecipeID uuid.UUID) (int64, error)
	DeleteByRecipe(dbc dbctx.Context, recipeID uuid.UUID) error
	DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error
}

type preferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) PreferenceRepo {
	return &preferenceRepo{db: db, log: baseLog.With("repo", "PreferenceRepo")}
}

func (r *preferenceRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *preferenceRepo) Ensure(dbc dbctx.Context, userID, recipeID uuid.UUID) error {
	row := types.UserRecipePreference{
		ID:                  uuid.New(),
		UserID:              userID,
		RecipeID:            recipeID,
		MissingIngredients:  datatypes.JSONSlice[types.Ingredient]{},
		ExpiringIngredients: datatypes.JSONSlice[types.Ingredient]{},
	}
	return r.tx(dbc).WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *preferenceRepo) GetByUserAndRecipe(dbc dbctx.Context, userID, recipeID uuid.UUID) (*types.UserRecipePreference, error) {
	var row types.UserRecipePreference
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *preferenceRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.UserRecipePreference, error) {
	var rows []*types.UserRecipePreference
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *preferenceRepo) ListByRecipe(dbc dbctx.Context, recipeID uuid.UUID) ([]*types.UserRecipePreference, error) {
	var rows []*types.UserRecipePreference
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("recipe_id = ?", recipeID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ApplyMatchResult overwrites only the cached match columns. Favorite, notes
// and cooking history are never touched here.
func (r *preferenceRepo) ApplyMatchResult(dbc dbctx.Context, userID, recipeID uuid.UUID, result matching.MatchResult) error {
	if err := r.Ensure(dbc, userID, recipeID); err != nil {
		return err
	}
	return r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.UserRecipePreference{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Updates(map[string]any{
			"match_percentage":     result.MatchPercentage,
			"available_count":      result.AvailableCount,
			"missing_count":        result.MissingCount,
			"expiring_count":       result.ExpiringCount,
			"missing_ingredients":  datatypes.JSONSlice[types.Ingredient](result.MissingIngredients),
			"expiring_ingredients": datatypes.JSONSlice[types.Ingredient](result.ExpiringIngredients),
			"uses_expiring_items":  result.UsesExpiringItems,
			"updated_at":           time.Now().UTC(),
		}).Error
}

func (r *preferenceRepo) UpdateFields(dbc dbctx.Context, userID, recipeID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.UserRecipePreference{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Updates(updates).Error
}

func (r *preferenceRepo) ReHome(dbc dbctx.Context, fromRecipeID, toRecipeID uuid.UUID) (int64, error) {
	res := r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.UserRecipePreference{}).
		Where("recipe_id = ? AND user_id NOT IN (?)",
			fromRecipeID,
			r.tx(dbc).Model(&types.UserRecipePreference{}).
				Select("user_id").
				Where("recipe_id = ?", toRecipeID),
		).
		Updates(map[string]any{
			"recipe_id":  toRecipeID,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *preferenceRepo) DeleteByRecipe(dbc dbctx.Context, recipeID uuid.UUID) error {
	return r.tx(dbc).WithContext(dbc.Ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.UserRecipePreference{}).Error
}

func (r *preferenceRepo) DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error {
	return r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserRecipePreference{}).Error
}
