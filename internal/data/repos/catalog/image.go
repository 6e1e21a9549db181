package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type ImageRepo interface {
	Upsert(dbc dbctx.Context, row *types.RecipeImage) error
	GetByRecipe(dbc dbctx.Context, recipeID uuid.UUID) (*types.RecipeImage, error)
	DeleteByRecipe(dbc dbctx.Context, recipeID uuid.UUID) error
}

type imageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImageRepo(db *gorm.DB, baseLog *logger.Logger) ImageRepo {
	return &imageRepo{db: db, log: baseLog.With("repo", "ImageRepo")}
}

func (r *imageRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *imageRepo) Upsert(dbc dbctx.Context, row *types.RecipeImage) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.tx(dbc).WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"storage_key", "source", "original_url", "mime_type", "downloaded_at"}),
		}).
		Create(row).Error
}

func (r *imageRepo) GetByRecipe(dbc dbctx.Context, recipeID uuid.UUID) (*types.RecipeImage, error) {
	var row types.RecipeImage
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("recipe_id = ?", recipeID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *imageRepo) DeleteByRecipe(dbc dbctx.Context, recipeID uuid.UUID) error {
	return r.tx(dbc).WithContext(dbc.Ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.RecipeImage{}).Error
}
