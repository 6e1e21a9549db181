package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type RecipeRepo interface {
	Create(dbc dbctx.Context, recipe *types.Recipe) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error)
	GetByExternalKey(dbc dbctx.Context, provider, externalID string) (*types.Recipe, error)
	ListAll(dbc dbctx.Context) ([]*types.Recipe, error)
	// ListExternal returns every recipe carrying a non-null external key,
	// oldest first. Used by the dedup reconciliation pass.
	ListExternal(dbc dbctx.Context) ([]*types.Recipe, error)
	Search(dbc dbctx.Context, query string, limit int) ([]*types.Recipe, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	ClearImportedBy(dbc dbctx.Context, userID uuid.UUID) error
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *recipeRepo) Create(dbc dbctx.Context, recipe *types.Recipe) error {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	return r.tx(dbc).WithContext(dbc.Ctx).Create(recipe).Error
}

func (r *recipeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Recipe
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *recipeRepo) GetByExternalKey(dbc dbctx.Context, provider, externalID string) (*types.Recipe, error) {
	if provider == "" || externalID == "" {
		return nil, nil
	}
	var row types.Recipe
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("external_provider = ? AND external_id = ?", provider, externalID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *recipeRepo) ListAll(dbc dbctx.Context) ([]*types.Recipe, error) {
	var rows []*types.Recipe
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeRepo) ListExternal(dbc dbctx.Context) ([]*types.Recipe, error) {
	var rows []*types.Recipe
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("external_provider IS NOT NULL AND external_id IS NOT NULL").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeRepo) Search(dbc dbctx.Context, query string, limit int) ([]*types.Recipe, error) {
	if limit <= 0 {
		limit = 20
	}
	term := "%" + query + "%"
	var rows []*types.Recipe
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("name ILIKE ? OR description ILIKE ?", term, term).
		Order("name ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *recipeRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return r.tx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Recipe{}).Error
}

func (r *recipeRepo) ClearImportedBy(dbc dbctx.Context, userID uuid.UUID) error {
	return r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Where("imported_by = ?", userID).
		Update("imported_by", nil).Error
}
