package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type IntegrationRepo interface {
	Upsert(dbc dbctx.Context, row *types.RecipeIntegration) error
	GetByUser(dbc dbctx.Context, userID uuid.UUID) (*types.RecipeIntegration, error)
	RecordSync(dbc dbctx.Context, userID uuid.UUID, imported int, at time.Time) error
	DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error
}

type integrationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIntegrationRepo(db *gorm.DB, baseLog *logger.Logger) IntegrationRepo {
	return &integrationRepo{db: db, log: baseLog.With("repo", "IntegrationRepo")}
}

func (r *integrationRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

// Upsert keeps one settings row per user. Sync bookkeeping columns survive a
// settings update; RecordSync owns them.
func (r *integrationRepo) Upsert(dbc dbctx.Context, row *types.RecipeIntegration) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.tx(dbc).WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"provider", "server_url", "import_images", "updated_at"}),
		}).
		Create(row).Error
}

func (r *integrationRepo) GetByUser(dbc dbctx.Context, userID uuid.UUID) (*types.RecipeIntegration, error) {
	var row types.RecipeIntegration
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *integrationRepo) RecordSync(dbc dbctx.Context, userID uuid.UUID, imported int, at time.Time) error {
	return r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.RecipeIntegration{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"last_sync_at":           at,
			"total_recipes_imported": gorm.Expr("total_recipes_imported + ?", imported),
			"updated_at":             time.Now().UTC(),
		}).Error
}

func (r *integrationRepo) DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error {
	return r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Delete(&types.RecipeIntegration{}).Error
}
