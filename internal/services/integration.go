package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/data/repos/catalog"
	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

// IntegrationService manages each user's recipe-manager connection settings.
// Tokens pass through per request and are never written to the row.
type IntegrationService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.RecipeIntegration, error)
	Save(ctx context.Context, userID uuid.UUID, provider, serverURL string, importImages bool) (*types.RecipeIntegration, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type integrationService struct {
	db           *gorm.DB
	log          *logger.Logger
	integrations catalog.IntegrationRepo
	recipes      catalog.RecipeRepo
}

func NewIntegrationService(db *gorm.DB, baseLog *logger.Logger, integrations catalog.IntegrationRepo, recipes catalog.RecipeRepo) IntegrationService {
	return &integrationService{
		db:           db,
		log:          baseLog.With("service", "IntegrationService"),
		integrations: integrations,
		recipes:      recipes,
	}
}

func (s *integrationService) Get(ctx context.Context, userID uuid.UUID) (*types.RecipeIntegration, error) {
	row, err := s.integrations.GetByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("integration for user %s: %w", userID, errs.ErrNotFound)
	}
	return row, nil
}

func (s *integrationService) Save(ctx context.Context, userID uuid.UUID, provider, serverURL string, importImages bool) (*types.RecipeIntegration, error) {
	dbc := dbctx.Context{Ctx: ctx}
	row := &types.RecipeIntegration{
		UserID:       userID,
		Provider:     provider,
		ServerURL:    serverURL,
		ImportImages: importImages,
	}
	if err := s.integrations.Upsert(dbc, row); err != nil {
		return nil, err
	}
	return s.integrations.GetByUser(dbc, userID)
}

// Delete removes the connection settings and clears the user's import
// attribution. Imported recipes stay in the shared catalog.
func (s *integrationService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.integrations.DeleteByUser(dbc, userID); err != nil {
			return err
		}
		return s.recipes.ClearImportedBy(dbc, userID)
	})
}
