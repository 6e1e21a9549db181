package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/clients/imagestore"
	"github.com/pantrypal/pantrypal-backend/internal/clients/providers"
	"github.com/pantrypal/pantrypal-backend/internal/clients/redisx"
	"github.com/pantrypal/pantrypal-backend/internal/data/repos/catalog"
	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

// ImportOptions carries one run's connection settings. The token lives only
// for the duration of the run.
type ImportOptions struct {
	Provider     string
	ServerURL    string
	APIToken     string
	ImportImages bool
	Limit        int
}

type ImportStats struct {
	TotalFetched     int      `json:"total_fetched"`
	Imported         int      `json:"imported"`
	Updated          int      `json:"updated"`
	Skipped          int      `json:"skipped"`
	Failed           int      `json:"failed"`
	ImagesDownloaded int      `json:"images_downloaded"`
	Errors           []string `json:"errors,omitempty"`
}

// ImportService pulls recipes from an external recipe manager into the
// shared catalog, keyed by (provider, external_id).
type ImportService interface {
	Run(ctx context.Context, userID uuid.UUID, opts ImportOptions) (*ImportStats, error)
	TestConnection(ctx context.Context, provider, serverURL, apiToken string) error
}

// ErrImportInProgress is returned when another run already holds the user's
// import lock.
var ErrImportInProgress = errors.New("import already running for this user")

type importService struct {
	db           *gorm.DB
	log          *logger.Logger
	recipes      catalog.RecipeRepo
	images       catalog.ImageRepo
	integrations catalog.IntegrationRepo
	store        imagestore.Store
	lock         redisx.ImportLock
	newProvider  func(name string, cfg providers.Config, logg *logger.Logger) (providers.Provider, error)
}

func NewImportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recipes catalog.RecipeRepo,
	images catalog.ImageRepo,
	integrations catalog.IntegrationRepo,
	store imagestore.Store,
	lock redisx.ImportLock,
) ImportService {
	return &importService{
		db:           db,
		log:          baseLog.With("service", "ImportService"),
		recipes:      recipes,
		images:       images,
		integrations: integrations,
		store:        store,
		lock:         lock,
		newProvider:  providers.New,
	}
}

func (s *importService) TestConnection(ctx context.Context, provider, serverURL, apiToken string) error {
	p, err := s.newProvider(provider, providers.Config{ServerURL: serverURL, APIToken: apiToken}, s.log)
	if err != nil {
		return err
	}
	return p.Ping(ctx)
}

func (s *importService) Run(ctx context.Context, userID uuid.UUID, opts ImportOptions) (*ImportStats, error) {
	release, held, err := s.lock.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, ErrImportInProgress
	}
	defer release()

	p, err := s.newProvider(opts.Provider, providers.Config{ServerURL: opts.ServerURL, APIToken: opts.APIToken}, s.log)
	if err != nil {
		return nil, err
	}

	records, err := p.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", p.Name(), err)
	}
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	stats := &ImportStats{TotalFetched: len(records)}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if rec.ExternalID == "" || rec.Name == "" {
			stats.Skipped++
			continue
		}
		if err := s.importOne(ctx, userID, p.Name(), opts, rec, stats); err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", rec.ExternalID, err))
			s.log.Warn("Recipe import failed", "provider", p.Name(), "external_id", rec.ExternalID, "error", err)
		}
	}

	if err := s.integrations.RecordSync(dbctx.Context{Ctx: ctx}, userID, stats.Imported, time.Now().UTC()); err != nil {
		s.log.Warn("Failed to update integration sync stats", "user_id", userID, "error", err)
	}

	s.log.Info("Import complete",
		"provider", p.Name(),
		"fetched", stats.TotalFetched,
		"imported", stats.Imported,
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"images", stats.ImagesDownloaded,
	)
	return stats, nil
}

// importOne writes a single record in its own transaction, then handles the
// image outside it so a slow download never holds a DB lock.
func (s *importService) importOne(ctx context.Context, userID uuid.UUID, provider string, opts ImportOptions, rec providers.Record, stats *ImportStats) error {
	var (
		created  bool
		changed  bool
		recipeID uuid.UUID
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := s.recipes.GetByExternalKey(dbc, provider, rec.ExternalID)
		if err != nil {
			return err
		}
		if existing == nil {
			row := recordToRecipe(provider, rec, userID)
			err := s.recipes.Create(dbc, row)
			if isDuplicateKey(err) {
				// Another run won the insert race. Fold into an update.
				existing, err = s.recipes.GetByExternalKey(dbc, provider, rec.ExternalID)
				if err != nil {
					return err
				}
				if existing == nil {
					return fmt.Errorf("lost insert race but no row found: %w", errs.ErrDuplicateCatalogEntry)
				}
			} else if err != nil {
				return err
			} else {
				created = true
				recipeID = row.ID
				return nil
			}
		}

		recipeID = existing.ID
		changed, err = applyRecordUpdates(dbc, s.recipes, existing, rec)
		return err
	})
	if err != nil {
		return err
	}

	switch {
	case created:
		stats.Imported++
	case changed:
		stats.Updated++
	default:
		stats.Skipped++
	}

	if opts.ImportImages && rec.ImageURL != "" {
		if s.downloadImage(ctx, recipeID, provider, opts.APIToken, rec.ImageURL, created) {
			stats.ImagesDownloaded++
		}
	}
	return nil
}

// applyRecordUpdates rewrites the existing row from the provider record.
// The source is authoritative on sync: scalar content fields are diffed so
// the caller can count real updates, while ingredients, instructions, tags
// and the sync timestamp are rewritten every time. Reports whether any
// diffed field changed.
func applyRecordUpdates(dbc dbctx.Context, repo catalog.RecipeRepo, existing *types.Recipe, rec providers.Record) (bool, error) {
	updates := map[string]any{
		"ingredients":    datatypes.JSONSlice[types.Ingredient](rec.Ingredients),
		"instructions":   datatypes.JSONSlice[string](rec.Instructions),
		"tags":           datatypes.JSONSlice[string](rec.Tags),
		"category":       datatypes.JSONSlice[string](rec.Category),
		"last_synced_at": time.Now().UTC(),
	}
	changed := false
	diff := func(column string, old, next any) {
		if old != next {
			updates[column] = next
			changed = true
		}
	}
	diff("name", existing.Name, rec.Name)
	diff("description", existing.Description, rec.Description)
	diff("prep_time", existing.PrepTime, rec.PrepTime)
	diff("cook_time", existing.CookTime, rec.CookTime)
	diff("total_time", existing.TotalTime, rec.TotalTime)
	diff("servings", existing.Servings, rec.Servings)
	diff("source_url", existing.SourceURL, rec.SourceURL)
	diff("image_url", existing.ImageURL, rec.ImageURL)

	return changed, repo.UpdateFields(dbc, existing.ID, updates)
}

func recordToRecipe(provider string, rec providers.Record, importedBy uuid.UUID) *types.Recipe {
	prov := provider
	extID := rec.ExternalID
	now := time.Now().UTC()
	return &types.Recipe{
		ID:               uuid.New(),
		ExternalProvider: &prov,
		ExternalID:       &extID,
		SourceURL:        rec.SourceURL,
		Name:             rec.Name,
		Description:      rec.Description,
		Ingredients:      datatypes.JSONSlice[types.Ingredient](rec.Ingredients),
		Instructions:     datatypes.JSONSlice[string](rec.Instructions),
		PrepTime:         rec.PrepTime,
		CookTime:         rec.CookTime,
		TotalTime:        rec.TotalTime,
		Servings:         rec.Servings,
		Tags:             datatypes.JSONSlice[string](rec.Tags),
		Category:         datatypes.JSONSlice[string](rec.Category),
		ImageURL:         rec.ImageURL,
		ImportedBy:       &importedBy,
		LastSyncedAt:     &now,
	}
}

// downloadImage is best-effort: a dead media endpoint must not sink the
// import. Reports whether a new file was stored.
func (s *importService) downloadImage(ctx context.Context, recipeID uuid.UUID, source, token, url string, created bool) bool {
	dbc := dbctx.Context{Ctx: ctx}
	if !created {
		existing, err := s.images.GetByRecipe(dbc, recipeID)
		if err != nil || existing != nil {
			return false
		}
	}

	key, mimeType, err := s.store.Download(ctx, recipeID, url, token)
	if err != nil {
		s.log.Warn("Image download failed", "recipe_id", recipeID, "url", url, "error", err)
		return false
	}
	if err := s.images.Upsert(dbc, &types.RecipeImage{
		RecipeID:     recipeID,
		StorageKey:   key,
		Source:       source,
		OriginalURL:  url,
		MimeType:     mimeType,
		DownloadedAt: time.Now().UTC(),
	}); err != nil {
		s.log.Warn("Image row upsert failed", "recipe_id", recipeID, "error", err)
		return false
	}
	return true
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
