package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/data/repos/catalog"
	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type DedupStats struct {
	GroupsCollapsed    int `json:"groups_collapsed"`
	DuplicatesRemoved  int `json:"duplicates_removed"`
	PreferencesRehomed int `json:"preferences_rehomed"`
}

// DedupService reconciles the catalog back to at most one recipe per
// (provider, external_id). The unique index prevents new duplicates; this
// pass cleans up rows that predate it. Safe to re-run: a clean catalog
// yields all-zero stats.
type DedupService interface {
	Run(ctx context.Context) (*DedupStats, error)
}

type dedupService struct {
	db      *gorm.DB
	log     *logger.Logger
	recipes catalog.RecipeRepo
	prefs   catalog.PreferenceRepo
	images  catalog.ImageRepo
}

func NewDedupService(db *gorm.DB, baseLog *logger.Logger, recipes catalog.RecipeRepo, prefs catalog.PreferenceRepo, images catalog.ImageRepo) DedupService {
	return &dedupService{
		db:      db,
		log:     baseLog.With("service", "DedupService"),
		recipes: recipes,
		prefs:   prefs,
		images:  images,
	}
}

func (s *dedupService) Run(ctx context.Context) (*DedupStats, error) {
	stats := &DedupStats{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		rows, err := s.recipes.ListExternal(dbc)
		if err != nil {
			return fmt.Errorf("list external recipes: %w", err)
		}

		// Rows arrive oldest first, so the first of each key is canonical.
		groups := map[string][]*types.Recipe{}
		order := []string{}
		for _, r := range rows {
			key := *r.ExternalProvider + "\x00" + *r.ExternalID
			if _, seen := groups[key]; !seen {
				order = append(order, key)
			}
			groups[key] = append(groups[key], r)
		}

		for _, key := range order {
			group := groups[key]
			if len(group) < 2 {
				continue
			}
			canonical := group[0]
			for _, dup := range group[1:] {
				moved, err := s.prefs.ReHome(dbc, dup.ID, canonical.ID)
				if err != nil {
					return fmt.Errorf("re-home preferences %s -> %s: %w", dup.ID, canonical.ID, err)
				}
				stats.PreferencesRehomed += int(moved)

				if err := s.prefs.DeleteByRecipe(dbc, dup.ID); err != nil {
					return fmt.Errorf("delete orphaned preferences for %s: %w", dup.ID, err)
				}
				if err := s.images.DeleteByRecipe(dbc, dup.ID); err != nil {
					return fmt.Errorf("delete image row for %s: %w", dup.ID, err)
				}
				if err := s.recipes.Delete(dbc, dup.ID); err != nil {
					return fmt.Errorf("delete duplicate recipe %s: %w", dup.ID, err)
				}
				stats.DuplicatesRemoved++
			}
			stats.GroupsCollapsed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if stats.DuplicatesRemoved > 0 {
		s.log.Info("Catalog dedup complete",
			"groups", stats.GroupsCollapsed,
			"removed", stats.DuplicatesRemoved,
			"preferences_rehomed", stats.PreferencesRehomed,
		)
	}
	return stats, nil
}
