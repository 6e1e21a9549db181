package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/domain/pantry"
	"github.com/pantrypal/pantrypal-backend/internal/matching"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
)

type fakeRecipeRepo struct {
	rows []*types.Recipe
}

func (f *fakeRecipeRepo) Create(_ dbctx.Context, r *types.Recipe) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.rows = append(f.rows, r)
	return nil
}

func (f *fakeRecipeRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Recipe, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecipeRepo) GetByExternalKey(_ dbctx.Context, provider, externalID string) (*types.Recipe, error) {
	for _, r := range f.rows {
		if r.ExternalProvider != nil && *r.ExternalProvider == provider &&
			r.ExternalID != nil && *r.ExternalID == externalID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecipeRepo) ListAll(dbctx.Context) ([]*types.Recipe, error)      { return f.rows, nil }
func (f *fakeRecipeRepo) ListExternal(dbctx.Context) ([]*types.Recipe, error) { return f.rows, nil }

func (f *fakeRecipeRepo) Search(dbctx.Context, string, int) ([]*types.Recipe, error) {
	return f.rows, nil
}

func (f *fakeRecipeRepo) UpdateFields(dbctx.Context, uuid.UUID, map[string]any) error { return nil }

func (f *fakeRecipeRepo) Delete(_ dbctx.Context, id uuid.UUID) error {
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRecipeRepo) ClearImportedBy(dbctx.Context, uuid.UUID) error { return nil }

type prefKey struct {
	user   uuid.UUID
	recipe uuid.UUID
}

type fakePreferenceRepo struct {
	rows map[prefKey]*types.UserRecipePreference

	applyCalls int
	failApply  func(call int) error
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{rows: map[prefKey]*types.UserRecipePreference{}}
}

func (f *fakePreferenceRepo) Ensure(_ dbctx.Context, userID, recipeID uuid.UUID) error {
	k := prefKey{userID, recipeID}
	if _, ok := f.rows[k]; !ok {
		f.rows[k] = &types.UserRecipePreference{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	}
	return nil
}

func (f *fakePreferenceRepo) GetByUserAndRecipe(_ dbctx.Context, userID, recipeID uuid.UUID) (*types.UserRecipePreference, error) {
	return f.rows[prefKey{userID, recipeID}], nil
}

func (f *fakePreferenceRepo) ListByUser(_ dbctx.Context, userID uuid.UUID) ([]*types.UserRecipePreference, error) {
	var out []*types.UserRecipePreference
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePreferenceRepo) ListByRecipe(_ dbctx.Context, recipeID uuid.UUID) ([]*types.UserRecipePreference, error) {
	var out []*types.UserRecipePreference
	for _, p := range f.rows {
		if p.RecipeID == recipeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePreferenceRepo) ApplyMatchResult(dbc dbctx.Context, userID, recipeID uuid.UUID, result matching.MatchResult) error {
	f.applyCalls++
	if f.failApply != nil {
		if err := f.failApply(f.applyCalls); err != nil {
			return err
		}
	}
	if err := f.Ensure(dbc, userID, recipeID); err != nil {
		return err
	}
	row := f.rows[prefKey{userID, recipeID}]
	row.MatchPercentage = result.MatchPercentage
	row.AvailableCount = result.AvailableCount
	row.MissingCount = result.MissingCount
	row.ExpiringCount = result.ExpiringCount
	row.UsesExpiringItems = result.UsesExpiringItems
	return nil
}

func (f *fakePreferenceRepo) UpdateFields(_ dbctx.Context, userID, recipeID uuid.UUID, updates map[string]any) error {
	row := f.rows[prefKey{userID, recipeID}]
	if row == nil {
		return fmt.Errorf("no row for %s/%s", userID, recipeID)
	}
	for k, v := range updates {
		switch k {
		case "favorite":
			row.Favorite = v.(bool)
		case "notes":
			row.Notes = v.(string)
		case "times_cooked":
			row.TimesCooked = v.(int)
		case "last_cooked":
			t := v.(time.Time)
			row.LastCooked = &t
		}
	}
	return nil
}

func (f *fakePreferenceRepo) ReHome(_ dbctx.Context, from, to uuid.UUID) (int64, error) {
	var moved int64
	for k, p := range f.rows {
		if k.recipe != from {
			continue
		}
		if _, exists := f.rows[prefKey{k.user, to}]; exists {
			continue
		}
		p.RecipeID = to
		f.rows[prefKey{k.user, to}] = p
		delete(f.rows, k)
		moved++
	}
	return moved, nil
}

func (f *fakePreferenceRepo) DeleteByRecipe(_ dbctx.Context, recipeID uuid.UUID) error {
	for k := range f.rows {
		if k.recipe == recipeID {
			delete(f.rows, k)
		}
	}
	return nil
}

func (f *fakePreferenceRepo) DeleteByUser(_ dbctx.Context, userID uuid.UUID) error {
	for k := range f.rows {
		if k.user == userID {
			delete(f.rows, k)
		}
	}
	return nil
}

type fakePantryClient struct {
	items []pantry.Item
	err   error
}

func (f *fakePantryClient) ListItems(context.Context, uuid.UUID) ([]pantry.Item, error) {
	return f.items, f.err
}
