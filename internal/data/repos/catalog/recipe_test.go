package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pantrypal/pantrypal-backend/internal/data/repos/testutil"
	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
)

func strPtr(s string) *string { return &s }

func TestRecipeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRecipeRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	recipe := &types.Recipe{
		Name:             "Pancakes",
		Description:      "Weekend breakfast",
		ExternalProvider: strPtr("mealie"),
		ExternalID:       strPtr("pancakes-1"),
		Ingredients: datatypes.JSONSlice[types.Ingredient]{
			{Name: "Flour", Quantity: 200, Unit: "g"},
			{Name: "Milk", Quantity: 1, Unit: "cup"},
		},
		Servings: 4,
	}
	if err := repo.Create(dbc, recipe); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if recipe.ID == uuid.Nil {
		t.Fatal("Create: expected non-nil ID")
	}

	got, err := repo.GetByID(dbc, recipe.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "Pancakes" {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}
	if len(got.Ingredients) != 2 {
		t.Fatalf("GetByID: expected 2 ingredients, got %d", len(got.Ingredients))
	}

	byKey, err := repo.GetByExternalKey(dbc, "mealie", "pancakes-1")
	if err != nil {
		t.Fatalf("GetByExternalKey: %v", err)
	}
	if byKey == nil || byKey.ID != recipe.ID {
		t.Fatalf("GetByExternalKey: unexpected result: %+v", byKey)
	}

	missing, err := repo.GetByExternalKey(dbc, "mealie", "nope")
	if err != nil {
		t.Fatalf("GetByExternalKey (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByExternalKey (missing): expected nil, got %+v", missing)
	}

	if err := repo.UpdateFields(dbc, recipe.ID, map[string]any{"name": "Buttermilk Pancakes"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, err = repo.GetByID(dbc, recipe.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Name != "Buttermilk Pancakes" {
		t.Fatalf("UpdateFields: name = %q", got.Name)
	}

	found, err := repo.Search(dbc, "buttermilk", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 || found[0].ID != recipe.ID {
		t.Fatalf("Search: unexpected result: %+v", found)
	}

	if err := repo.Delete(dbc, recipe.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := repo.GetByID(dbc, recipe.ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("Delete: expected recipe gone, got %+v", gone)
	}
}

func TestRecipeRepoListExternalOrdersOldestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRecipeRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	manual := &types.Recipe{Name: "Manual Entry", Ingredients: datatypes.JSONSlice[types.Ingredient]{}}
	if err := repo.Create(dbc, manual); err != nil {
		t.Fatalf("Create manual: %v", err)
	}
	for _, id := range []string{"ext-a", "ext-b"} {
		r := &types.Recipe{
			Name:             "Imported " + id,
			ExternalProvider: strPtr("tandoor"),
			ExternalID:       strPtr(id),
			Ingredients:      datatypes.JSONSlice[types.Ingredient]{},
		}
		if err := repo.Create(dbc, r); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	rows, err := repo.ListExternal(dbc)
	if err != nil {
		t.Fatalf("ListExternal: %v", err)
	}
	for _, r := range rows {
		if r.ExternalID == nil {
			t.Fatalf("ListExternal: returned recipe without external key: %+v", r)
		}
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].CreatedAt.Before(rows[i-1].CreatedAt) {
			t.Fatal("ListExternal: rows not ordered oldest first")
		}
	}
}
