package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
)

// A non-nil Tx keeps the service from opening a real transaction; the fakes
// never touch it.
func fakeDBC() dbctx.Context {
	return dbctx.Context{Ctx: context.Background(), Tx: &gorm.DB{}}
}

func TestToggleFavoriteFlipsAndPersists(t *testing.T) {
	recipes := &fakeRecipeRepo{}
	prefs := newFakePreferenceRepo()
	recipe := seedFakeRecipe(recipes, "Tacos", "Tortilla")

	svc := NewPreferenceService(nil, testLogger(t), recipes, prefs)
	userID := uuid.New()
	dbc := fakeDBC()

	on, err := svc.ToggleFavorite(dbc, userID, recipe.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !on {
		t.Fatal("first toggle should turn the favorite on")
	}

	off, err := svc.ToggleFavorite(dbc, userID, recipe.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite (second): %v", err)
	}
	if off {
		t.Fatal("second toggle should turn the favorite off")
	}
}

func TestToggleFavoriteUnknownRecipeIsNotFound(t *testing.T) {
	svc := NewPreferenceService(nil, testLogger(t), &fakeRecipeRepo{}, newFakePreferenceRepo())

	_, err := svc.ToggleFavorite(fakeDBC(), uuid.New(), uuid.New())
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRecordCookedIncrements(t *testing.T) {
	recipes := &fakeRecipeRepo{}
	prefs := newFakePreferenceRepo()
	recipe := seedFakeRecipe(recipes, "Curry", "Rice")

	svc := NewPreferenceService(nil, testLogger(t), recipes, prefs)
	userID := uuid.New()
	dbc := fakeDBC()

	first, err := svc.RecordCooked(dbc, userID, recipe.ID)
	if err != nil {
		t.Fatalf("RecordCooked: %v", err)
	}
	if first.TimesCooked != 1 || first.LastCooked == nil {
		t.Fatalf("first cook = %+v, want times_cooked 1 with last_cooked set", first)
	}

	second, err := svc.RecordCooked(dbc, userID, recipe.ID)
	if err != nil {
		t.Fatalf("RecordCooked (second): %v", err)
	}
	if second.TimesCooked != 2 {
		t.Fatalf("times_cooked = %d, want 2", second.TimesCooked)
	}
}

func TestSetNotesCreatesRowLazily(t *testing.T) {
	recipes := &fakeRecipeRepo{}
	prefs := newFakePreferenceRepo()
	recipe := seedFakeRecipe(recipes, "Pho", "Noodles")

	svc := NewPreferenceService(nil, testLogger(t), recipes, prefs)
	userID := uuid.New()
	dbc := fakeDBC()

	if err := svc.SetNotes(dbc, userID, recipe.ID, "extra basil"); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}
	row := prefs.rows[prefKey{userID, recipe.ID}]
	if row == nil || row.Notes != "extra basil" {
		t.Fatalf("row = %+v, want notes persisted on lazily created row", row)
	}
}
