package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/clients/providers"
	"github.com/pantrypal/pantrypal-backend/internal/clients/redisx"
	"github.com/pantrypal/pantrypal-backend/internal/data/repos/catalog"
	"github.com/pantrypal/pantrypal-backend/internal/data/repos/testutil"
	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type fakeProvider struct {
	name    string
	records []providers.Record
	pingErr error
}

func (f *fakeProvider) Name() string               { return f.name }
func (f *fakeProvider) Ping(context.Context) error { return f.pingErr }
func (f *fakeProvider) FetchAll(context.Context) ([]providers.Record, error) {
	return f.records, nil
}

type fakeImageStore struct {
	downloads int
}

func (f *fakeImageStore) Download(_ context.Context, recipeID uuid.UUID, _, _ string) (string, string, error) {
	f.downloads++
	return "recipes/" + recipeID.String() + ".webp", "image/webp", nil
}

func (f *fakeImageStore) Path(key string) string { return "/tmp/" + key }
func (f *fakeImageStore) Delete(string) error    { return nil }

func newImportFixture(t *testing.T, fake *fakeProvider, store *fakeImageStore) (*importService, catalog.RecipeRepo, catalog.PreferenceRepo, dbctx.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	logg := testutil.Logger(t)

	recipes := catalog.NewRecipeRepo(tx, logg)
	prefs := catalog.NewPreferenceRepo(tx, logg)
	images := catalog.NewImageRepo(tx, logg)
	integrations := catalog.NewIntegrationRepo(tx, logg)

	svc := NewImportService(tx, logg, recipes, images, integrations, store, redisx.NoopLock{}).(*importService)
	svc.newProvider = func(string, providers.Config, *logger.Logger) (providers.Provider, error) {
		return fake, nil
	}
	return svc, recipes, prefs, dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestImportCreateThenSkipThenUpdate(t *testing.T) {
	fake := &fakeProvider{
		name: "mealie",
		records: []providers.Record{
			{
				ExternalID:  "pancakes",
				Name:        "Pancakes",
				Ingredients: []types.Ingredient{{Name: "Flour", Quantity: 200, Unit: "g"}},
				ImageURL:    "https://mealie.local/img/pancakes",
				Servings:    4,
			},
			{
				ExternalID:  "omelette",
				Name:        "Omelette",
				Ingredients: []types.Ingredient{{Name: "Eggs", Quantity: 3}},
				Servings:    2,
			},
		},
	}
	store := &fakeImageStore{}
	svc, recipes, _, dbc := newImportFixture(t, fake, store)
	userID := uuid.New()
	opts := ImportOptions{Provider: "mealie", ServerURL: "https://mealie.local", ImportImages: true}

	stats, err := svc.Run(dbc.Ctx, userID, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Imported != 2 || stats.Updated != 0 || stats.Failed != 0 {
		t.Fatalf("first run stats = %+v, want 2 imported", stats)
	}
	if stats.ImagesDownloaded != 1 || store.downloads != 1 {
		t.Fatalf("images downloaded = %d (store %d), want 1", stats.ImagesDownloaded, store.downloads)
	}

	row, err := recipes.GetByExternalKey(dbc, "mealie", "pancakes")
	if err != nil || row == nil {
		t.Fatalf("GetByExternalKey: row=%v err=%v", row, err)
	}
	if row.ImportedBy == nil || *row.ImportedBy != userID {
		t.Fatalf("imported_by = %v, want %s", row.ImportedBy, userID)
	}

	// Same content again: no second row, no second image, counted as skipped.
	stats, err = svc.Run(dbc.Ctx, userID, opts)
	if err != nil {
		t.Fatalf("Run (second): %v", err)
	}
	if stats.Imported != 0 || stats.Skipped != 2 {
		t.Fatalf("second run stats = %+v, want 2 skipped", stats)
	}
	if store.downloads != 1 {
		t.Fatalf("store downloads = %d, want still 1", store.downloads)
	}

	// Changed name: counted as updated, content overwritten.
	fake.records[0].Name = "Buttermilk Pancakes"
	stats, err = svc.Run(dbc.Ctx, userID, opts)
	if err != nil {
		t.Fatalf("Run (third): %v", err)
	}
	if stats.Updated != 1 || stats.Skipped != 1 {
		t.Fatalf("third run stats = %+v, want 1 updated / 1 skipped", stats)
	}
	row, err = recipes.GetByExternalKey(dbc, "mealie", "pancakes")
	if err != nil || row == nil {
		t.Fatalf("GetByExternalKey after update: row=%v err=%v", row, err)
	}
	if row.Name != "Buttermilk Pancakes" {
		t.Fatalf("name = %q, want updated name", row.Name)
	}
}

func TestImportSkipsRecordsWithoutKeyOrName(t *testing.T) {
	fake := &fakeProvider{
		name: "tandoor",
		records: []providers.Record{
			{ExternalID: "", Name: "Nameless key"},
			{ExternalID: "42", Name: ""},
			{ExternalID: "7", Name: "Valid", Ingredients: []types.Ingredient{{Name: "Rice"}}},
		},
	}
	svc, _, _, dbc := newImportFixture(t, fake, &fakeImageStore{})

	stats, err := svc.Run(dbc.Ctx, uuid.New(), ImportOptions{Provider: "tandoor"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Imported != 1 || stats.Skipped != 2 {
		t.Fatalf("stats = %+v, want 1 imported / 2 skipped", stats)
	}
}

func TestImportHonorsLimit(t *testing.T) {
	fake := &fakeProvider{name: "mealie"}
	for i := 0; i < 5; i++ {
		fake.records = append(fake.records, providers.Record{
			ExternalID:  uuid.NewString(),
			Name:        "Recipe",
			Ingredients: []types.Ingredient{{Name: "Salt"}},
		})
	}
	svc, _, _, dbc := newImportFixture(t, fake, &fakeImageStore{})

	stats, err := svc.Run(dbc.Ctx, uuid.New(), ImportOptions{Provider: "mealie", Limit: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.TotalFetched != 2 || stats.Imported != 2 {
		t.Fatalf("stats = %+v, want limit applied to 2", stats)
	}
}
