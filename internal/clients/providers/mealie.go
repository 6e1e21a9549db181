package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

const (
	mealiePageSize      = 50
	mealieFetchLimit    = 500
	mealieDetailWorkers = 5
)

type mealie struct {
	http      *resty.Client
	serverURL string
	log       *logger.Logger
}

func newMealie(cfg Config, logg *logger.Logger) Provider {
	base := strings.TrimRight(cfg.ServerURL, "/")
	rc := resty.New().
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIToken).
		SetTimeout(30 * time.Second)
	return &mealie{http: rc, serverURL: base, log: logg.With("client", "MealieProvider")}
}

func (m *mealie) Name() string { return "mealie" }

type mealiePage struct {
	Total int `json:"total"`
	Items []struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	} `json:"items"`
}

type mealieNamed struct {
	Name string `json:"name"`
}

type mealieIngredient struct {
	Title    string       `json:"title"`
	IsFood   bool         `json:"isFood"`
	Display  string       `json:"display"`
	Note     string       `json:"note"`
	Quantity float64      `json:"quantity"`
	Unit     *mealieNamed `json:"unit"`
	Food     *mealieNamed `json:"food"`
}

type mealieRecipe struct {
	ID               string             `json:"id"`
	Slug             string             `json:"slug"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	PrepTime         string             `json:"prepTime"`
	CookTime         string             `json:"cookTime"`
	TotalTime        string             `json:"totalTime"`
	RecipeYield      string             `json:"recipeYield"`
	OrgURL           string             `json:"orgURL"`
	RecipeIngredient []mealieIngredient `json:"recipeIngredient"`

	RecipeInstructions []struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"recipeInstructions"`
	Tags           []mealieNamed `json:"tags"`
	RecipeCategory []mealieNamed `json:"recipeCategory"`
}

func (m *mealie) Ping(ctx context.Context) error {
	resp, err := m.http.R().
		SetContext(ctx).
		SetQueryParam("perPage", "1").
		Get("/api/recipes")
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrProviderUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: mealie status %d", errs.ErrProviderUnavailable, resp.StatusCode())
	}
	return nil
}

func (m *mealie) FetchAll(ctx context.Context) ([]Record, error) {
	var slugs []string
	for page := 1; len(slugs) < mealieFetchLimit; page++ {
		var body mealiePage
		resp, err := m.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"page":           fmt.Sprintf("%d", page),
				"perPage":        fmt.Sprintf("%d", mealiePageSize),
				"orderBy":        "created_at",
				"orderDirection": "desc",
			}).
			SetResult(&body).
			Get("/api/recipes")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrProviderUnavailable, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("%w: mealie status %d", errs.ErrProviderUnavailable, resp.StatusCode())
		}
		if len(body.Items) == 0 {
			break
		}
		for _, it := range body.Items {
			slug := it.Slug
			if slug == "" {
				slug = it.ID
			}
			if slug != "" {
				slugs = append(slugs, slug)
			}
		}
		if len(slugs) >= body.Total {
			break
		}
	}
	if len(slugs) > mealieFetchLimit {
		slugs = slugs[:mealieFetchLimit]
	}

	// Detail fetches are independent; bound the fan-out so a big library
	// does not hammer the server.
	var (
		mu      sync.Mutex
		records = make([]Record, 0, len(slugs))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mealieDetailWorkers)
	for _, slug := range slugs {
		g.Go(func() error {
			var detail mealieRecipe
			resp, err := m.http.R().
				SetContext(gctx).
				SetResult(&detail).
				Get("/api/recipes/" + slug)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", slug, err)
			}
			if resp.StatusCode() != http.StatusOK {
				// A single unreadable recipe should not sink the run.
				m.log.Warn("Skipping recipe detail", "slug", slug, "status", resp.StatusCode())
				return nil
			}
			rec := m.normalize(detail)
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (m *mealie) normalize(r mealieRecipe) Record {
	externalID := r.Slug
	if externalID == "" {
		externalID = r.ID
	}

	var ingredients []types.Ingredient
	for _, ing := range r.RecipeIngredient {
		// Section headers carry a title but no food or display text.
		if ing.Title != "" && !ing.IsFood && ing.Display == "" {
			continue
		}
		name := ""
		if ing.Food != nil {
			name = ing.Food.Name
		}
		if name == "" {
			name = ing.Display
		}
		if name == "" {
			name = ing.Note
		}
		if name == "" {
			continue
		}
		unit := ""
		if ing.Unit != nil {
			unit = ing.Unit.Name
		}
		ingredients = append(ingredients, types.Ingredient{
			Name:     name,
			Quantity: ing.Quantity,
			Unit:     unit,
		})
	}

	var instructions []string
	for _, step := range r.RecipeInstructions {
		if step.Text != "" {
			instructions = append(instructions, step.Text)
		}
	}

	var tags []string
	for _, t := range r.Tags {
		if t.Name != "" {
			tags = append(tags, t.Name)
		}
	}
	var category []string
	for _, c := range r.RecipeCategory {
		if c.Name != "" {
			category = append(category, c.Name)
		}
	}

	imageURL := ""
	if r.ID != "" {
		imageURL = fmt.Sprintf("%s/api/media/recipes/%s/images/original.webp", m.serverURL, r.ID)
	}

	return Record{
		ExternalID:   externalID,
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     parseMinutes(r.PrepTime),
		CookTime:     parseMinutes(r.CookTime),
		TotalTime:    parseMinutes(r.TotalTime),
		Servings:     parseServings(r.RecipeYield),
		Tags:         tags,
		Category:     category,
		ImageURL:     imageURL,
		SourceURL:    r.OrgURL,
	}
}
