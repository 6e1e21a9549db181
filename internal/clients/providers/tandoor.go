package providers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

const tandoorFetchLimit = 500

type tandoor struct {
	http      *resty.Client
	serverURL string
	log       *logger.Logger
}

func newTandoor(cfg Config, logg *logger.Logger) Provider {
	base := strings.TrimRight(cfg.ServerURL, "/")
	rc := resty.New().
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIToken).
		SetTimeout(30 * time.Second)
	return &tandoor{http: rc, serverURL: base, log: logg.With("client", "TandoorProvider")}
}

func (t *tandoor) Name() string { return "tandoor" }

type tandoorRecipe struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	WorkingTime int    `json:"working_time"`
	WaitingTime int    `json:"waiting_time"`
	Servings    int    `json:"servings"`
	Keywords    []struct {
		Name string `json:"name"`
	} `json:"keywords"`
	Steps []struct {
		Name        string `json:"name"`
		Instruction string `json:"instruction"`
		Ingredients []struct {
			Amount float64 `json:"amount"`
			Food   *struct {
				Name string `json:"name"`
			} `json:"food"`
			Unit *struct {
				Name string `json:"name"`
			} `json:"unit"`
		} `json:"ingredients"`
	} `json:"steps"`
}

type tandoorPage struct {
	Count   int             `json:"count"`
	Next    string          `json:"next"`
	Results []tandoorRecipe `json:"results"`
}

func (t *tandoor) Ping(ctx context.Context) error {
	resp, err := t.http.R().
		SetContext(ctx).
		SetQueryParam("limit", "1").
		Get("/api/recipe/")
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrProviderUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: tandoor status %d", errs.ErrProviderUnavailable, resp.StatusCode())
	}
	return nil
}

func (t *tandoor) FetchAll(ctx context.Context) ([]Record, error) {
	var body tandoorPage
	resp, err := t.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(tandoorFetchLimit)).
		SetResult(&body).
		Get("/api/recipe/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrProviderUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: tandoor status %d", errs.ErrProviderUnavailable, resp.StatusCode())
	}

	records := make([]Record, 0, len(body.Results))
	for _, r := range body.Results {
		records = append(records, t.normalize(r))
	}
	return records, nil
}

func (t *tandoor) normalize(r tandoorRecipe) Record {
	// Ingredients live inside steps and may repeat across them.
	seen := map[string]struct{}{}
	var ingredients []types.Ingredient
	var instructions []string
	for _, step := range r.Steps {
		for _, ing := range step.Ingredients {
			if ing.Food == nil || ing.Food.Name == "" {
				continue
			}
			if _, dup := seen[ing.Food.Name]; dup {
				continue
			}
			seen[ing.Food.Name] = struct{}{}
			unit := ""
			if ing.Unit != nil {
				unit = ing.Unit.Name
			}
			ingredients = append(ingredients, types.Ingredient{
				Name:     ing.Food.Name,
				Quantity: ing.Amount,
				Unit:     unit,
			})
		}
		if step.Instruction != "" {
			instructions = append(instructions, step.Instruction)
		}
	}

	var tags []string
	for _, kw := range r.Keywords {
		if kw.Name != "" {
			tags = append(tags, kw.Name)
		}
	}

	imageURL := ""
	if r.Image != "" {
		imageURL = fmt.Sprintf("%s/media/%s", t.serverURL, strings.TrimLeft(r.Image, "/"))
	}

	servings := r.Servings
	if servings == 0 {
		servings = 4
	}

	return Record{
		ExternalID:   strconv.Itoa(r.ID),
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     r.WorkingTime,
		CookTime:     r.WaitingTime,
		TotalTime:    r.WorkingTime + r.WaitingTime,
		Servings:     servings,
		Tags:         tags,
		Category:     []string{},
		ImageURL:     imageURL,
		SourceURL:    r.URL,
	}
}
