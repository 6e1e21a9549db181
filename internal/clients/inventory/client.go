package inventory

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/domain/pantry"
	"github.com/pantrypal/pantrypal-backend/internal/platform/errs"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

// Client fetches pantry snapshots from the inventory service. The snapshot is
// read-only here; pantry mutations live with inventory.
type Client interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]pantry.Item, error)
}

type client struct {
	http *resty.Client
	log  *logger.Logger
}

func NewClient(baseURL, serviceToken string, logg *logger.Logger) Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)
	if serviceToken != "" {
		rc.SetAuthToken(serviceToken)
	}
	return &client{http: rc, log: logg.With("client", "InventoryClient")}
}

func (c *client) ListItems(ctx context.Context, userID uuid.UUID) ([]pantry.Item, error) {
	var items []pantry.Item
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", userID.String()).
		SetResult(&items).
		Get("/api/items")
	if err != nil {
		return nil, fmt.Errorf("inventory request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Warn("Inventory returned non-200", "status", resp.StatusCode())
		return nil, fmt.Errorf("%w: inventory status %d", errs.ErrInvalidPantrySnapshot, resp.StatusCode())
	}
	return items, nil
}
