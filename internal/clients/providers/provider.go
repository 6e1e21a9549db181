package providers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

// Record is the provider-neutral shape of one fetched recipe. Importing maps
// it onto the catalog keyed by (provider, external_id).
type Record struct {
	ExternalID   string
	Name         string
	Description  string
	Ingredients  []types.Ingredient
	Instructions []string
	PrepTime     int
	CookTime     int
	TotalTime    int
	Servings     int
	Tags         []string
	Category     []string
	ImageURL     string
	SourceURL    string
}

// Provider is a connection to one external recipe manager.
type Provider interface {
	Name() string
	// Ping verifies the server is reachable with the given credentials.
	Ping(ctx context.Context) error
	// FetchAll pulls every recipe visible to the token.
	FetchAll(ctx context.Context) ([]Record, error)
}

// Config carries per-request connection settings. Tokens are supplied by the
// caller on every run and never stored.
type Config struct {
	ServerURL string
	APIToken  string
}

func New(name string, cfg Config, logg *logger.Logger) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mealie":
		return newMealie(cfg, logg), nil
	case "tandoor":
		return newTandoor(cfg, logg), nil
	default:
		return nil, fmt.Errorf("unknown recipe provider %q", name)
	}
}

// parseMinutes extracts a minute count from provider time fields, which show
// up as bare numbers ("30"), labeled strings ("30 minutes") or ISO 8601
// durations ("PT1H30M"). Unparseable input yields zero.
func parseMinutes(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "PT") || strings.HasPrefix(s, "pt") {
		return parseISODuration(s[2:])
	}
	digits := s
	if i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		digits = s[:i]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// parseServings pulls the first number out of a yield string ("4", "serves
// 6", "Makes 12 muffins"). Defaults to 4.
func parseServings(raw string) int {
	num := ""
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			num += string(r)
			continue
		}
		if num != "" {
			break
		}
	}
	n, err := strconv.Atoi(num)
	if err != nil || n == 0 {
		return 4
	}
	return n
}

func parseISODuration(s string) int {
	total := 0
	num := ""
	for _, r := range strings.ToUpper(s) {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H':
			if n, err := strconv.Atoi(num); err == nil {
				total += n * 60
			}
			num = ""
		case r == 'M':
			if n, err := strconv.Atoi(num); err == nil {
				total += n
			}
			num = ""
		default:
			num = ""
		}
	}
	return total
}
