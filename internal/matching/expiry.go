package matching

import (
	"strings"
	"time"

	"github.com/pantrypal/pantrypal-backend/internal/domain/pantry"
)

// ExpiryClassifier picks out the pantry items whose expiry date falls within
// a day threshold. Items with a missing or unparsable date are never treated
// as expiring.
type ExpiryClassifier struct {
	norm *Normalizer
	now  func() time.Time
}

func NewExpiryClassifier(norm *Normalizer) *ExpiryClassifier {
	return &ExpiryClassifier{norm: norm, now: func() time.Time { return time.Now().UTC() }}
}

// WithNow overrides the clock; used by tests.
func (c *ExpiryClassifier) WithNow(now func() time.Time) *ExpiryClassifier {
	c.now = now
	return c
}

// ExpiringNames returns the set of normalized names expiring within
// daysThreshold of now (inclusive).
func (c *ExpiryClassifier) ExpiringNames(items []pantry.Item, daysThreshold int) map[string]struct{} {
	expiring := make(map[string]struct{})
	cutoff := c.now().AddDate(0, 0, daysThreshold)

	for _, item := range items {
		if item.ExpiryDate == nil || item.Name == "" {
			continue
		}
		expiry, ok := parseExpiryDate(*item.ExpiryDate)
		if !ok {
			continue
		}
		if !expiry.After(cutoff) {
			if name := c.norm.Normalize(item.Name); name != "" {
				expiring[name] = struct{}{}
			}
		}
	}
	return expiring
}

// parseExpiryDate accepts ISO dates with an optional time component and
// tolerates a trailing UTC marker.
func parseExpiryDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "Z"))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
