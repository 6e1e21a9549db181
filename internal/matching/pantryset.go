package matching

import (
	"sort"

	"github.com/pantrypal/pantrypal-backend/internal/domain/pantry"
)

// PantrySet is the normalized view of one pantry snapshot. Names are kept
// sorted so fuzzy fallback scans are deterministic across runs.
type PantrySet struct {
	names []string
	set   map[string]struct{}
}

func NewPantrySet(norm *Normalizer, items []pantry.Item) *PantrySet {
	ps := &PantrySet{set: make(map[string]struct{}, len(items))}
	for _, item := range items {
		name := norm.Normalize(item.Name)
		if name == "" {
			continue
		}
		if _, dup := ps.set[name]; dup {
			continue
		}
		ps.set[name] = struct{}{}
		ps.names = append(ps.names, name)
	}
	sort.Strings(ps.names)
	return ps
}

func (ps *PantrySet) Contains(name string) bool {
	_, ok := ps.set[name]
	return ok
}

// Names returns the sorted normalized pantry names. Callers must not mutate.
func (ps *PantrySet) Names() []string { return ps.names }

func (ps *PantrySet) Len() int { return len(ps.names) }
