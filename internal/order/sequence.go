package order

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/onzacore/distri-api/internal/models"
)

// UncategorizedLabel is the display category for items with no category.
const UncategorizedLabel = "Sin Categoría"

// Sequencer produces the deterministic category-weighted ordering used by the
// interactive detail view and the price sheet. The assembly sheet does not
// sort; warehouse staff pick in the order the client dictated.
type Sequencer struct {
	deferred map[string]struct{}
}

// NewSequencer builds a sequencer that pushes the given categories to the end
// of every listing (matched case-insensitively). These are categories that
// need separate handling at assembly time, cold cuts being the usual case.
func NewSequencer(deferredCategories []string) *Sequencer {
	deferred := make(map[string]struct{}, len(deferredCategories))
	for _, c := range deferredCategories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			deferred[c] = struct{}{}
		}
	}
	return &Sequencer{deferred: deferred}
}

// Weight returns the first sort tier for a category: 0 for regular
// categories, 1 for uncategorized, 2 for deferred categories.
func (s *Sequencer) Weight(category string) int {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		cat = strings.ToLower(UncategorizedLabel)
	}
	if _, ok := s.deferred[cat]; ok {
		return 2
	}
	if cat == strings.ToLower(UncategorizedLabel) {
		return 1
	}
	return 0
}

// Sort returns a new slice ordered by (category weight, category name,
// product name). Stable, idempotent and side-effect free; the input slice is
// never modified. Name comparisons use Spanish collation.
func (s *Sequencer) Sort(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	copy(out, items)

	// A collator is not safe for concurrent use, so build one per call.
	coll := collate.New(language.Spanish, collate.IgnoreCase)

	sort.SliceStable(out, func(i, j int) bool {
		catA := DisplayCategory(out[i].Category)
		catB := DisplayCategory(out[j].Category)

		wA, wB := s.Weight(catA), s.Weight(catB)
		if wA != wB {
			return wA < wB
		}
		if c := coll.CompareString(catA, catB); c != 0 {
			return c < 0
		}
		return coll.CompareString(out[i].ProductName, out[j].ProductName) < 0
	})
	return out
}

// DisplayCategory normalizes a blank category to the uncategorized label.
func DisplayCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return UncategorizedLabel
	}
	return category
}
