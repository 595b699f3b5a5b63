package extraction

import (
	"slices"

	"github.com/de-tools/area-atlas/pkg/models/domain"
)

// Filter keeps elements whose category is one of allowed.
// Elements without a category are dropped.
func Filter(elements []*domain.Element, allowed []string) []*domain.Element {
	kept := make([]*domain.Element, 0, len(elements))
	for _, el := range elements {
		category, ok := el.Category()
		if !ok {
			continue
		}
		if slices.Contains(allowed, category) {
			kept = append(kept, el)
		}
	}
	return kept
}

// IDs returns the element identifiers in order.
func IDs(elements []*domain.Element) []string {
	ids := make([]string, 0, len(elements))
	for _, el := range elements {
		ids = append(ids, el.ID)
	}
	return ids
}
