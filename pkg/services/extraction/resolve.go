package extraction

import (
	"strings"

	"github.com/de-tools/area-atlas/pkg/models/domain"
)

// Resolve walks a dot-separated path through mappings and objects and returns def
// on the first missing link. It never panics.
func Resolve(node any, path string, def any) (value any) {
	defer func() {
		if recover() != nil {
			value = def
		}
	}()

	current := node
	for _, segment := range strings.Split(path, ".") {
		next, ok := step(current, segment)
		if !ok || next == nil {
			return def
		}
		current = next
	}
	return current
}

func step(node any, segment string) (any, bool) {
	switch domain.KindOf(node) {
	case domain.KindMapping:
		v, ok := node.(map[string]any)[segment]
		return v, ok
	case domain.KindObject:
		return node.(domain.Object).Attr(segment)
	default:
		return nil, false
	}
}
