package ingest

import (
	"sort"

	"github.com/de-tools/area-atlas/pkg/models/domain"
)

// Flatten walks the object graph depth-first and returns every element once,
// parents before children. Child collections under "elements" and "@elements" are
// visited first, then any other attribute in key order.
func Flatten(root any) []*domain.Element {
	var out []*domain.Element
	seen := make(map[*domain.Element]bool)
	walk(root, seen, &out)
	return out
}

func walk(v any, seen map[*domain.Element]bool, out *[]*domain.Element) {
	switch t := v.(type) {
	case *domain.Element:
		if t == nil || seen[t] {
			return
		}
		seen[t] = true
		*out = append(*out, t)
		for _, key := range childKeys(t.Fields) {
			walk(t.Fields[key], seen, out)
		}
	case map[string]any:
		for _, key := range childKeys(t) {
			walk(t[key], seen, out)
		}
	case []any:
		for _, child := range t {
			walk(child, seen, out)
		}
	}
}

func childKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "elements" || k == "@elements" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var ordered []string
	for _, k := range []string{"elements", "@elements"} {
		if _, ok := fields[k]; ok {
			ordered = append(ordered, k)
		}
	}
	return append(ordered, keys...)
}
