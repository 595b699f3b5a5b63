package extraction

import (
	"encoding/json"
	"fmt"

	"github.com/de-tools/area-atlas/pkg/models/domain"
)

const (
	PathCategory = "category"
	PathLevel    = "level.name"
	PathName     = "properties.Parameters.Instance Parameters.Identity Data.Name.value"
	PathArea     = "properties.Parameters.Instance Parameters.Dimensions.Area.value"
)

// ReportPaths is the fixed property set read from every retained element.
var ReportPaths = []string{PathCategory, PathLevel, PathName, PathArea}

// Extract resolves every path against every element, preserving input order.
// Unresolved paths map to nil.
func Extract(elements []*domain.Element, paths []string) []map[string]any {
	records := make([]map[string]any, 0, len(elements))
	for _, el := range elements {
		record := make(map[string]any, len(paths))
		for _, p := range paths {
			record[p] = Resolve(el, p, nil)
		}
		records = append(records, record)
	}
	return records
}

// ToFlatRecords converts the extracted ReportPaths values into typed records.
// ids must align with raw.
func ToFlatRecords(ids []string, raw []map[string]any) ([]domain.FlatRecord, error) {
	if len(ids) != len(raw) {
		return nil, fmt.Errorf("got %d element ids for %d records", len(ids), len(raw))
	}

	for _, p := range []string{PathLevel, PathName, PathArea} {
		if !resolvedAnywhere(raw, p) {
			return nil, &domain.MissingPropertyError{Path: p}
		}
	}

	records := make([]domain.FlatRecord, 0, len(raw))
	for i, r := range raw {
		rec := domain.FlatRecord{
			ElementID: ids[i],
			Level:     stringValue(r[PathLevel]),
			Name:      stringValue(r[PathName]),
		}
		rec.Category, _ = r[PathCategory].(string)

		if v := r[PathArea]; v != nil {
			area, ok := toFloat(v)
			if !ok {
				return nil, &domain.AreaTypeError{Path: PathArea, ElementID: ids[i], Value: v}
			}
			rec.Area = &area
		}
		records = append(records, rec)
	}
	return records, nil
}

func resolvedAnywhere(raw []map[string]any, path string) bool {
	for _, r := range raw {
		if r[path] != nil {
			return true
		}
	}
	return false
}

func stringValue(v any) *string {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return &s
	case fmt.Stringer:
		str := s.String()
		return &str
	default:
		str := fmt.Sprint(s)
		return &str
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
