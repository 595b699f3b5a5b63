package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/de-tools/area-atlas/pkg/models/domain"
)

// Decode reads a JSON model export. Objects carrying "speckle_type" or "id" become
// *domain.Element; any other object stays a map[string]any. Numbers are kept as
// json.Number.
func Decode(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return convert(raw), nil
}

func convert(v any) any {
	switch t := v.(type) {
	case map[string]any:
		fields := make(map[string]any, len(t))
		for k, child := range t {
			fields[k] = convert(child)
		}
		if !isObject(t) {
			return fields
		}
		switch id := t["id"].(type) {
		case string:
			delete(fields, "id")
			return domain.NewElement(id, fields)
		case json.Number:
			return domain.NewElement(id.String(), fields)
		default:
			return domain.NewElement("", fields)
		}
	case []any:
		items := make([]any, len(t))
		for i, child := range t {
			items[i] = convert(child)
		}
		return items
	default:
		return v
	}
}

func isObject(m map[string]any) bool {
	if _, ok := m["speckle_type"]; ok {
		return true
	}
	_, ok := m["id"].(string)
	return ok
}

// LoadElements decodes a model export and flattens it into its elements.
func LoadElements(r io.Reader) ([]*domain.Element, error) {
	root, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Flatten(root), nil
}
