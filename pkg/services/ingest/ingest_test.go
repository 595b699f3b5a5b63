package ingest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/de-tools/area-atlas/pkg/services/extraction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelJSON = `{
  "id": "root",
  "speckle_type": "Base",
  "elements": [
    {
      "id": "collection-areas",
      "speckle_type": "Speckle.Core.Models.Collection",
      "name": "Areas",
      "elements": [
        {
          "id": "area-1",
          "speckle_type": "Objects.Other.Revit.RevitArea",
          "category": "Areas",
          "level": {"id": "level-1", "speckle_type": "Objects.BuiltElements.Level", "category": "Levels", "name": "Level 1"},
          "properties": {
            "Parameters": {
              "Instance Parameters": {
                "Identity Data": {"Name": {"value": "Café"}},
                "Dimensions": {"Area": {"value": 101.5}}
              }
            }
          }
        }
      ]
    },
    {
      "id": "collection-rooms",
      "speckle_type": "Speckle.Core.Models.Collection",
      "@elements": [
        {"id": "room-1", "speckle_type": "Objects.BuiltElements.Room", "category": "Rooms", "level": {"name": "Level 2"}}
      ]
    }
  ]
}`

func TestDecode(t *testing.T) {
	root, err := Decode(strings.NewReader(modelJSON))
	require.NoError(t, err)

	el, ok := root.(*domain.Element)
	require.True(t, ok)
	assert.Equal(t, "root", el.ID)
	assert.Equal(t, domain.KindObject, domain.KindOf(root))

	t.Run("plain objects stay mappings", func(t *testing.T) {
		elements := Flatten(root)
		var room *domain.Element
		for _, e := range elements {
			if e.ID == "room-1" {
				room = e
			}
		}
		require.NotNil(t, room)
		level, _ := room.Attr("level")
		assert.Equal(t, domain.KindMapping, domain.KindOf(level))
		assert.Equal(t, "Level 2", extraction.Resolve(room, "level.name", nil))
	})

	t.Run("numbers are json numbers", func(t *testing.T) {
		elements := Flatten(root)
		var area *domain.Element
		for _, e := range elements {
			if e.ID == "area-1" {
				area = e
			}
		}
		require.NotNil(t, area)
		assert.Equal(t, json.Number("101.5"), extraction.Resolve(area, extraction.PathArea, nil))
	})

	t.Run("numeric id is kept", func(t *testing.T) {
		root, err := Decode(strings.NewReader(`{"speckle_type": "Objects.Room", "id": 42, "category": "Rooms"}`))
		require.NoError(t, err)

		el, ok := root.(*domain.Element)
		require.True(t, ok)
		assert.Equal(t, "42", el.ID)
		assert.Equal(t, json.Number("42"), el.Fields["id"])
		assert.Equal(t, "42", extraction.Resolve(el, "id", nil))
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"id": `))
		assert.Error(t, err)
	})
}

func TestFlatten(t *testing.T) {
	elements, err := LoadElements(strings.NewReader(modelJSON))
	require.NoError(t, err)

	ids := extraction.IDs(elements)
	assert.Equal(t, []string{"root", "collection-areas", "area-1", "level-1", "collection-rooms", "room-1"}, ids)

	t.Run("array input", func(t *testing.T) {
		elements, err := LoadElements(strings.NewReader(`[{"id": "a", "category": "Rooms"}, {"id": "b", "category": "Areas"}]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, extraction.IDs(elements))
	})

	t.Run("shared element visited once", func(t *testing.T) {
		shared := domain.NewElement("shared", nil)
		root := domain.NewElement("root", map[string]any{
			"elements": []any{shared, shared},
			"host":     shared,
		})
		assert.Equal(t, []string{"root", "shared"}, extraction.IDs(Flatten(root)))
	})

	t.Run("scalar root", func(t *testing.T) {
		assert.Empty(t, Flatten("nothing"))
	})
}
