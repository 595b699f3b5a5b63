package extraction

import (
	"encoding/json"
	"testing"

	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newElement(id, category, level, name string, area any) *domain.Element {
	fields := map[string]any{
		"category": category,
		"properties": map[string]any{
			"Parameters": map[string]any{
				"Instance Parameters": map[string]any{
					"Identity Data": map[string]any{
						"Name": map[string]any{"value": name},
					},
					"Dimensions": map[string]any{
						"Area": map[string]any{"value": area},
					},
				},
			},
		},
	}
	if level != "" {
		fields["level"] = domain.NewElement(id+"-level", map[string]any{"name": level})
	}
	return domain.NewElement(id, fields)
}

func TestExtract(t *testing.T) {
	elements := []*domain.Element{
		newElement("a", "Areas", "L1", "Café", 100.0),
		newElement("b", "Rooms", "", "Corridor", 50.0),
	}

	records := Extract(elements, ReportPaths)

	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{
		PathCategory: "Areas",
		PathLevel:    "L1",
		PathName:     "Café",
		PathArea:     100.0,
	}, records[0])
	assert.Nil(t, records[1][PathLevel])
	assert.Equal(t, "Corridor", records[1][PathName])

	t.Run("no elements", func(t *testing.T) {
		assert.Empty(t, Extract(nil, ReportPaths))
	})
}

func TestToFlatRecords(t *testing.T) {
	t.Run("success - converts numbers", func(t *testing.T) {
		elements := []*domain.Element{
			newElement("a", "Areas", "L1", "Café", json.Number("100.5")),
			newElement("b", "Areas", "L2", "Corridor", 50),
			newElement("c", "Areas", "", "Stair", nil),
		}

		records, err := ToFlatRecords(IDs(elements), Extract(elements, ReportPaths))

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "a", records[0].ElementID)
		assert.Equal(t, "Areas", records[0].Category)
		assert.Equal(t, "L1", *records[0].Level)
		assert.Equal(t, 100.5, *records[0].Area)
		assert.Equal(t, 50.0, *records[1].Area)
		assert.Nil(t, records[2].Level)
		assert.Nil(t, records[2].Area)
		assert.Equal(t, 0.0, records[2].AreaValue())
	})

	t.Run("error - property missing everywhere", func(t *testing.T) {
		elements := []*domain.Element{
			newElement("a", "Areas", "", "Café", 10.0),
			newElement("b", "Areas", "", "Corridor", 5.0),
		}

		_, err := ToFlatRecords(IDs(elements), Extract(elements, ReportPaths))

		var missing *domain.MissingPropertyError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, PathLevel, missing.Path)
	})

	t.Run("error - area is not numeric", func(t *testing.T) {
		elements := []*domain.Element{
			newElement("a", "Areas", "L1", "Café", 10.0),
			newElement("b", "Areas", "L1", "Corridor", "large"),
		}

		_, err := ToFlatRecords(IDs(elements), Extract(elements, ReportPaths))

		var typeErr *domain.AreaTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "b", typeErr.ElementID)
		assert.Equal(t, PathArea, typeErr.Path)
		assert.Equal(t, "large", typeErr.Value)
	})

	t.Run("error - misaligned ids", func(t *testing.T) {
		_, err := ToFlatRecords([]string{"a"}, nil)
		assert.Error(t, err)
	})
}
