package aggregation

import (
	"testing"

	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func record(category, level, name string, area float64) domain.FlatRecord {
	return domain.FlatRecord{
		Category: category,
		Level:    strPtr(level),
		Name:     strPtr(name),
		Area:     floatPtr(area),
	}
}

// cafeDataset is the worked example: two levels, two names, one category.
func cafeDataset() []domain.FlatRecord {
	return []domain.FlatRecord{
		record("Areas", "L1", "Café", 100),
		record("Areas", "L1", "Corridor", 50),
		record("Areas", "L2", "Café", 80),
	}
}

func mixedDataset() []domain.FlatRecord {
	return []domain.FlatRecord{
		record("Rooms", "Level 2", "Office", 30.25),
		record("Areas", "Level 1", "Café", 100.1),
		record("Rooms", "Level 1", "Office", 12.2),
		record("Areas", "Level 3", "Common", 40.7),
		record("Areas", "Level 1", "Common", 9.9),
		record("Rooms", "Level 2", "Kitchen", 7.3),
		{Category: "Areas", Level: nil, Name: strPtr("Orphan"), Area: floatPtr(5)},
		{Category: "Areas", Level: strPtr("Level 3"), Name: nil, Area: floatPtr(6)},
		{Category: "Rooms", Level: strPtr("Level 1"), Name: strPtr("Kitchen"), Area: nil},
	}
}

func TestLevelSet(t *testing.T) {
	assert.Equal(t, []string{"L1", "L2"}, LevelSet(cafeDataset()))
	assert.Equal(t, []string{"Level 2", "Level 1", "Level 3"}, LevelSet(mixedDataset()))
	assert.Empty(t, LevelSet(nil))
}

func TestBuildPivot(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		table := BuildPivot(cafeDataset(), "Areas")

		assert.Equal(t, "Areas", table.Title)
		assert.Equal(t, domain.TableKindPivot, table.Kind)
		assert.Equal(t, []string{"level", "Café", "Corridor"}, table.Columns)
		assert.Equal(t, []domain.Row{
			{Level: "L1", Values: []float64{100, 50}},
			{Level: "L2", Values: []float64{80, 0}},
			{Level: "Total", Values: []float64{180, 50}},
		}, table.Rows)
	})

	t.Run("first-seen ordering and full level set", func(t *testing.T) {
		table := BuildPivot(mixedDataset(), "Rooms")

		assert.Equal(t, []string{"level", "Office", "Kitchen"}, table.Columns)
		levels := make([]string, 0, len(table.Rows))
		for _, r := range table.Rows {
			levels = append(levels, r.Level)
		}
		assert.Equal(t, []string{"Level 2", "Level 1", "Level 3", "Total"}, levels)

		office, _ := table.Cell("Level 3", "Office")
		assert.Equal(t, 0.0, office)
		kitchen, _ := table.Cell("Level 1", "Kitchen")
		assert.Equal(t, 0.0, kitchen, "missing area counts as zero")
	})

	t.Run("category without records", func(t *testing.T) {
		table := BuildPivot(cafeDataset(), "Rooms")

		assert.Equal(t, []string{"level"}, table.Columns)
		require.Len(t, table.Rows, 3)
		for _, r := range table.Rows {
			assert.Empty(t, r.Values)
		}
	})
}

func TestBuildPivot_TotalEqualsColumnSum(t *testing.T) {
	datasets := map[string][]domain.FlatRecord{
		"cafe":  cafeDataset(),
		"mixed": mixedDataset(),
		"empty": nil,
	}

	for name, records := range datasets {
		for _, category := range []string{"Rooms", "Areas"} {
			t.Run(name+"/"+category, func(t *testing.T) {
				table := BuildPivot(records, category)
				assertTotals(t, table)
				assert.Len(t, table.DataRows(), len(LevelSet(records)))
			})
		}
	}
}

func TestSumGroup(t *testing.T) {
	records := cafeDataset()

	tests := []struct {
		name     string
		members  []string
		expected []domain.LevelSum
	}{
		{
			name:     "NIA example",
			members:  []string{"Café"},
			expected: []domain.LevelSum{{Level: "L1", Area: 100}, {Level: "L2", Area: 80}},
		},
		{
			name:     "empty group",
			members:  nil,
			expected: []domain.LevelSum{{Level: "L1", Area: 0}, {Level: "L2", Area: 0}},
		},
		{
			name:     "missing level is zero filled",
			members:  []string{"Corridor"},
			expected: []domain.LevelSum{{Level: "L1", Area: 50}, {Level: "L2", Area: 0}},
		},
		{
			name:     "unknown names",
			members:  []string{"Lobby", "Pocket Park"},
			expected: []domain.LevelSum{{Level: "L1", Area: 0}, {Level: "L2", Area: 0}},
		},
		{
			name:     "several names",
			members:  []string{"Café", "Corridor"},
			expected: []domain.LevelSum{{Level: "L1", Area: 150}, {Level: "L2", Area: 80}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SumGroup(records, tt.members))
		})
	}
}

func TestSumGroup_OneEntryPerLevel(t *testing.T) {
	records := mixedDataset()
	levels := LevelSet(records)

	for _, members := range [][]string{nil, {}, {"Office"}, {"Café", "Common"}, {"Orphan"}, {"nope"}} {
		sums := SumGroup(records, members)
		require.Len(t, sums, len(levels))
		for i, s := range sums {
			assert.Equal(t, levels[i], s.Level)
		}
	}
}

func TestSumGroup_Idempotent(t *testing.T) {
	records := mixedDataset()
	members := []string{"Office", "Kitchen"}

	first := SumGroup(records, members)
	second := SumGroup(records, members)

	assert.Equal(t, first, second)
	assert.Equal(t, mixedDataset(), records, "input records are not modified")
}

func TestBuildKPI(t *testing.T) {
	groups := domain.NewGroups(map[string][]string{
		domain.GroupNIA: {"Café"},
		domain.GroupNLA: {"Café", "Corridor"},
		domain.GroupGBA: {"Corridor", "Unknown"},
	})

	table := BuildKPI(cafeDataset(), groups)

	assert.Equal(t, "KPIs", table.Title)
	assert.Equal(t, domain.TableKindKPI, table.Kind)
	assert.Equal(t, []string{"level", "NUA", "NIA", "NLA", "GIA", "GEA", "GLA", "GBA"}, table.Columns)
	assert.Equal(t, []domain.Row{
		{Level: "L1", Values: []float64{0, 100, 150, 0, 0, 0, 50}},
		{Level: "L2", Values: []float64{0, 80, 80, 0, 0, 0, 0}},
		{Level: "Total", Values: []float64{0, 180, 230, 0, 0, 0, 50}},
	}, table.Rows)
	assertTotals(t, table)
}

func TestBuildKPI_CrossCategory(t *testing.T) {
	groups := domain.NewGroups(map[string][]string{
		domain.GroupGIA: {"Office", "Café"},
	})

	table := BuildKPI(mixedDataset(), groups)

	gia, ok := table.Cell("Level 1", domain.GroupGIA)
	require.True(t, ok)
	assert.InDelta(t, 112.3, gia, 1e-9)
	assert.Len(t, table.DataRows(), 3)
	assertTotals(t, table)
}

func assertTotals(t *testing.T, table domain.Table) {
	t.Helper()

	total, ok := table.Total()
	require.True(t, ok, "table %q has a Total row", table.Title)

	expected := make([]float64, len(table.ValueColumns()))
	for _, r := range table.DataRows() {
		require.Len(t, r.Values, len(expected))
		for i, v := range r.Values {
			expected[i] += v
		}
	}
	assert.Equal(t, expected, total.Values)
}
