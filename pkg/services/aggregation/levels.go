package aggregation

import "github.com/de-tools/area-atlas/pkg/models/domain"

// LevelSet returns the distinct levels of records in first-seen order.
// Records without a level are not part of the set.
func LevelSet(records []domain.FlatRecord) []string {
	seen := make(map[string]bool)
	var levels []string
	for _, r := range records {
		if r.Level == nil || seen[*r.Level] {
			continue
		}
		seen[*r.Level] = true
		levels = append(levels, *r.Level)
	}
	return levels
}

// totalRow sums rows column-wise in row order.
func totalRow(rows []domain.Row, width int) domain.Row {
	total := domain.Row{Level: domain.TotalLabel, Values: make([]float64, width)}
	for _, r := range rows {
		for i, v := range r.Values {
			total.Values[i] += v
		}
	}
	return total
}
