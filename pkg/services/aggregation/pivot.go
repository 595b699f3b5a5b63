package aggregation

import "github.com/de-tools/area-atlas/pkg/models/domain"

// BuildPivot sums area per (level, name) for one category.
//
// Columns follow first-seen name order within the category. Rows cover the LevelSet
// of all records, in first-seen order, so every table of a dataset lines up; a level
// with no element of this category is a zero row. The Total row comes last.
func BuildPivot(records []domain.FlatRecord, category string) domain.Table {
	levels := LevelSet(records)

	var names []string
	nameIdx := make(map[string]int)
	sums := make(map[string]map[string]float64, len(levels))

	for _, r := range records {
		if r.Category != category || r.Level == nil || r.Name == nil {
			continue
		}
		if _, ok := nameIdx[*r.Name]; !ok {
			nameIdx[*r.Name] = len(names)
			names = append(names, *r.Name)
		}
		byName, ok := sums[*r.Level]
		if !ok {
			byName = make(map[string]float64)
			sums[*r.Level] = byName
		}
		byName[*r.Name] += r.AreaValue()
	}

	rows := make([]domain.Row, 0, len(levels)+1)
	for _, level := range levels {
		row := domain.Row{Level: level, Values: make([]float64, len(names))}
		for i, name := range names {
			row.Values[i] = sums[level][name]
		}
		rows = append(rows, row)
	}
	rows = append(rows, totalRow(rows, len(names)))

	return domain.Table{
		Title:   category,
		Kind:    domain.TableKindPivot,
		Columns: append([]string{domain.LevelColumn}, names...),
		Rows:    rows,
	}
}
