package aggregation

import (
	"github.com/de-tools/area-atlas/pkg/models/domain"
)

// SumGroup sums area per level over records whose name is one of members.
// The result holds exactly one entry per LevelSet member, in LevelSet order; levels
// without a match, and every level of an empty group, are zero.
func SumGroup(records []domain.FlatRecord, members []string) []domain.LevelSum {
	levels := LevelSet(records)
	sums := make([]domain.LevelSum, len(levels))
	for i, level := range levels {
		sums[i] = domain.LevelSum{Level: level}
	}
	if len(members) == 0 {
		return sums
	}

	wanted := make(map[string]bool, len(members))
	for _, m := range members {
		wanted[m] = true
	}
	index := make(map[string]int, len(levels))
	for i, level := range levels {
		index[level] = i
	}

	for _, r := range records {
		if r.Level == nil || r.Name == nil || !wanted[*r.Name] {
			continue
		}
		sums[index[*r.Level]].Area += r.AreaValue()
	}
	return sums
}

// BuildKPI sums every group across all records, one column per group in order.
func BuildKPI(records []domain.FlatRecord, groups domain.Groups) domain.Table {
	levels := LevelSet(records)

	columns := make([]string, 0, len(groups)+1)
	columns = append(columns, domain.LevelColumn)
	rows := make([]domain.Row, len(levels))
	for i, level := range levels {
		rows[i] = domain.Row{Level: level, Values: make([]float64, len(groups))}
	}

	for g, group := range groups {
		columns = append(columns, group.Name)
		for i, sum := range SumGroup(records, group.Members) {
			rows[i].Values[g] = sum.Area
		}
	}
	rows = append(rows, totalRow(rows, len(groups)))

	return domain.Table{
		Title:   domain.KPITitle,
		Kind:    domain.TableKindKPI,
		Columns: columns,
		Rows:    rows,
	}
}
