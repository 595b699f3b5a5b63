package adapters

import (
	"fmt"
	"slices"

	"github.com/de-tools/area-atlas/pkg/models/api"
	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/de-tools/area-atlas/pkg/models/store"
)

// MapDomainReportToStore splits a report into table shapes and value cells.
func MapDomainReportToStore(runID string, report *domain.Report) ([]store.ReportTable, []store.ReportCell) {
	tables := make([]store.ReportTable, 0, len(report.Tables))
	var cells []store.ReportCell

	for ti, t := range report.Tables {
		levels := make([]string, 0, len(t.Rows))
		for ri, row := range t.Rows {
			levels = append(levels, row.Level)
			for ci, v := range row.Values {
				cells = append(cells, store.ReportCell{
					RunID:       runID,
					TableIndex:  ti,
					RowIndex:    ri,
					ColumnIndex: ci,
					Value:       v,
				})
			}
		}
		tables = append(tables, store.ReportTable{
			RunID:      runID,
			TableIndex: ti,
			Title:      t.Title,
			Kind:       string(t.Kind),
			Columns:    slices.Clone(t.Columns),
			Levels:     levels,
		})
	}
	return tables, cells
}

// MapStoreReportToDomain rebuilds tables from stored shapes and cells. Cells
// outside a table's shape are rejected.
func MapStoreReportToDomain(tables []store.ReportTable, cells []store.ReportCell) ([]domain.Table, error) {
	result := make([]domain.Table, len(tables))
	index := make(map[int]int, len(tables))

	for i, st := range tables {
		width := max(len(st.Columns)-1, 0)
		rows := make([]domain.Row, len(st.Levels))
		for r, level := range st.Levels {
			rows[r] = domain.Row{Level: level, Values: make([]float64, width)}
		}
		result[i] = domain.Table{
			Title:   st.Title,
			Kind:    domain.TableKind(st.Kind),
			Columns: slices.Clone(st.Columns),
			Rows:    rows,
		}
		index[st.TableIndex] = i
	}

	for _, c := range cells {
		i, ok := index[c.TableIndex]
		if !ok {
			return nil, fmt.Errorf("cell references unknown table %d", c.TableIndex)
		}
		rows := result[i].Rows
		if c.RowIndex < 0 || c.RowIndex >= len(rows) || c.ColumnIndex < 0 || c.ColumnIndex >= len(rows[c.RowIndex].Values) {
			return nil, fmt.Errorf("cell (%d, %d) is outside table %q", c.RowIndex, c.ColumnIndex, result[i].Title)
		}
		rows[c.RowIndex].Values[c.ColumnIndex] = c.Value
	}
	return result, nil
}

func MapDomainTableToApi(t domain.Table) api.Table {
	rows := make([]api.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, api.Row{Level: r.Level, Values: slices.Clone(r.Values)})
	}
	return api.Table{
		Title:   t.Title,
		Kind:    string(t.Kind),
		Columns: slices.Clone(t.Columns),
		Rows:    rows,
	}
}

func MapDomainReportToApi(report *domain.Report) *api.Report {
	if report == nil {
		return nil
	}

	tables := make([]api.Table, 0, len(report.Tables))
	for _, t := range report.Tables {
		tables = append(tables, MapDomainTableToApi(t))
	}
	return &api.Report{
		GeneratedAt: report.GeneratedAt,
		Tables:      tables,
	}
}
