package domain

import "time"

const (
	LevelColumn = "level"
	TotalLabel  = "Total"
	KPITitle    = "KPIs"
)

type TableKind string

const (
	TableKindPivot TableKind = "pivot"
	TableKindKPI   TableKind = "kpi"
)

// Row is one level of a table; Values align with Table.Columns[1:].
type Row struct {
	Level  string
	Values []float64
}

// Table is a level-indexed area table closed by a Total row.
type Table struct {
	Title   string
	Kind    TableKind
	Columns []string
	Rows    []Row
}

// ValueColumns returns the column names without the leading level column.
func (t Table) ValueColumns() []string {
	if len(t.Columns) == 0 {
		return nil
	}
	return t.Columns[1:]
}

// DataRows returns every row except the trailing Total row.
func (t Table) DataRows() []Row {
	if len(t.Rows) == 0 {
		return nil
	}
	last := t.Rows[len(t.Rows)-1]
	if last.Level != TotalLabel {
		return t.Rows
	}
	return t.Rows[:len(t.Rows)-1]
}

// Total returns the Total row.
func (t Table) Total() (Row, bool) {
	if len(t.Rows) == 0 {
		return Row{}, false
	}
	last := t.Rows[len(t.Rows)-1]
	return last, last.Level == TotalLabel
}

// Cell looks up the value at (level, column).
func (t Table) Cell(level, column string) (float64, bool) {
	col := -1
	for i, c := range t.ValueColumns() {
		if c == column {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, false
	}
	for _, r := range t.Rows {
		if r.Level == level {
			return r.Values[col], true
		}
	}
	return 0, false
}

// Report is the ordered output of one run: category pivots followed by the KPI table.
type Report struct {
	GeneratedAt time.Time
	Tables      []Table
}

// Titles returns the table titles in report order.
func (r *Report) Titles() []string {
	titles := make([]string, 0, len(r.Tables))
	for _, t := range r.Tables {
		titles = append(titles, t.Title)
	}
	return titles
}
