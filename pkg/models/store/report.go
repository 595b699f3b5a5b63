package store

// ReportTable holds the shape of one stored report table. Cells are keyed by
// row and column position within it.
type ReportTable struct {
	RunID      string
	TableIndex int
	Title      string
	Kind       string
	Columns    []string
	Levels     []string
}

type ReportCell struct {
	RunID       string
	TableIndex  int
	RowIndex    int
	ColumnIndex int
	Value       float64
}
