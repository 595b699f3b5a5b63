package export

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName     = "Sheet1"
	titlePrefix   = "Schedule "
	firstTableRow = 3  // zero-based header row of the first table
	tableGap      = 6  // rows between the end of one table and the next header
	chartGap      = 25 // rows between chart blocks
)

// XLSXRenderer lays every report table out on one sheet, followed by a column
// chart of each table's Total row.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) Name() string {
	return "xlsx"
}

// Write renders the workbook into dir as <base>_<timestamp>.xlsx.
func (r *XLSXRenderer) Write(_ context.Context, dir, base string, report *domain.Report) ([]string, error) {
	path, err := writeAtomic(dir, FileName(base, report.GeneratedAt), func(w io.Writer) error {
		return r.Render(w, report)
	})
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (r *XLSXRenderer) Render(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	startRow := firstTableRow
	for _, table := range report.Tables {
		if err := writeTable(f, styles, table, startRow); err != nil {
			return fmt.Errorf("write table %q: %w", table.Title, err)
		}
		startRow += len(table.Rows) + tableGap
	}

	chartRow := startRow + 2
	for _, table := range report.Tables {
		if err := writeChart(f, table, chartRow); err != nil {
			return fmt.Errorf("write chart %q: %w", table.Title, err)
		}
		chartRow += chartGap
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	file    *excelize.File
	title   int
	border  int
	headers map[string]int
}

func newSheetStyles(f *excelize.File) (*sheetStyles, error) {
	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 18},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	border, err := f.NewStyle(&excelize.Style{Border: thinBorder()})
	if err != nil {
		return nil, fmt.Errorf("create border style: %w", err)
	}
	return &sheetStyles{file: f, title: title, border: border, headers: make(map[string]int)}, nil
}

func (s *sheetStyles) header(col int) (int, error) {
	hex := paletteColor(col)
	if id, ok := s.headers[hex]; ok {
		return id, nil
	}
	id, err := s.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("create header style: %w", err)
	}
	s.headers[hex] = id
	return id, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

// writeTable writes the title block above startRow and the table from startRow.
// Rows here are zero-based; excelize cells are one-based.
func writeTable(f *excelize.File, styles *sheetStyles, table domain.Table, startRow int) error {
	top, _ := excelize.CoordinatesToCellName(1, startRow-2)
	bottom, _ := excelize.CoordinatesToCellName(4, startRow)
	if err := f.MergeCell(sheetName, top, bottom); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, top, titlePrefix+table.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, top, bottom, styles.title); err != nil {
		return err
	}

	headerRow := startRow + 1
	for c, name := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(c+1, headerRow)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
		style, err := styles.header(c)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return err
		}
	}

	for i, row := range table.Rows {
		if err := writeRow(f, headerRow+1+i, row); err != nil {
			return err
		}
	}

	if len(table.Rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, headerRow+1)
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), headerRow+len(table.Rows))
		if err := f.SetCellStyle(sheetName, first, last, styles.border); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, excelRow int, row domain.Row) error {
	values := make([]interface{}, 0, len(row.Values)+1)
	values = append(values, row.Level)
	for _, v := range row.Values {
		values = append(values, v)
	}
	cell, _ := excelize.CoordinatesToCellName(1, excelRow)
	return f.SetSheetRow(sheetName, cell, &values)
}

// writeChart writes the table header and Total row as the chart's data block at
// chartRow and places a column chart of the Total row three rows below it.
func writeChart(f *excelize.File, table domain.Table, chartRow int) error {
	total, ok := table.Total()
	if !ok || len(table.ValueColumns()) == 0 {
		return nil
	}

	headerRow, valueRow := chartRow+1, chartRow+2
	header := make([]interface{}, 0, len(table.Columns))
	for _, c := range table.Columns {
		header = append(header, c)
	}
	headerCell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetSheetRow(sheetName, headerCell, &header); err != nil {
		return err
	}
	if err := writeRow(f, valueRow, total); err != nil {
		return err
	}

	firstCat, _ := excelize.CoordinatesToCellName(2, headerRow, true)
	lastCat, _ := excelize.CoordinatesToCellName(len(table.Columns), headerRow, true)
	categories := fmt.Sprintf("%s!%s:%s", sheetName, firstCat, lastCat)

	series := make([]excelize.ChartSeries, 0, len(table.ValueColumns()))
	for i := range table.ValueColumns() {
		nameCell, _ := excelize.CoordinatesToCellName(i+2, headerRow, true)
		valueCell, _ := excelize.CoordinatesToCellName(i+2, valueRow, true)
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!%s", sheetName, nameCell),
			Categories: categories,
			Values:     fmt.Sprintf("%s!%s", sheetName, valueCell),
			Fill:       excelize.Fill{Type: "pattern", Color: []string{paletteColor(i + 1)}, Pattern: 1},
		})
	}

	anchor, _ := excelize.CoordinatesToCellName(1, chartRow+4)
	return f.AddChart(sheetName, anchor, &excelize.Chart{
		Type:      excelize.Col,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: titlePrefix + table.Title}},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Columns"}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Value"}}},
		Dimension: excelize.ChartDimension{Width: 800, Height: 400},
		Legend:    excelize.ChartLegend{Position: "bottom"},
	})
}
