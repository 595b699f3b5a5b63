package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/area-atlas/pkg/models/domain"
)

type TableConfig struct {
	MinWidth  int
	Precision int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinWidth:  8,
		Precision: 2,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type tableView struct {
	Title  string
	Widths []int
	Header []string
	Rows   [][]string
}

const reportTemplate = `{{range .}}{{$widths := .Widths}}
Schedule {{.Title}}
{{separator .Widths}}
{{formatRow .Widths .Header}}
{{separator .Widths}}
{{range .Rows}}{{formatRow $widths .}}
{{end}}{{separator .Widths}}
{{end}}`

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(widths []int, cells []string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, cell := range cells {
				pad := widths[i] - utf8.RuneCountInString(cell)
				if i == 0 {
					fmt.Fprintf(&b, " %s%s |", cell, strings.Repeat(" ", pad))
				} else {
					fmt.Fprintf(&b, " %s%s |", strings.Repeat(" ", pad), cell)
				}
			}
			return b.String()
		},
		"separator": func(widths []int) string {
			var b strings.Builder
			b.WriteString("+")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("+")
			}
			return b.String()
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	views := make([]tableView, 0, len(report.Tables))
	for _, table := range report.Tables {
		views = append(views, c.view(table))
	}
	return t.Execute(c.writer, views)
}

func (c *Reporter) view(table domain.Table) tableView {
	v := tableView{
		Title:  table.Title,
		Header: table.Columns,
		Widths: make([]int, len(table.Columns)),
	}
	for _, row := range table.Rows {
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, row.Level)
		for _, value := range row.Values {
			cells = append(cells, strconv.FormatFloat(value, 'f', c.config.Precision, 64))
		}
		v.Rows = append(v.Rows, cells)
	}

	for i := range v.Widths {
		v.Widths[i] = max(c.config.MinWidth, utf8.RuneCountInString(v.Header[i]))
		for _, cells := range v.Rows {
			v.Widths[i] = max(v.Widths[i], utf8.RuneCountInString(cells[i]))
		}
	}
	return v
}
