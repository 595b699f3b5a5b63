package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/area-atlas/pkg/models/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// ChartRenderer writes one PNG bar chart per table, plotting its Total row.
type ChartRenderer struct{}

func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{}
}

func (r *ChartRenderer) Name() string {
	return "charts"
}

// Write saves one PNG per table with value columns. On failure the charts
// already saved are removed.
func (r *ChartRenderer) Write(_ context.Context, dir, base string, report *domain.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	stamp := report.GeneratedAt.Format(timestampLayout)
	var paths []string
	for i, table := range report.Tables {
		p, ok, err := totalsPlot(table)
		if err != nil {
			removeAll(paths)
			return nil, fmt.Errorf("plot %q: %w", table.Title, err)
		}
		if !ok {
			continue
		}

		name := fmt.Sprintf("%s_%s_%02d_%s.png", base, stamp, i+1, slug(table.Title))
		path, err := writeAtomicPNG(dir, name, p)
		if err != nil {
			removeAll(paths)
			return nil, fmt.Errorf("save chart %q: %w", table.Title, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func totalsPlot(table domain.Table) (*plot.Plot, bool, error) {
	total, ok := table.Total()
	columns := table.ValueColumns()
	if !ok || len(columns) == 0 {
		return nil, false, nil
	}

	p := plot.New()
	p.Title.Text = titlePrefix + table.Title
	p.X.Label.Text = "Columns"
	p.Y.Label.Text = "Value"

	bars, err := columnBars(total.Values)
	if err != nil {
		return nil, false, err
	}
	for _, b := range bars {
		p.Add(b)
	}
	p.NominalX(columns...)
	return p, true, nil
}

// columnBars builds one bar per value so each bar takes its column's palette colour.
func columnBars(values []float64) ([]*plotter.BarChart, error) {
	bars := make([]*plotter.BarChart, 0, len(values))
	for i, v := range values {
		b, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(20))
		if err != nil {
			return nil, err
		}
		fill, err := rgba(paletteColor(i + 1))
		if err != nil {
			return nil, err
		}
		b.XMin = float64(i)
		b.Color = fill
		b.LineStyle.Width = vg.Length(0)
		bars = append(bars, b)
	}
	return bars, nil
}

// writeAtomicPNG saves through a temp name because plot.Save picks the format
// from the file extension.
func writeAtomicPNG(dir, name string, p *plot.Plot) (string, error) {
	tmp := filepath.Join(dir, ".tmp-"+name)
	if err := p.Save(chartWidth, chartHeight, tmp); err != nil {
		os.Remove(tmp)
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := renameFile(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

func removeAll(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}

func slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	if s == "" {
		return "table"
	}
	return s
}
