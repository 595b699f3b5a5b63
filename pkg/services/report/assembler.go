package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/de-tools/area-atlas/pkg/services/aggregation"
	"github.com/de-tools/area-atlas/pkg/services/extraction"
	"github.com/rs/zerolog"
)

// Assembler turns model elements into a Report. It holds no state between calls.
type Assembler struct {
	now func() time.Time
}

func NewAssembler() *Assembler {
	return &Assembler{now: time.Now}
}

// Assemble runs filter → extract → pivot → group in one pass. It returns either a
// complete report or a *StageError, never both.
func (a *Assembler) Assemble(
	ctx context.Context,
	elements []*domain.Element,
	selection domain.Selection,
	groups domain.Groups,
) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	categories, err := selection.Categories()
	if err != nil {
		return nil, &StageError{Stage: StageConfigure, Err: err}
	}

	retained := extraction.Filter(elements, categories)
	logger.Debug().
		Strs("categories", categories).
		Int("elements", len(elements)).
		Int("retained", len(retained)).
		Msg("filtered elements")
	if len(retained) == 0 {
		return nil, &StageError{Stage: StageFilter, Err: &domain.EmptyResultError{Categories: categories}}
	}

	raw := extraction.Extract(retained, extraction.ReportPaths)
	records, err := extraction.ToFlatRecords(extraction.IDs(retained), raw)
	if err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}

	tables := make([]domain.Table, 0, len(categories)+1)
	for _, category := range categories {
		table := aggregation.BuildPivot(records, category)
		if err := checkTotals(table); err != nil {
			return nil, &StageError{Stage: StagePivot, Err: err}
		}
		tables = append(tables, table)
	}

	kpi := aggregation.BuildKPI(records, groups)
	if err := checkTotals(kpi); err != nil {
		return nil, &StageError{Stage: StageGroup, Err: err}
	}
	tables = append(tables, kpi)

	logger.Info().
		Int("records", len(records)).
		Int("levels", len(aggregation.LevelSet(records))).
		Int("tables", len(tables)).
		Msg("report assembled")

	return &domain.Report{
		GeneratedAt: a.now(),
		Tables:      tables,
	}, nil
}

// checkTotals guards against NaN or infinite areas reaching the output.
func checkTotals(t domain.Table) error {
	total, ok := t.Total()
	if !ok {
		return fmt.Errorf("table %q has no total row", t.Title)
	}
	for i, v := range total.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("table %q: column %q total is not a finite number", t.Title, t.ValueColumns()[i])
		}
	}
	return nil
}
