package run

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/de-tools/area-atlas/pkg/services/config"
	"github.com/de-tools/area-atlas/pkg/services/export"
	"github.com/de-tools/area-atlas/pkg/services/report"
	"github.com/de-tools/area-atlas/pkg/store/duckdb"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/reports"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/runs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func element(id, category, level, name string, area any) *domain.Element {
	fields := map[string]any{
		"category": category,
		"level":    domain.NewElement(id+"-level", map[string]any{"name": level}),
		"properties": map[string]any{
			"Parameters": map[string]any{
				"Instance Parameters": map[string]any{
					"Identity Data": map[string]any{"Name": map[string]any{"value": name}},
					"Dimensions":    map[string]any{"Area": map[string]any{"value": area}},
				},
			},
		},
	}
	return domain.NewElement(id, fields)
}

func sampleElements() []*domain.Element {
	return []*domain.Element{
		element("1", "Areas", "L1", "Café", 100.0),
		element("2", "Areas", "L1", "Office", 50.0),
		element("3", "Areas", "L2", "Café", 80.0),
	}
}

type fixture struct {
	ctx         context.Context
	db          *sql.DB
	runStore    runs.Store
	reportStore reports.Store
	publisher   *mockPublisher
	runner      *Runner
	outDir      string
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	runStore, err := runs.NewStore(db)
	require.NoError(t, err)
	reportStore, err := reports.NewStore(db)
	require.NoError(t, err)

	publisher := new(mockPublisher)
	logger := zerolog.New(zerolog.NewTestWriter(t))

	return &fixture{
		ctx:         logger.WithContext(context.Background()),
		db:          db,
		runStore:    runStore,
		reportStore: reportStore,
		publisher:   publisher,
		runner:      NewRunner(db, runStore, reportStore, report.NewAssembler(), export.NewDefaultRegistry(), publisher),
		outDir:      t.TempDir(),
	}
}

func defaultConfig() config.RunConfig {
	cfg := config.DefaultRunConfig()
	cfg.NIA = "Café"
	return cfg
}

func TestRunner_Run_Success(t *testing.T) {
	// Given
	f := setupFixture(t)

	// When
	outcome, err := f.runner.Run(f.ctx, Request{
		Elements: sampleElements(),
		Config:   defaultConfig(),
		OutDir:   f.outDir,
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusSucceeded, outcome.Run.Status)
	assert.Equal(t, domain.SuccessMessage, outcome.Run.Message)
	assert.NotNil(t, outcome.Run.FinishedAt)
	assert.Equal(t, []string{"Areas", "KPIs"}, outcome.Report.Titles())

	require.Len(t, outcome.Files, 1)
	assert.Equal(t, f.outDir, filepath.Dir(outcome.Files[0]))
	assert.Regexp(t, `^schedule_\d{8}_\d{6}\.xlsx$`, filepath.Base(outcome.Files[0]))
	_, err = os.Stat(outcome.Files[0])
	assert.NoError(t, err)

	tables, cells, err := f.reportStore.Get(f.ctx, outcome.Run.ID)
	require.NoError(t, err)
	assert.Len(t, tables, 2)
	assert.NotEmpty(t, cells)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRunner_Run_WithChartsAndPublish(t *testing.T) {
	f := setupFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(p string) bool {
		return filepath.Ext(p) == ".xlsx"
	})).Return("s3://atlas/schedule.xlsx", nil)

	outcome, err := f.runner.Run(f.ctx, Request{
		Elements: sampleElements(),
		Config:   defaultConfig(),
		OutDir:   f.outDir,
		Sinks:    []string{"xlsx", "charts"},
		Publish:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "s3://atlas/schedule.xlsx", outcome.Location)
	assert.Len(t, outcome.Files, 3, "workbook plus one chart per table")
	f.publisher.AssertExpectations(t)
}

func TestRunner_Run_FailedRun(t *testing.T) {
	tests := []struct {
		name    string
		req     func(dir string) Request
		stage   report.Stage
		message string
	}{
		{
			name: "no elements in category",
			req: func(dir string) Request {
				cfg := defaultConfig()
				cfg.IncludeAreas = false
				cfg.IncludeRooms = true
				return Request{Elements: sampleElements(), Config: cfg, OutDir: dir}
			},
			stage:   report.StageFilter,
			message: "no elements found for categories: Rooms",
		},
		{
			name: "nothing selected",
			req: func(dir string) Request {
				cfg := defaultConfig()
				cfg.IncludeAreas = false
				return Request{Elements: sampleElements(), Config: cfg, OutDir: dir}
			},
			stage:   report.StageConfigure,
			message: "select one of the two options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)

			outcome, err := f.runner.Run(f.ctx, tt.req(f.outDir))

			require.Error(t, err)
			stage, ok := report.FailedStage(err)
			require.True(t, ok)
			assert.Equal(t, tt.stage, stage)

			require.NotNil(t, outcome)
			assert.Equal(t, domain.RunStatusFailed, outcome.Run.Status)
			assert.Contains(t, outcome.Run.Message, domain.RemediationHint)
			assert.Contains(t, outcome.Run.Message, tt.message)
			assert.Nil(t, outcome.Report)

			entries, err := os.ReadDir(f.outDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "a failed run writes no file")
		})
	}
}

func TestRunner_Run_PublishFailure(t *testing.T) {
	f := setupFixture(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return("", errors.New("access denied"))

	outcome, err := f.runner.Run(f.ctx, Request{
		Elements: sampleElements(),
		Config:   defaultConfig(),
		OutDir:   f.outDir,
		Publish:  true,
	})

	assert.ErrorContains(t, err, "access denied")
	assert.Equal(t, domain.RunStatusFailed, outcome.Run.Status)

	tables, _, err := f.reportStore.Get(f.ctx, outcome.Run.ID)
	require.NoError(t, err)
	assert.Empty(t, tables)

	entries, err := os.ReadDir(f.outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed run must not leave output files")
}

func TestRunner_Run_LaterSinkFailureRemovesWrittenFiles(t *testing.T) {
	// Given a workbook that is written before an unknown sink fails
	f := setupFixture(t)

	// When
	outcome, err := f.runner.Run(f.ctx, Request{
		Elements: sampleElements(),
		Config:   defaultConfig(),
		OutDir:   f.outDir,
		Sinks:    []string{"xlsx", "charts", "pdf"},
	})

	// Then
	assert.ErrorContains(t, err, `sink "pdf" is not registered`)
	assert.Equal(t, domain.RunStatusFailed, outcome.Run.Status)
	assert.Empty(t, outcome.Files)

	entries, err := os.ReadDir(f.outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunner_Run_NoPublisher(t *testing.T) {
	f := setupFixture(t)
	f.runner.publisher = nil

	_, err := f.runner.Run(f.ctx, Request{
		Elements: sampleElements(),
		Config:   defaultConfig(),
		OutDir:   f.outDir,
		Publish:  true,
	})

	assert.ErrorIs(t, err, ErrNoPublisher)
}

func TestRunner_Run_InvalidFileName(t *testing.T) {
	f := setupFixture(t)
	cfg := defaultConfig()
	cfg.FileName = "../escape"

	outcome, err := f.runner.Run(f.ctx, Request{Elements: sampleElements(), Config: cfg, OutDir: f.outDir})

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	recorded, err := f.runStore.List(f.ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestRunner_Run_UnknownSink(t *testing.T) {
	f := setupFixture(t)

	outcome, err := f.runner.Run(f.ctx, Request{
		Elements: sampleElements(),
		Config:   defaultConfig(),
		OutDir:   f.outDir,
		Sinks:    []string{"pdf"},
	})

	assert.ErrorContains(t, err, `sink "pdf" is not registered`)
	assert.Equal(t, domain.RunStatusFailed, outcome.Run.Status)
}
