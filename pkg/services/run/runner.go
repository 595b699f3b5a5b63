package run

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/area-atlas/pkg/adapters"
	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/de-tools/area-atlas/pkg/models/store"
	"github.com/de-tools/area-atlas/pkg/services/config"
	"github.com/de-tools/area-atlas/pkg/services/export"
	"github.com/de-tools/area-atlas/pkg/services/report"
	"github.com/de-tools/area-atlas/pkg/store/duckdb"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/reports"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/runs"
	"github.com/rs/zerolog"
)

const DefaultSink = "xlsx"

var ErrNoPublisher = errors.New("publishing requested but no publisher is configured")

type Assembler interface {
	Assemble(ctx context.Context, elements []*domain.Element, selection domain.Selection, groups domain.Groups) (*domain.Report, error)
}

type Publisher interface {
	Publish(ctx context.Context, path string) (string, error)
}

type Request struct {
	Elements []*domain.Element
	Config   config.RunConfig
	OutDir   string
	// Sinks names the export sinks to write; empty means DefaultSink only.
	Sinks   []string
	Publish bool
}

type Outcome struct {
	Run      *domain.Run
	Report   *domain.Report
	Files    []string
	Location string
}

type Runner struct {
	db          *sql.DB
	runStore    runs.Store
	reportStore reports.Store
	assembler   Assembler
	sinks       export.Registry
	publisher   Publisher
}

func NewRunner(
	db *sql.DB,
	runStore runs.Store,
	reportStore reports.Store,
	assembler Assembler,
	sinks export.Registry,
	publisher Publisher,
) *Runner {
	return &Runner{
		db:          db,
		runStore:    runStore,
		reportStore: reportStore,
		assembler:   assembler,
		sinks:       sinks,
		publisher:   publisher,
	}
}

// Run executes one report generation and records its outcome. A failed run
// still returns an Outcome holding the failed run alongside the error.
func (r *Runner) Run(ctx context.Context, req Request) (*Outcome, error) {
	if err := req.Config.Validate(); err != nil {
		return nil, &report.StageError{Stage: report.StageConfigure, Err: &domain.ConfigurationError{Reason: err.Error()}}
	}

	stored, err := r.runStore.Create(ctx, store.RunIdentity{FileName: req.Config.FileName})
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().Str("run", stored.ID).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Str("file_name", stored.FileName).Int("elements", len(req.Elements)).Msg("run started")

	outcome, err := r.execute(ctx, stored.ID, req)
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		if finishErr := r.runStore.Finish(ctx, stored.ID, store.RunStatusFailed, FailureMessage(err)); finishErr != nil {
			logger.Error().Err(finishErr).Msg("failed to record run failure")
		}
		failed, getErr := r.runStore.Get(ctx, stored.ID)
		if getErr != nil {
			return nil, errors.Join(err, getErr)
		}
		return &Outcome{Run: adapters.MapStoreRunToDomain(failed)}, err
	}

	finished, err := r.runStore.Get(ctx, stored.ID)
	if err != nil {
		return nil, err
	}
	outcome.Run = adapters.MapStoreRunToDomain(finished)
	logger.Info().Strs("files", outcome.Files).Msg("run succeeded")
	return outcome, nil
}

// execute removes every file it wrote when any step fails, so a failed run
// leaves no output behind.
func (r *Runner) execute(ctx context.Context, runID string, req Request) (_ *Outcome, err error) {
	cfg := req.Config
	rep, err := r.assembler.Assemble(ctx, req.Elements, cfg.Selection(), cfg.Groups())
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Report: rep}
	defer func() {
		if err != nil {
			removeFiles(ctx, outcome.Files)
		}
	}()

	sinks := req.Sinks
	if len(sinks) == 0 {
		sinks = []string{DefaultSink}
	}
	for _, name := range sinks {
		sink, err := r.sinks.Create(name)
		if err != nil {
			return nil, err
		}
		files, err := sink.Write(ctx, req.OutDir, cfg.FileName, rep)
		outcome.Files = append(outcome.Files, files...)
		if err != nil {
			return nil, fmt.Errorf("%s export: %w", name, err)
		}
	}

	if req.Publish {
		location, err := r.publish(ctx, outcome.Files)
		if err != nil {
			return nil, err
		}
		outcome.Location = location
	}

	tables, cells := adapters.MapDomainReportToStore(runID, rep)
	err = duckdb.InTransaction(ctx, r.db, func(ctx context.Context) error {
		if err := r.reportStore.Add(ctx, runID, tables, cells); err != nil {
			return fmt.Errorf("store report: %w", err)
		}
		return r.runStore.Finish(ctx, runID, store.RunStatusSucceeded, domain.SuccessMessage)
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func removeFiles(ctx context.Context, files []string) {
	logger := zerolog.Ctx(ctx)
	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Str("file", f).Msg("failed to remove output of failed run")
		}
	}
}

// publish uploads the workbook, which is the file handed back to the user.
func (r *Runner) publish(ctx context.Context, files []string) (string, error) {
	if r.publisher == nil {
		return "", ErrNoPublisher
	}
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".xlsx") {
			location, err := r.publisher.Publish(ctx, f)
			if err != nil {
				return "", fmt.Errorf("publish: %w", err)
			}
			return location, nil
		}
	}
	return "", fmt.Errorf("publish: no workbook was written")
}

// FailureMessage is the message recorded for a failed run.
func FailureMessage(err error) string {
	return fmt.Sprintf("An error occurred: %v. %s", err, domain.RemediationHint)
}
