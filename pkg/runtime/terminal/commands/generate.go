package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/area-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/area-atlas/pkg/services/config"
	"github.com/de-tools/area-atlas/pkg/services/ingest"
	"github.com/de-tools/area-atlas/pkg/services/report"
	"github.com/de-tools/area-atlas/pkg/services/run"
	"github.com/de-tools/area-atlas/pkg/store/duckdb"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/reports"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/runs"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	sinks "github.com/de-tools/area-atlas/pkg/services/export"
)

const DefaultDBPath = "area-atlas.db"

type GenerateCmd struct {
	inputPath    string
	configPath   string
	profilesPath string
	profile      string
	outDir       string
	dbPath       string
	charts       bool
	s3Bucket     string
	s3Prefix     string
	awsProfile   string
	reporter     *export.Reporter
}

func NewGenerateCmd(reporter *export.Reporter) *cobra.Command {
	gc := &GenerateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate area schedules and KPIs from a model export",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.inputPath, "input", "", "Path to the JSON model export")
	cmd.Flags().StringVar(&gc.configPath, "config", "", "Path to a run config file (yaml, json or toml)")
	cmd.Flags().StringVar(&gc.profilesPath, "profiles", "", "Path to an ini file of run profiles")
	cmd.Flags().StringVar(&gc.profile, "profile", "", "Profile to use from --profiles")
	cmd.Flags().StringVar(&gc.outDir, "out-dir", ".", "Directory to write the report into")
	cmd.Flags().StringVar(&gc.dbPath, "db", DefaultDBPath, "Path to the DuckDB run history")
	cmd.Flags().BoolVar(&gc.charts, "charts", false, "Also write a PNG chart per table")
	cmd.Flags().StringVar(&gc.s3Bucket, "s3-bucket", "", "Upload the workbook to this S3 bucket")
	cmd.Flags().StringVar(&gc.s3Prefix, "s3-prefix", "", "Key prefix for the uploaded workbook")
	cmd.Flags().StringVar(&gc.awsProfile, "aws-profile", "", "AWS shared config profile for the upload")

	_ = cmd.MarkFlagRequired("input")
	cmd.MarkFlagsMutuallyExclusive("config", "profiles")
	cmd.MarkFlagsRequiredTogether("profiles", "profile")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := gc.loadConfig(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(gc.inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	elements, err := ingest.LoadElements(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to load elements from %s: %w", gc.inputPath, err)
	}
	logger.Debug().Int("elements", len(elements)).Str("input", gc.inputPath).Msg("model loaded")

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: gc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	runStore, err := runs.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}
	reportStore, err := reports.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	var publisher run.Publisher
	if gc.s3Bucket != "" {
		p, err := sinks.LoadS3Publisher(ctx, gc.awsProfile, gc.s3Bucket, gc.s3Prefix)
		if err != nil {
			return err
		}
		publisher = p
	}

	names := []string{"xlsx"}
	if gc.charts {
		names = append(names, "charts")
	}

	runner := run.NewRunner(db, runStore, reportStore, report.NewAssembler(), sinks.NewDefaultRegistry(), publisher)
	outcome, err := runner.Run(ctx, run.Request{
		Elements: elements,
		Config:   *cfg,
		OutDir:   gc.outDir,
		Sinks:    names,
		Publish:  publisher != nil,
	})
	if err != nil {
		if outcome != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), outcome.Run.Message)
		}
		return err
	}

	if err := gc.reporter.Handle(outcome.Report); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", outcome.Run.Message)
	for _, file := range outcome.Files {
		fmt.Fprintf(out, "  %s\n", file)
	}
	if outcome.Location != "" {
		fmt.Fprintf(out, "  %s\n", outcome.Location)
	}
	return nil
}

func (gc *GenerateCmd) loadConfig(ctx context.Context) (*config.RunConfig, error) {
	switch {
	case gc.profilesPath != "":
		registry, err := config.NewRegistry(gc.profilesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		return registry.GetConfig(ctx, gc.profile)
	case gc.configPath != "":
		return config.LoadRunConfig(gc.configPath)
	default:
		cfg := config.DefaultRunConfig()
		return &cfg, nil
	}
}
