package main

import (
	"fmt"
	"net"
	"os"

	handlers "github.com/de-tools/area-atlas/pkg/handlers/report"
	"github.com/de-tools/area-atlas/pkg/server"
	"github.com/de-tools/area-atlas/pkg/services/export"
	"github.com/de-tools/area-atlas/pkg/services/report"
	"github.com/de-tools/area-atlas/pkg/services/run"
	"github.com/de-tools/area-atlas/pkg/store/duckdb"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/reports"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/runs"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	dbPath string
	outDir string
	charts bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Area Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&dbPath, "db", "area-atlas.db", "Path to the DuckDB run history")
	rootCmd.Flags().StringVar(&outDir, "out-dir", "reports", "Directory that receives generated reports")
	rootCmd.Flags().BoolVar(&charts, "charts", false, "Also write a PNG chart per table")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: dbPath,
	})
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
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		p, err := export.LoadS3Publisher(ctx, os.Getenv("AWS_PROFILE"), bucket, os.Getenv("S3_PREFIX"))
		if err != nil {
			return fmt.Errorf("failed to configure S3 publisher: %w", err)
		}
		publisher = p
		logger.Info().Str("bucket", bucket).Msg("reports will be published to S3")
	}

	sinks := []string{run.DefaultSink}
	if charts {
		sinks = append(sinks, "charts")
	}

	runner := run.NewRunner(db, runStore, reportStore, report.NewAssembler(), export.NewDefaultRegistry(), publisher)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Reports: handlers.Options{
			OutDir:  outDir,
			Sinks:   sinks,
			Publish: publisher != nil,
		},
		Dependencies: server.Dependencies{
			Runner:  runner,
			Runs:    runStore,
			Reports: reportStore,
			Logger:  logger,
		},
	})

	return api.Start()
}
