package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/area-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/area-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	logger   zerolog.Logger
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logger *zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		logger:   logger,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides the command-line arguments, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Area schedule and KPI report generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewGenerateCmd(cli.reporter))
	cmd.AddCommand(commands.NewProfilesCmd())
	cmd.AddCommand(commands.NewHistoryCmd())

	return cmd
}
