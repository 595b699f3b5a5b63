package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/de-tools/area-atlas/pkg/adapters"
	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/de-tools/area-atlas/pkg/models/store"
	"github.com/de-tools/area-atlas/pkg/store/duckdb"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/runs"
	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	dbPath   string
	statuses []string
}

func NewHistoryCmd() *cobra.Command {
	hc := &HistoryCmd{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded report runs",
		RunE:  hc.run,
	}

	cmd.Flags().StringVar(&hc.dbPath, "db", DefaultDBPath, "Path to the DuckDB run history")
	cmd.Flags().StringSliceVar(&hc.statuses, "status", nil, "Only show runs with these statuses")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: hc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	runStore, err := runs.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	statuses := make([]store.RunStatus, 0, len(hc.statuses))
	for _, s := range hc.statuses {
		statuses = append(statuses, store.RunStatus(s))
	}
	recorded, err := runStore.List(ctx, statuses)
	if err != nil {
		return err
	}

	if len(recorded) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tFILE\tCREATED\tFINISHED\tMESSAGE")
	for _, r := range recorded {
		dr := adapters.MapStoreRunToDomain(r)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			dr.ID, dr.Status, dr.FileName, dr.CreatedAt.Format(historyTimeLayout), finishedAt(dr), dr.Message)
	}
	return w.Flush()
}

const historyTimeLayout = "2006-01-02 15:04:05"

// finishedAt is "-" for runs still in progress.
func finishedAt(r *domain.Run) string {
	if !r.Finished() || r.FinishedAt == nil {
		return "-"
	}
	return r.FinishedAt.Format(historyTimeLayout)
}
