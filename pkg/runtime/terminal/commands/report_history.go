package commands

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/adapters"
	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/de-tools/ads-atlas/pkg/store/duckdb"
	"github.com/de-tools/ads-atlas/pkg/store/duckdb/runs"
	"github.com/spf13/cobra"
)

type reportHistoryCmd struct {
	deps Deps

	customerID string
	runID      string
	dbPath     string
}

func newReportHistoryCmd(deps Deps) *cobra.Command {
	hc := &reportHistoryCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved report runs, or replay one run's rows",
		RunE:  hc.run,
	}

	cmd.Flags().StringVar(&hc.customerID, "customer-id", "", "Customer ID to list runs for")
	cmd.Flags().StringVar(&hc.runID, "run-id", "", "Replay the rows of a single saved run")
	cmd.Flags().StringVar(&hc.dbPath, "db", "ads-atlas.db", "Path to the report history database")

	return cmd
}

func (hc *reportHistoryCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: hc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open report history: %w", err)
	}
	defer db.Close()

	store, err := runs.NewStore(db)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(hc.deps.Output)

	if hc.runID != "" {
		runList, err := store.ListRuns(ctx, hc.customerID)
		if err != nil {
			return err
		}
		for _, run := range runList {
			if run.ID != hc.runID {
				continue
			}
			records, err := store.GetRows(ctx, hc.runID)
			if err != nil {
				return err
			}
			return renderer.Console(adapters.MapStoreRunToDomainTable(run, records))
		}
		return domain.NewConfigurationError("run %q not found", hc.runID)
	}

	if hc.customerID == "" {
		return domain.NewConfigurationError("a customer ID is required to list runs")
	}

	runList, err := store.ListRuns(ctx, hc.customerID)
	if err != nil {
		return err
	}

	table := &domain.ReportTable{
		Columns: []string{"Run ID", "Report", "Rows", "Created At"},
	}
	for _, run := range runList {
		table.Rows = append(table.Rows, domain.ReportRow{Values: []any{
			run.ID, run.ReportType, int64(run.RowCount), run.CreatedAt.Format("2006-01-02 15:04:05"),
		}})
	}
	return renderer.Console(table)
}
