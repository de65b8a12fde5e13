package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/ads-atlas/pkg/gaql"
	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

const sampleRowLimit = 3

type reportParallelCmd struct {
	deps Deps

	profilePath string
	customerIDs []string
	workers     int
	limit       int
}

func newReportParallelCmd(deps Deps) *cobra.Command {
	pc := &reportParallelCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "parallel",
		Short: "Download the canned reports for multiple customers in parallel",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringSliceVar(&pc.customerIDs, "customer-ids", nil, "Customer IDs to report on")
	cmd.Flags().IntVar(&pc.workers, "workers", 5, "Maximum number of concurrent report fetches")
	cmd.Flags().IntVar(&pc.limit, "limit", 10, "Row limit per report")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-ids")

	return cmd
}

func (pc *reportParallelCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := pc.deps.Clients.Search(pc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	dr, err := gaql.ResolveDateRange("", "", gaql.PresetLast30Days, pc.deps.Clock)
	if err != nil {
		return err
	}

	definitions := report.Definitions()
	var tasks []report.Task
	for _, customerID := range pc.customerIDs {
		for _, def := range definitions {
			label := fmt.Sprintf("%s (Customer: %s)", def.Name, customerID)
			query := def.Query(dr, pc.limit)
			fields := def.Fields
			cid := customerID
			tasks = append(tasks, report.Task{
				Label: label,
				Fetch: func(ctx context.Context) ([]domain.ReportRow, error) {
					table, err := report.FetchTable(ctx, client, cid, query, fields)
					if err != nil {
						return nil, err
					}
					return table.Rows, nil
				},
			})
		}
	}

	results := report.NewFetcher(pc.workers).Run(ctx, tasks)

	// Results arrive in completion order; print in submission order.
	for _, task := range tasks {
		result := results[task.Label]
		fmt.Fprintf(pc.deps.Output, "\n--- Results for %s ---\n", result.Label)
		switch {
		case result.Err != nil:
			fmt.Fprintf(pc.deps.Output, "Report failed with exception: %v\n", result.Err)
		case len(result.Rows) == 0:
			fmt.Fprintln(pc.deps.Output, "No data found.")
		default:
			pc.printSample(result.Rows)
		}
	}
	return nil
}

func (pc *reportParallelCmd) printSample(rows []domain.ReportRow) {
	for i, row := range rows {
		if i >= sampleRowLimit {
			fmt.Fprintf(pc.deps.Output, "... (%d more rows)\n", len(rows)-sampleRowLimit)
			return
		}
		cells := make([]string, len(row.Values))
		for j, v := range row.Values {
			cells[j] = report.FormatValue(v)
		}
		fmt.Fprintf(pc.deps.Output, "  Row %d: %s\n", i+1, strings.Join(cells, " | "))
	}
}
