package commands

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type reportPmaxCmd struct {
	deps Deps

	profilePath string
	customerID  string
}

func newReportPmaxCmd(deps Deps) *cobra.Command {
	pc := &reportPmaxCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "pmax",
		Short: "List Performance Max campaigns",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&pc.customerID, "customer-id", "", "Customer ID to report on")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}

func (pc *reportPmaxCmd) run(cmd *cobra.Command, args []string) error {
	client, err := pc.deps.Clients.Search(pc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	query := "SELECT campaign.name, campaign.advertising_channel_type FROM campaign" +
		" WHERE campaign.advertising_channel_type = 'PERFORMANCE_MAX'"
	fields := []string{"campaign.name", "campaign.advertising_channel_type"}

	table, err := report.FetchTable(cmd.Context(), client, pc.customerID, query, fields)
	if err != nil {
		return err
	}

	if len(table.Rows) == 0 {
		_, err := fmt.Fprintln(pc.deps.Output, "No Performance Max campaigns found.")
		return err
	}
	for _, row := range table.Rows {
		_, err := fmt.Fprintf(pc.deps.Output, "Campaign with name %q is a %s campaign.\n",
			report.FormatValue(row.Values[0]), report.FormatValue(row.Values[1]))
		if err != nil {
			return err
		}
	}
	return nil
}
