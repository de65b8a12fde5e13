package commands

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

var sharedSetFields = []string{
	"campaign.id",
	"campaign.name",
	"shared_set.id",
	"shared_set.name",
	"shared_set.type",
}

type reportSharedSetsCmd struct {
	deps Deps

	profilePath string
	customerID  string
	file        string
}

func newReportSharedSetsCmd(deps Deps) *cobra.Command {
	sc := &reportSharedSetsCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "shared-sets",
		Short: "Report the shared sets attached to each campaign",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&sc.customerID, "customer-id", "", "Customer ID to report on")
	cmd.Flags().StringVar(&sc.file, "file", "", "Output CSV file path; prints to console when omitted")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}

func (sc *reportSharedSetsCmd) run(cmd *cobra.Command, args []string) error {
	client, err := sc.deps.Clients.Search(sc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	query := "SELECT campaign.id, campaign.name, campaign_shared_set.shared_set," +
		" shared_set.id, shared_set.name, shared_set.type" +
		" FROM campaign_shared_set ORDER BY campaign.id"

	table, err := report.FetchTable(cmd.Context(), client, sc.customerID, query, sharedSetFields)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(sc.deps.Output)
	if sc.file == "" {
		return renderer.Console(table)
	}
	return renderer.CSV(table, sc.file)
}
