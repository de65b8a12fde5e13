package commands

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/gaql"
	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

var changeHistoryFields = []string{
	"change_status.last_change_date_time",
	"change_status.resource_type",
	"change_status.resource_name",
	"change_status.resource_status",
}

type reportChangeHistoryCmd struct {
	deps Deps

	profilePath string
	customerID  string
	startDate   string
	endDate     string
}

func newReportChangeHistoryCmd(deps Deps) *cobra.Command {
	cc := &reportChangeHistoryCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "change-history",
		Short: "List recent account changes",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&cc.customerID, "customer-id", "", "Customer ID to report on")
	cmd.Flags().StringVar(&cc.startDate, "start-date", "", "Start date (YYYY-MM-DD); defaults to 7 days ago")
	cmd.Flags().StringVar(&cc.endDate, "end-date", "", "End date (YYYY-MM-DD); defaults to today")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}

func (cc *reportChangeHistoryCmd) run(cmd *cobra.Command, args []string) error {
	client, err := cc.deps.Clients.Search(cc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	preset := ""
	if cc.startDate == "" && cc.endDate == "" {
		preset = gaql.PresetLast7Days
	}
	dr, err := gaql.ResolveDateRange(cc.startDate, cc.endDate, preset, cc.deps.Clock)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT change_status.resource_name, change_status.last_change_date_time,"+
		" change_status.resource_type, change_status.resource_status FROM change_status"+
		" WHERE change_status.last_change_date_time BETWEEN '%s' AND '%s'"+
		" ORDER BY change_status.last_change_date_time DESC LIMIT 10000",
		dr.StartString(), dr.EndString())

	fmt.Fprintf(cc.deps.Output, "Retrieving change history for customer ID: %s from %s to %s\n",
		cc.customerID, dr.StartString(), dr.EndString())

	table, err := report.FetchTable(cmd.Context(), client, cc.customerID, query, changeHistoryFields)
	if err != nil {
		return err
	}

	return report.NewRenderer(cc.deps.Output).Console(table)
}
