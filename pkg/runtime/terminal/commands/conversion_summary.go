package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

var clientSummaryFields = []string{
	"offline_conversion_upload_client_summary.resource_name",
	"offline_conversion_upload_client_summary.status",
	"offline_conversion_upload_client_summary.total_event_count",
	"offline_conversion_upload_client_summary.successful_event_count",
	"offline_conversion_upload_client_summary.success_rate",
	"offline_conversion_upload_client_summary.last_upload_date_time",
}

var actionSummaryFields = []string{
	"offline_conversion_upload_conversion_action_summary.resource_name",
	"offline_conversion_upload_conversion_action_summary.conversion_action_name",
	"offline_conversion_upload_conversion_action_summary.status",
	"offline_conversion_upload_conversion_action_summary.total_event_count",
	"offline_conversion_upload_conversion_action_summary.successful_event_count",
	"offline_conversion_upload_conversion_action_summary.failed_event_count",
}

type conversionUploadSummaryCmd struct {
	deps Deps

	profilePath string
	customerID  string
}

func newConversionUploadSummaryCmd(deps Deps) *cobra.Command {
	sc := &conversionUploadSummaryCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "upload-summary",
		Short: "Summarize the health of offline conversion uploads",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&sc.customerID, "customer-id", "", "Customer ID to report on")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}

func (sc *conversionUploadSummaryCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := sc.deps.Clients.Search(sc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	clientQuery := "SELECT offline_conversion_upload_client_summary.resource_name," +
		" offline_conversion_upload_client_summary.status," +
		" offline_conversion_upload_client_summary.total_event_count," +
		" offline_conversion_upload_client_summary.successful_event_count," +
		" offline_conversion_upload_client_summary.success_rate," +
		" offline_conversion_upload_client_summary.last_upload_date_time" +
		" FROM offline_conversion_upload_client_summary"

	actionQuery := "SELECT offline_conversion_upload_conversion_action_summary.resource_name," +
		" offline_conversion_upload_conversion_action_summary.conversion_action_name," +
		" offline_conversion_upload_conversion_action_summary.status," +
		" offline_conversion_upload_conversion_action_summary.total_event_count," +
		" offline_conversion_upload_conversion_action_summary.successful_event_count" +
		" FROM offline_conversion_upload_conversion_action_summary"

	renderer := report.NewRenderer(sc.deps.Output)

	sections := []struct {
		title  string
		query  string
		fields []string
	}{
		{"Offline Conversion Upload Client Summary:", clientQuery, clientSummaryFields},
		{"Offline Conversion Upload Conversion Action Summary:", actionQuery, actionSummaryFields},
	}

	divider := strings.Repeat("=", 80)
	for _, section := range sections {
		table, err := report.FetchTable(ctx, client, sc.customerID, section.query, section.fields)
		if err != nil {
			return err
		}

		fmt.Fprintln(sc.deps.Output, divider)
		fmt.Fprintln(sc.deps.Output, section.title)
		fmt.Fprintln(sc.deps.Output, divider)
		if err := renderer.Console(table); err != nil {
			return err
		}
	}
	return nil
}
