package commands

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

var disapprovedFields = []string{
	"campaign.name",
	"campaign.id",
	"ad_group_ad.ad.id",
	"ad_group_ad.ad.type",
	"ad_group_ad.policy_summary.approval_status",
	"ad_group_ad.policy_summary.policy_topics",
	"ad_group_ad.policy_summary.policy_types",
	"ad_group_ad.policy_summary.evidence_texts",
}

type reportDisapprovedCmd struct {
	deps Deps

	profilePath string
	customerID  string
	reportType  string
	campaignID  string
	file        string
}

func newReportDisapprovedCmd(deps Deps) *cobra.Command {
	dc := &reportDisapprovedCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "disapproved",
		Short: "Report disapproved ads with their policy findings",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&dc.customerID, "customer-id", "", "Customer ID to report on")
	cmd.Flags().StringVar(&dc.reportType, "report-type", "all", "Report scope (all campaigns or single)")
	cmd.Flags().StringVar(&dc.campaignID, "campaign-id", "", "Campaign ID (required for single scope)")
	cmd.Flags().StringVar(&dc.file, "file", "", "Output CSV file path; single scope prints to console when omitted")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}

func (dc *reportDisapprovedCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := dc.deps.Clients.Search(dc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	var query string
	file := dc.file

	switch dc.reportType {
	case "all":
		query = "SELECT campaign.name, campaign.id, ad_group_ad.ad.id, ad_group_ad.ad.type," +
			" ad_group_ad.policy_summary.approval_status, ad_group_ad.policy_summary.policy_topic_entries" +
			" FROM ad_group_ad WHERE ad_group_ad.policy_summary.approval_status = DISAPPROVED"
		if file == "" {
			file = "saved_csv/disapproved_ads_all_campaigns.csv"
		}
	case "single":
		if dc.campaignID == "" {
			return domain.NewConfigurationError("campaign ID is required for the single report scope")
		}
		query = fmt.Sprintf("SELECT campaign.name, campaign.id, ad_group_ad.ad.id, ad_group_ad.ad.type,"+
			" ad_group_ad.policy_summary.approval_status, ad_group_ad.policy_summary.policy_topic_entries"+
			" FROM ad_group_ad WHERE campaign.id = %s"+
			" AND ad_group_ad.policy_summary.approval_status = DISAPPROVED", dc.campaignID)
	default:
		return domain.NewConfigurationError("unknown report scope %q", dc.reportType)
	}

	table, err := report.FetchTable(ctx, client, dc.customerID, query, disapprovedFields)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(dc.deps.Output)
	if file == "" {
		return renderer.Console(table)
	}
	return renderer.CSV(table, file)
}
