package commands

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/gaql"
	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type reportAIMaxCmd struct {
	deps Deps

	profilePath string
	customerID  string
	reportType  string
	file        string
}

func newReportAIMaxCmd(deps Deps) *cobra.Command {
	ac := &reportAIMaxCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "aimax",
		Short: "Report campaigns and search terms served by AI Max",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&ac.customerID, "customer-id", "", "Customer ID to report on")
	cmd.Flags().StringVar(&ac.reportType, "report-type", "",
		"Report type (campaign_details, landing_page_matches or search_terms)")
	cmd.Flags().StringVar(&ac.file, "file", "", "Output CSV file path")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("report-type")

	return cmd
}

func (ac *reportAIMaxCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := ac.deps.Clients.Search(ac.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	var (
		query  string
		fields []string
	)
	file := ac.file

	switch ac.reportType {
	case "campaign_details":
		query = "SELECT campaign.id, campaign.name, expanded_landing_page_view.expanded_final_url," +
			" campaign.ai_max_setting.enable_ai_max FROM expanded_landing_page_view" +
			" WHERE campaign.ai_max_setting.enable_ai_max = TRUE ORDER BY campaign.id"
		fields = []string{
			"campaign.id",
			"campaign.name",
			"expanded_landing_page_view.expanded_final_url",
			"campaign.ai_max_setting.enable_ai_max",
		}
		if file == "" {
			file = "saved_csv/ai_max_campaign_details.csv"
		}
	case "landing_page_matches":
		query = "SELECT campaign.id, campaign.name, expanded_landing_page_view.expanded_final_url" +
			" FROM expanded_landing_page_view" +
			" WHERE campaign.ai_max_setting.enable_ai_max = TRUE ORDER BY campaign.id"
		fields = []string{
			"campaign.id",
			"campaign.name",
			"expanded_landing_page_view.expanded_final_url",
		}
		if file == "" {
			file = "saved_csv/ai_max_landing_page_matches.csv"
		}
	case "search_terms":
		dr, err := gaql.ResolveDateRange("", "", gaql.PresetLast30Days, ac.deps.Clock)
		if err != nil {
			return err
		}
		query = fmt.Sprintf("SELECT campaign.id, campaign.name,"+
			" ai_max_search_term_ad_combination_view.search_term, metrics.impressions, metrics.clicks,"+
			" metrics.cost_micros, metrics.conversions FROM ai_max_search_term_ad_combination_view"+
			" WHERE segments.date BETWEEN '%s' AND '%s' ORDER BY metrics.impressions DESC",
			dr.StartString(), dr.EndString())
		fields = []string{
			"campaign.id",
			"campaign.name",
			"ai_max_search_term_ad_combination_view.search_term",
			"metrics.impressions",
			"metrics.clicks",
			"metrics.cost_micros",
			"metrics.conversions",
		}
		if file == "" {
			file = "saved_csv/ai_max_search_terms.csv"
		}
	default:
		return domain.NewConfigurationError("unknown report type %q", ac.reportType)
	}

	table, err := report.FetchTable(ctx, client, ac.customerID, query, fields)
	if err != nil {
		return err
	}

	return report.NewRenderer(ac.deps.Output).CSV(table, file)
}
