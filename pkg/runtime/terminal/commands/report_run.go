package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/ads-atlas/pkg/adapters"
	"github.com/de-tools/ads-atlas/pkg/gaql"
	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/de-tools/ads-atlas/pkg/store/duckdb"
	"github.com/de-tools/ads-atlas/pkg/store/duckdb/runs"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// conversionActionsFields drive the conversion actions report; the
// performance report derives its fields from the built query instead.
var conversionActionsFields = []string{
	"conversion_action.id",
	"conversion_action.name",
	"conversion_action.status",
	"conversion_action.type",
	"conversion_action.category",
	"conversion_action.owner_customer",
	"conversion_action.include_in_conversions_metric",
	"conversion_action.click_through_lookback_window_days",
	"conversion_action.view_through_lookback_window_days",
	"conversion_action.attribution_model_settings.attribution_model",
	"conversion_action.attribution_model_settings.data_driven_model_status",
}

const conversionActionsQuery = "SELECT conversion_action.id, conversion_action.name," +
	" conversion_action.status, conversion_action.type, conversion_action.category," +
	" conversion_action.owner_customer, conversion_action.include_in_conversions_metric," +
	" conversion_action.click_through_lookback_window_days," +
	" conversion_action.view_through_lookback_window_days," +
	" conversion_action.attribution_model_settings.attribution_model," +
	" conversion_action.attribution_model_settings.data_driven_model_status" +
	" FROM conversion_action"

type reportRunCmd struct {
	deps Deps

	profilePath string
	customerID  string
	reportType  string
	format      string
	file        string
	startDate   string
	endDate     string
	preset      string
	metrics     []string
	filters     []string
	orderBy     string
	limit       int
	save        bool
	dbPath      string
}

func newReportRunCmd(deps Deps) *cobra.Command {
	rc := &reportRunCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a conversion report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&rc.customerID, "customer-id", "", "Customer ID to report on")
	cmd.Flags().StringVar(&rc.reportType, "report-type", "performance", "Report type (performance or actions)")
	cmd.Flags().StringVar(&rc.format, "output", "csv", "Output format (console or csv)")
	cmd.Flags().StringVar(&rc.file, "file", "saved_csv/conversion_report.csv", "Output CSV file path")
	cmd.Flags().StringVar(&rc.startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.preset, "preset", "",
		fmt.Sprintf("Preset date range, one of %v; overrides explicit dates", gaql.Presets()))
	cmd.Flags().StringSliceVar(&rc.metrics, "metrics", []string{"conversions"},
		fmt.Sprintf("Metrics to retrieve, from %v", gaql.Metrics()))
	cmd.Flags().StringSliceVar(&rc.filters, "filters", nil,
		"Filters to apply (e.g. min_conversions=10, campaign_id=123, campaign_name_like=test)")
	cmd.Flags().StringVar(&rc.orderBy, "order-by", "", "Field to order results by (always descending)")
	cmd.Flags().IntVar(&rc.limit, "limit", 0, "Limit the number of results")
	cmd.Flags().BoolVar(&rc.save, "save", false, "Persist the run to the local report history")
	cmd.Flags().StringVar(&rc.dbPath, "db", "ads-atlas.db", "Path to the report history database")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}

func (rc *reportRunCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := rc.deps.Clients.Search(rc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	var query string
	var fieldPaths []string

	switch rc.reportType {
	case "actions":
		query = conversionActionsQuery
		fieldPaths = conversionActionsFields
	case "performance":
		dr, err := gaql.ResolveDateRange(rc.startDate, rc.endDate, rc.preset, rc.deps.Clock)
		if err != nil {
			return err
		}
		built, err := gaql.Build(gaql.Query{
			Metrics:   rc.metrics,
			Filters:   rc.filters,
			OrderBy:   rc.orderBy,
			Limit:     rc.limit,
			DateRange: &dr,
		})
		if err != nil {
			return err
		}
		query = built.Query
		fieldPaths = built.Fields
	default:
		return domain.NewConfigurationError("unknown report type %q", rc.reportType)
	}

	table, err := report.FetchTable(ctx, client, rc.customerID, query, fieldPaths)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(rc.deps.Output)
	switch rc.format {
	case "console":
		err = renderer.Console(table)
	case "csv":
		err = renderer.CSV(table, rc.file)
	default:
		return domain.NewConfigurationError("unknown output format %q", rc.format)
	}
	if err != nil {
		return err
	}

	if rc.save {
		return rc.persist(cmd, query, table)
	}
	return nil
}

func (rc *reportRunCmd) persist(cmd *cobra.Command, query string, table *domain.ReportTable) error {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: rc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open report history: %w", err)
	}
	defer db.Close()

	store, err := runs.NewStore(db)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	run, records := adapters.MapDomainTableToStoreRun(
		runID, rc.customerID, rc.reportType, query, table, time.Now().UTC())
	if err := store.Add(cmd.Context(), run, records); err != nil {
		return fmt.Errorf("failed to persist run: %w", err)
	}

	_, err = fmt.Fprintf(rc.deps.Output, "Saved run %s (%d rows)\n", runID, len(records))
	return err
}
