package commands

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/spf13/cobra"
)

// NewConversionCmd groups the conversion capture commands.
func NewConversionCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversion",
		Short: "Capture offline conversions",
	}

	cmd.AddCommand(newConversionUploadClickCmd(deps))
	cmd.AddCommand(newConversionUploadSummaryCmd(deps))

	return cmd
}

type conversionUploadClickCmd struct {
	deps Deps

	profilePath      string
	customerID       string
	gclid            string
	conversionAction string
	dateTime         string
	value            float64
	currency         string
}

func newConversionUploadClickCmd(deps Deps) *cobra.Command {
	uc := &conversionUploadClickCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "upload-click",
		Short: "Upload a click conversion for a GCLID",
		RunE:  uc.run,
	}

	cmd.Flags().StringVar(&uc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&uc.customerID, "customer-id", "", "Customer ID the conversion belongs to")
	cmd.Flags().StringVar(&uc.gclid, "gclid", "", "Google click identifier")
	cmd.Flags().StringVar(&uc.conversionAction, "conversion-action", "", "Conversion action resource name")
	cmd.Flags().StringVar(&uc.dateTime, "date-time", "", "Conversion time (YYYY-MM-DD HH:MM:SS+HH:MM)")
	cmd.Flags().Float64Var(&uc.value, "value", 0, "Conversion value")
	cmd.Flags().StringVar(&uc.currency, "currency", "USD", "Conversion currency code")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("gclid")
	_ = cmd.MarkFlagRequired("conversion-action")
	_ = cmd.MarkFlagRequired("date-time")

	return cmd
}

func (uc *conversionUploadClickCmd) run(cmd *cobra.Command, args []string) error {
	client, err := uc.deps.Clients.Mutate(uc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	results, err := client.UploadClickConversions(cmd.Context(), uc.customerID, []ads.ClickConversion{{
		GCLID:              uc.gclid,
		ConversionAction:   uc.conversionAction,
		ConversionDateTime: uc.dateTime,
		ConversionValue:    uc.value,
		CurrencyCode:       uc.currency,
	}})
	if err != nil {
		return err
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(uc.deps.Output, "Uploaded conversion for %s\n", r.ResourceName); err != nil {
			return err
		}
	}
	return nil
}
