package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type campaignCreateExperimentCmd struct {
	deps Deps

	profilePath string
	customerID  string
	campaignID  string
	draftName   string
}

func newCampaignCreateExperimentCmd(deps Deps) *cobra.Command {
	ec := &campaignCreateExperimentCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "create-experiment",
		Short: "Run a campaign change as a 50/50 traffic experiment",
		Long: "Creates a SEARCH_CUSTOM experiment over the campaign, splits traffic evenly\n" +
			"between the original campaign and a draft copy, renames the draft, and\n" +
			"schedules the experiment.",
		RunE: ec.run,
	}

	cmd.Flags().StringVar(&ec.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&ec.customerID, "customer-id", "", "Customer ID owning the campaign")
	cmd.Flags().StringVar(&ec.campaignID, "campaign-id", "", "Campaign to experiment on")
	cmd.Flags().StringVar(&ec.draftName, "draft-name", "", "Name for the draft campaign; generated when omitted")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("campaign-id")

	return cmd
}

func (ec *campaignCreateExperimentCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	mutator, err := ec.deps.Clients.Mutate(ec.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	searcher, err := ec.deps.Clients.Search(ec.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	experimentResults, err := mutator.Mutate(ctx, ec.customerID, "experiments", []ads.Operation{{
		"create": map[string]any{
			"name":   fmt.Sprintf("Campaign Version Test Experiment #%s", uuid.NewString()),
			"type":   "SEARCH_CUSTOM",
			"suffix": "[experiment]",
			"status": "SETUP",
		},
	}})
	if err != nil {
		return err
	}
	experimentResource, err := firstResourceName(experimentResults, "experiments")
	if err != nil {
		return err
	}
	fmt.Fprintf(ec.deps.Output, "Created experiment with resource name %s\n", experimentResource)

	campaignResource := fmt.Sprintf("customers/%s/campaigns/%s", ec.customerID, ec.campaignID)
	_, err = mutator.Mutate(ctx, ec.customerID, "experimentArms", []ads.Operation{
		{
			"create": map[string]any{
				"control":      true,
				"campaigns":    []string{campaignResource},
				"experiment":   experimentResource,
				"name":         "Control Arm (Original Campaign)",
				"trafficSplit": 50,
			},
		},
		{
			"create": map[string]any{
				"control":      false,
				"experiment":   experimentResource,
				"name":         "Treatment Arm (New Version)",
				"trafficSplit": 50,
			},
		},
	})
	if err != nil {
		return err
	}

	draftCampaign, err := findDraftCampaign(ctx, searcher, ec.customerID, experimentResource)
	if err != nil {
		return err
	}
	fmt.Fprintf(ec.deps.Output, "Draft campaign for the treatment arm is %s\n", draftCampaign)

	draftName := ec.draftName
	if draftName == "" {
		draftName = fmt.Sprintf("New Version Campaign Name #%s", uuid.NewString())
	}
	_, err = mutator.Mutate(ctx, ec.customerID, "campaigns", []ads.Operation{{
		"update": map[string]any{
			"resourceName": draftCampaign,
			"name":         draftName,
		},
		"updateMask": "name",
	}})
	if err != nil {
		return err
	}
	fmt.Fprintf(ec.deps.Output, "Updated draft campaign name to %q\n", draftName)

	fmt.Fprintf(ec.deps.Output, "Scheduling experiment with resource name %s...\n", experimentResource)
	if err := mutator.ScheduleExperiment(ctx, experimentResource); err != nil {
		return err
	}
	_, err = fmt.Fprintln(ec.deps.Output, "Experiment scheduled successfully.")
	return err
}

// findDraftCampaign resolves the in-design campaign the platform created for
// the treatment arm. Arm creation responses carry only resource names, so the
// draft has to be read back.
func findDraftCampaign(ctx context.Context, client ads.SearchClient, customerID, experimentResource string) (string, error) {
	query := fmt.Sprintf("SELECT experiment_arm.in_design_campaigns FROM experiment_arm"+
		" WHERE experiment_arm.experiment = '%s' AND experiment_arm.control = FALSE", experimentResource)

	stream, err := client.SearchStream(ctx, customerID, query)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	for {
		batch, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		for _, row := range batch.Results {
			v, ok := row.Get("experiment_arm.in_design_campaigns")
			if !ok {
				continue
			}
			campaigns, _ := v.([]any)
			for _, c := range campaigns {
				if name, ok := c.(string); ok && name != "" {
					return name, nil
				}
			}
		}
	}
	return "", fmt.Errorf("experiment %s has no in-design campaign for its treatment arm", experimentResource)
}
