package commands

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/spf13/cobra"
)

// NewCampaignCmd groups the campaign mutation commands. Every mutation is a
// single best-effort call; failures surface as RequestError and are not
// retried.
func NewCampaignCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Create and modify campaigns",
	}

	cmd.AddCommand(newCampaignCreateCmd(deps))
	cmd.AddCommand(newCampaignCreateExperimentCmd(deps))
	cmd.AddCommand(newCampaignTargetUserListCmd(deps))
	cmd.AddCommand(newCampaignRemoveAutoAssetsCmd(deps))

	return cmd
}

// firstResourceName guards against an empty mutate response, which the API
// returns when an operation is dropped on partial failure.
func firstResourceName(results []ads.MutateResult, service string) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("%s mutate returned no results", service)
	}
	return results[0].ResourceName, nil
}

type campaignCreateCmd struct {
	deps Deps

	profilePath   string
	customerID    string
	name          string
	budgetMicros  int64
	startDateTime string
	endDateTime   string
}

func newCampaignCreateCmd(deps Deps) *cobra.Command {
	cc := &campaignCreateCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a paused search campaign with a budget and schedule",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&cc.customerID, "customer-id", "", "Customer ID to create the campaign under")
	cmd.Flags().StringVar(&cc.name, "name", "", "Campaign name")
	cmd.Flags().Int64Var(&cc.budgetMicros, "budget-micros", 500000, "Daily budget in micros")
	cmd.Flags().StringVar(&cc.startDateTime, "start-date-time", "", "Campaign start (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&cc.endDateTime, "end-date-time", "", "Campaign end (YYYY-MM-DD HH:MM:SS)")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start-date-time")
	_ = cmd.MarkFlagRequired("end-date-time")

	return cmd
}

func (cc *campaignCreateCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := cc.deps.Clients.Mutate(cc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	budgetResults, err := client.Mutate(ctx, cc.customerID, "campaignBudgets", []ads.Operation{{
		"create": map[string]any{
			"name":           fmt.Sprintf("%s budget", cc.name),
			"deliveryMethod": "STANDARD",
			"amountMicros":   cc.budgetMicros,
		},
	}})
	if err != nil {
		return err
	}
	budgetResource, err := firstResourceName(budgetResults, "campaignBudgets")
	if err != nil {
		return err
	}
	fmt.Fprintf(cc.deps.Output, "Created budget %s\n", budgetResource)

	campaignResults, err := client.Mutate(ctx, cc.customerID, "campaigns", []ads.Operation{{
		"create": map[string]any{
			"name":                   cc.name,
			"status":                 "PAUSED",
			"advertisingChannelType": "SEARCH",
			"manualCpc":              map[string]any{},
			"campaignBudget":         budgetResource,
			"startDateTime":          cc.startDateTime,
			"endDateTime":            cc.endDateTime,
		},
	}})
	if err != nil {
		return err
	}
	campaignResource, err := firstResourceName(campaignResults, "campaigns")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cc.deps.Output, "Created campaign %s\n", campaignResource)
	return err
}

type campaignTargetUserListCmd struct {
	deps Deps

	profilePath string
	customerID  string
	campaignID  string
	userListID  string
}

func newCampaignTargetUserListCmd(deps Deps) *cobra.Command {
	tc := &campaignTargetUserListCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "target-user-list",
		Short: "Target a campaign at a user list",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&tc.customerID, "customer-id", "", "Customer ID owning the campaign")
	cmd.Flags().StringVar(&tc.campaignID, "campaign-id", "", "Campaign to target")
	cmd.Flags().StringVar(&tc.userListID, "user-list-id", "", "User list to target")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("campaign-id")
	_ = cmd.MarkFlagRequired("user-list-id")

	return cmd
}

func (tc *campaignTargetUserListCmd) run(cmd *cobra.Command, args []string) error {
	client, err := tc.deps.Clients.Mutate(tc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	results, err := client.Mutate(cmd.Context(), tc.customerID, "campaignCriteria", []ads.Operation{{
		"create": map[string]any{
			"campaign": fmt.Sprintf("customers/%s/campaigns/%s", tc.customerID, tc.campaignID),
			"userList": map[string]any{
				"userList": fmt.Sprintf("customers/%s/userLists/%s", tc.customerID, tc.userListID),
			},
		},
	}})
	if err != nil {
		return err
	}
	criterionResource, err := firstResourceName(results, "campaignCriteria")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(tc.deps.Output, "Created campaign criterion %s\n", criterionResource)
	return err
}

type campaignRemoveAutoAssetsCmd struct {
	deps Deps

	profilePath   string
	customerID    string
	campaignID    string
	assetResource string
	fieldType     string
}

func newCampaignRemoveAutoAssetsCmd(deps Deps) *cobra.Command {
	rc := &campaignRemoveAutoAssetsCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "remove-auto-assets",
		Short: "Remove an automatically created asset from a campaign",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the credentials profile")
	cmd.Flags().StringVar(&rc.customerID, "customer-id", "", "Customer ID owning the campaign")
	cmd.Flags().StringVar(&rc.campaignID, "campaign-id", "", "Campaign the asset is attached to")
	cmd.Flags().StringVar(&rc.assetResource, "asset", "", "Asset resource name to remove")
	cmd.Flags().StringVar(&rc.fieldType, "field-type", "HEADLINE", "Asset field type")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("campaign-id")
	_ = cmd.MarkFlagRequired("asset")

	return cmd
}

func (rc *campaignRemoveAutoAssetsCmd) run(cmd *cobra.Command, args []string) error {
	client, err := rc.deps.Clients.Mutate(rc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	_, err = client.Mutate(cmd.Context(), rc.customerID, "automaticallyCreatedAssetsRemoval", []ads.Operation{{
		"campaign":  fmt.Sprintf("customers/%s/campaigns/%s", rc.customerID, rc.campaignID),
		"asset":     rc.assetResource,
		"fieldType": rc.fieldType,
	}})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(rc.deps.Output, "Removed asset %s from campaign %s\n", rc.assetResource, rc.campaignID)
	return err
}
