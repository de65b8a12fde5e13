package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCustomerCmd groups the customer account commands.
func NewCustomerCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Inspect customer accounts",
	}

	cmd.AddCommand(newCustomerListAccessibleCmd(deps))

	return cmd
}

type customerListAccessibleCmd struct {
	deps Deps

	profilePath string
}

func newCustomerListAccessibleCmd(deps Deps) *cobra.Command {
	lc := &customerListAccessibleCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "list-accessible",
		Short: "List the customer accounts the credentials can act on",
		RunE:  lc.run,
	}

	cmd.Flags().StringVar(&lc.profilePath, "profile", "", "Path to the credentials profile")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (lc *customerListAccessibleCmd) run(cmd *cobra.Command, args []string) error {
	client, err := lc.deps.Clients.Accounts(lc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	names, err := client.ListAccessibleCustomers(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(lc.deps.Output, "Total results: %d\n", len(names))
	for _, name := range names {
		if _, err := fmt.Fprintf(lc.deps.Output, "Customer resource name: %q\n", name); err != nil {
			return err
		}
	}
	return nil
}
