package commands

import (
	"github.com/spf13/cobra"
)

// NewReportCmd groups the report fetching commands.
func NewReportCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch and render reports",
	}

	cmd.AddCommand(newReportRunCmd(deps))
	cmd.AddCommand(newReportParallelCmd(deps))
	cmd.AddCommand(newReportDisapprovedCmd(deps))
	cmd.AddCommand(newReportAIMaxCmd(deps))
	cmd.AddCommand(newReportSharedSetsCmd(deps))
	cmd.AddCommand(newReportPmaxCmd(deps))
	cmd.AddCommand(newReportChangeHistoryCmd(deps))
	cmd.AddCommand(newReportHistoryCmd(deps))

	return cmd
}
