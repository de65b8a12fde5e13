package terminal

import (
	"io"
	"os"

	"github.com/de-tools/ads-atlas/pkg/gaql"
	"github.com/de-tools/ads-atlas/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output  io.Writer
	Clock   gaql.Clock
	Clients commands.ClientFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = gaql.SystemClock
	}
	if opts.Clients == nil {
		opts.Clients = commands.DefaultClientFactory{}
	}

	deps := commands.Deps{
		Output:  opts.Output,
		Clock:   opts.Clock,
		Clients: opts.Clients,
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd(deps)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(deps commands.Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ads-atlas",
		Short: "Google Ads reporting tool",
	}

	cmd.AddCommand(commands.NewReportCmd(deps))
	cmd.AddCommand(commands.NewCampaignCmd(deps))
	cmd.AddCommand(commands.NewConversionCmd(deps))
	cmd.AddCommand(commands.NewCustomerCmd(deps))
	cmd.AddCommand(commands.NewProfilesCmd(deps))

	return cmd
}
