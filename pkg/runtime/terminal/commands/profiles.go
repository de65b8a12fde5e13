package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/spf13/cobra"
)

type profilesCmd struct {
	deps Deps

	credentialsPath string
}

// NewProfilesCmd lists the account profiles defined in an INI credentials
// file.
func NewProfilesCmd(deps Deps) *cobra.Command {
	pc := &profilesCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List account profiles from a credentials file",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.credentialsPath, "credentials", "", "Path to the INI credentials file")
	_ = cmd.MarkFlagRequired("credentials")

	return cmd
}

func (pc *profilesCmd) run(cmd *cobra.Command, args []string) error {
	registry, err := ads.NewRegistry(pc.credentialsPath)
	if err != nil {
		return fmt.Errorf("failed to read credentials file: %w", err)
	}

	profiles, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		_, err := fmt.Fprintf(pc.deps.Output, "No profiles found in %s\n", pc.credentialsPath)
		return err
	}

	_, err = fmt.Fprintf(pc.deps.Output, "Profiles in %s:\n%s\n",
		pc.credentialsPath, strings.Join(profiles, "\n"))
	return err
}
