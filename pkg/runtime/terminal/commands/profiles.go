package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/area-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	profilesPath string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List run profiles from an ini file",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilesPath, "profiles", "", "Path to an ini file of run profiles")
	_ = cmd.MarkFlagRequired("profiles")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	registry, err := config.NewRegistry(pc.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	profiles, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in: %s\n", pc.profilesPath)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profiles in %s:\n%s\n",
		pc.profilesPath,
		strings.Join(profiles, "\n"))

	return nil
}
