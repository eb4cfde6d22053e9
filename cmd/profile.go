package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/ui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Select the AWS profile to use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileInteractive(cmd)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List available AWS profiles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProfileList(cmd)
			},
		},
		&cobra.Command{
			Use:   "set NAME",
			Short: "Set the active AWS profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProfileSet(cmd, args[0])
			},
		},
	)
	return cmd
}

func runProfileInteractive(cmd *cobra.Command) error {
	profiles, err := aws.ListProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No AWS profiles found")
		fmt.Fprintln(cmd.OutOrStdout(), "Create profiles in ~/.aws/credentials or ~/.aws/config")
		return nil
	}

	active := config.EffectiveProfile(flagProfile(cmd))
	selected, err := ui.SelectProfile(profiles, active)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}
	return applyProfile(cmd, selected.Name)
}

func runProfileList(cmd *cobra.Command) error {
	profiles, err := aws.ListProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No AWS profiles found")
		fmt.Fprintln(cmd.OutOrStdout(), "Create profiles in ~/.aws/credentials or ~/.aws/config")
		return nil
	}
	ui.PrintProfileTable(profiles, config.EffectiveProfile(flagProfile(cmd)))
	return nil
}

func runProfileSet(cmd *cobra.Command, name string) error {
	if !aws.ValidateProfile(name) {
		return fmt.Errorf("profile %q not found in ~/.aws/credentials or ~/.aws/config", name)
	}
	return applyProfile(cmd, name)
}

func applyProfile(cmd *cobra.Command, name string) error {
	if err := config.SetProfile(name); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Profile set to: %s\n", name)
	fmt.Fprintf(out, "Saved to: %s\n", config.GetConfigPath())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To use this profile in your current shell, run:")
	fmt.Fprintf(out, "  export AWS_PROFILE=%s\n", name)
	return nil
}
