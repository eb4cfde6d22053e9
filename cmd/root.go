package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/session"
)

// NewRootCmd builds the full command tree. The shell rebuilds the tree for
// every input line so flag state never leaks between commands, which is why
// everything hangs off a constructor instead of package-level vars.
func NewRootCmd(store *session.Store) *cobra.Command {
	root := &cobra.Command{
		Use:   "stratus",
		Short: "Interactive AWS shell with session variables",
		Long: `Stratus is an AWS command shell. Run commands one-shot from your
terminal, or start an interactive session with 'stratus shell' where
results can be captured into session variables and referenced as $NAME
in later commands.

Examples:
  stratus ec2 describe-instances
  stratus s3 ls s3://my-bucket/logs/
  stratus shell`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("profile", "p", "", "AWS profile to use")
	root.PersistentFlags().StringP("region", "r", "", "AWS region to use")
	viper.SetEnvPrefix("STRATUS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("profile", root.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("region", root.PersistentFlags().Lookup("region"))

	root.AddCommand(newSetCmd(store))
	root.AddCommand(newGetCmd(store))
	root.AddCommand(newVarsCmd(store))
	root.AddCommand(newUnsetCmd(store))
	root.AddCommand(newClearVarsCmd(store))
	root.AddCommand(newExportCmd(store))
	root.AddCommand(newEchoCmd(store))

	root.AddCommand(newEC2Cmd(store))
	root.AddCommand(newS3Cmd(store))
	root.AddCommand(newSTSCmd(store))
	root.AddCommand(newConfigureCmd())
	root.AddCommand(newIAMCmd(store))
	root.AddCommand(newEKSCmd(store))
	root.AddCommand(newECSCmd(store))
	root.AddCommand(newASGCmd(store))
	root.AddCommand(newELBCmd(store))
	root.AddCommand(newSSMCmd(store))
	root.AddCommand(newSecretsCmd(store))

	root.AddCommand(newProfileCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newShellCmd(store))

	return root
}

// Execute runs the one-shot CLI entry point
func Execute() {
	store := session.NewStore()
	root := NewRootCmd(store)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// flagProfile reads the persistent --profile flag, falling back to the
// STRATUS_PROFILE environment binding
func flagProfile(cmd *cobra.Command) string {
	if p, err := cmd.Root().PersistentFlags().GetString("profile"); err == nil && p != "" {
		return p
	}
	return viper.GetString("profile")
}

// flagRegion reads the persistent --region flag, falling back to the
// STRATUS_REGION environment binding
func flagRegion(cmd *cobra.Command) string {
	if r, err := cmd.Root().PersistentFlags().GetString("region"); err == nil && r != "" {
		return r
	}
	return viper.GetString("region")
}

// newClient builds an AWS client using the profile and region chains:
// flag > saved config > AWS_PROFILE for the profile, and flag > AWS_REGION >
// AWS_DEFAULT_REGION > saved config > us-east-2 for the region
func newClient(cmd *cobra.Command) (*aws.Client, error) {
	return aws.NewClient(cmd.Context(),
		aws.WithProfile(config.EffectiveProfile(flagProfile(cmd))),
		aws.WithRegion(config.EffectiveRegion(flagRegion(cmd))),
	)
}

// reportErr prints an AWS failure to the command output and swallows the
// error so an interactive session keeps running after a failed call
func reportErr(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
	return nil
}

// splitList splits a comma-separated flag value into trimmed entries
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// dash substitutes "-" for empty table cells
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// na substitutes "N/A" for empty values in key/value output
func na(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
