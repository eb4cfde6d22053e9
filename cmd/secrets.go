package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
)

func newSecretsCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Secrets Manager",
	}
	cmd.AddCommand(
		newSecretsListCmd(store),
		newSecretsGetValueCmd(store),
		newSecretsCreateCmd(store),
		newSecretsDeleteCmd(store),
	)
	return cmd
}

func newSecretsListCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list-secrets",
		Short: "List secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			secrets, err := client.ListSecrets()
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(secrets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No secrets found")
				return nil
			}
			rows := [][]string{{"Name", "Description", "Last Changed"}}
			for _, s := range secrets {
				changed := "-"
				if !s.UpdatedAt.IsZero() {
					changed = s.UpdatedAt.Format(format.ShortTimeLayout)
				}
				rows = append(rows, []string{s.Name, dash(s.Description), changed})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newSecretsGetValueCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get-secret-value SECRET_NAME",
		Short: "Show a secret's value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			secret, err := client.GetSecretValue(store.Resolve(args[0]))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue([][2]string{
				{"Name", secret.Name},
				{"ARN", secret.ARN},
				{"Version", secret.Version},
				{"Value", secret.Value},
			}))
			return nil
		},
	}
}

func newSecretsCreateCmd(store *session.Store) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create-secret SECRET_NAME SECRET_VALUE",
		Short: "Create a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			arn, err := client.CreateSecret(
				store.Resolve(args[0]), store.Resolve(args[1]), store.Resolve(description))
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Secret created: %s\n", arn)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Secret description")
	return cmd
}

func newSecretsDeleteCmd(store *session.Store) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete-secret SECRET_NAME",
		Short: "Delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.DeleteSecret(name, force); err != nil {
				return reportErr(cmd, err)
			}
			if force {
				fmt.Fprintf(cmd.OutOrStdout(), "Secret deleted: %s\n", name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Secret scheduled for deletion: %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Delete immediately without a recovery window")
	return cmd
}
