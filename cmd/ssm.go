package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
)

func newSSMCmd(store *session.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssm",
		Short: "SSM Parameter Store",
	}
	cmd.AddCommand(
		newSSMDescribeParametersCmd(store),
		newSSMGetParameterCmd(store),
		newSSMPutParameterCmd(store),
		newSSMDeleteParameterCmd(store),
	)
	return cmd
}

func newSSMDescribeParametersCmd(store *session.Store) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "describe-parameters",
		Short: "List parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			parameters, err := client.ListParameters(store.Resolve(prefix))
			if err != nil {
				return reportErr(cmd, err)
			}
			if len(parameters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No parameters found")
				return nil
			}
			rows := [][]string{{"Name", "Type", "Version", "Last Modified"}}
			for _, p := range parameters {
				rows = append(rows, []string{
					p.Name, p.Type, strconv.FormatInt(p.Version, 10),
					p.Modified.Format(format.ShortTimeLayout),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Restrict to names under a prefix")
	return cmd
}

func newSSMGetParameterCmd(store *session.Store) *cobra.Command {
	var withDecryption bool
	cmd := &cobra.Command{
		Use:   "get-parameter NAME",
		Short: "Show a parameter and its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			parameter, err := client.GetParameter(store.Resolve(args[0]), withDecryption)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.KeyValue([][2]string{
				{"Name", parameter.Name},
				{"Type", parameter.Type},
				{"Value", parameter.Value},
				{"Version", strconv.FormatInt(parameter.Version, 10)},
				{"Last Modified", parameter.Modified.Format(format.TimeLayout)},
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withDecryption, "with-decryption", false, "Decrypt SecureString values")
	return cmd
}

func newSSMPutParameterCmd(store *session.Store) *cobra.Command {
	var paramType string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "put-parameter NAME VALUE",
		Short: "Store a parameter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			version, err := client.PutParameter(
				name, store.Resolve(args[1]), store.Resolve(paramType), overwrite)
			if err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Parameter stored: %s (version %d)\n", name, version)
			return nil
		},
	}
	cmd.Flags().StringVar(&paramType, "type", "String", "String, StringList, or SecureString")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing parameter")
	return cmd
}

func newSSMDeleteParameterCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-parameter NAME",
		Short: "Delete a parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			name := store.Resolve(args[0])
			if err := client.DeleteParameter(name); err != nil {
				return reportErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Parameter deleted: %s\n", name)
			return nil
		},
	}
}
