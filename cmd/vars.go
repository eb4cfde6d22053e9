package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/format"
	"github.com/vietdv277/stratus/internal/session"
)

// setVariable stores a variable after resolving references in its value
// against what is already set. set and export share this code path.
func setVariable(cmd *cobra.Command, store *session.Store, name, value string) {
	resolved := store.Resolve(value)
	store.Set(name, resolved)
	fmt.Fprintf(cmd.OutOrStdout(), "Variable set: %s = %s\n", name, resolved)
}

func newSetCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME VALUE",
		Short: "Set a session variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setVariable(cmd, store, args[0], args[1])
			return nil
		},
	}
}

func newExportCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "export NAME VALUE",
		Short: "Set a session variable (alias of set)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setVariable(cmd, store, args[0], args[1])
			return nil
		},
	}
}

func newGetCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print a session variable's value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok := store.Get(args[0])
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Variable not found: %s\n", args[0])
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newVarsCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:     "vars",
		Aliases: []string{"variables"},
		Short:   "List all session variables",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := store.All()
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No variables set")
				return nil
			}
			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)
			rows := [][]string{{"Variable", "Value"}}
			for _, name := range names {
				rows = append(rows, []string{name, format.Truncate(all[name], 100)})
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Table(rows))
			return nil
		},
	}
}

func newUnsetCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "unset NAME",
		Short: "Remove a session variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if store.Remove(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Variable unset: %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Variable not found: %s\n", args[0])
			}
			return nil
		},
	}
}

func newClearVarsCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-vars",
		Short: "Remove all session variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := store.Clear()
			suffix := "s"
			if n == 1 {
				suffix = ""
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d variable%s\n", n, suffix)
			return nil
		},
	}
}

func newEchoCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "echo TEXT...",
		Short: "Print text with variable references resolved",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), store.Resolve(strings.Join(args, " ")))
			return nil
		},
	}
}
