package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/session"
	"github.com/vietdv277/stratus/internal/shell"
)

func newShellCmd(store *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:     "shell",
		Aliases: []string{"repl"},
		Short:   "Start an interactive session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the shell rebuilds the command tree per line so flag state
			// from one command never leaks into the next
			sh := shell.New(func() *cobra.Command {
				return NewRootCmd(store)
			})
			return sh.Run()
		},
	}
}
