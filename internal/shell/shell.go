// Package shell runs the interactive read-eval-print loop. Each input line
// is split into argv and dispatched through a freshly built command tree.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/config"
)

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Shell drives the interactive loop. newRoot builds a fresh command tree
// for every line.
type Shell struct {
	newRoot func() *cobra.Command
}

func New(newRoot func() *cobra.Command) *Shell {
	return &Shell{newRoot: newRoot}
}

// prompt shows the binary name plus the effective profile or region, e.g.
// "stratus [staging]> "
func prompt() string {
	label := config.EffectiveProfile("")
	if label == "" {
		label = config.EffectiveRegion("")
	}
	return fmt.Sprintf("stratus [%s]> ", label)
}

// Run reads lines until exit, quit, or EOF. Ctrl-C aborts the current line
// without leaving the shell.
func (s *Shell) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := config.GetHistoryPath()
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	fmt.Println(bannerStyle.Render("stratus interactive shell"))
	fmt.Println(hintStyle.Render("Type 'exit' or 'quit' to leave."))

	for {
		input, err := line.Prompt(prompt())
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}
		line.AppendHistory(input)

		args, err := Split(input)
		if err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			continue
		}
		if args[0] == "shell" || args[0] == "repl" {
			fmt.Println("Already in an interactive session")
			continue
		}

		root := s.newRoot()
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
		}
	}

	s.saveHistory(line, historyPath)
	return nil
}

func (s *Shell) saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(config.GetConfigDir(), 0755); err != nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
