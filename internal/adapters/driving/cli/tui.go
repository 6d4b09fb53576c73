package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/itsharex/ReFast-sub000/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive launcher window",
	Long: `Launch the interactive terminal launcher.

Type to search; results stream in as each source reports.

Controls:
  ↑/↓    - Navigate results
  Enter  - Launch selection
  Esc    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if searchController == nil {
		return errors.New("search controller not configured")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the launcher window requires an interactive terminal")
	}

	// Panic recovery keeps a crash from eating the stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	return tui.Run(searchController)
}
