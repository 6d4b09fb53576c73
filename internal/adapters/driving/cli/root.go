// Package cli provides the command-line interface for the launcher.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/itsharex/ReFast-sub000/internal/core/ports/driving"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// searchController is the wired search pipeline. Commands check for nil
// so the package stays testable without a full composition root.
var searchController driving.SearchController

// verbose enables debug logging.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "refast",
	Short: "A fast application and file launcher",
	Long: `ReFast searches installed applications, recent files, notes,
plugins, and the full-volume file index from a single query box,
ranking everything by match quality and usage.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetSearchController injects the wired pipeline before Execute.
func SetSearchController(controller driving.SearchController) {
	searchController = controller
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
