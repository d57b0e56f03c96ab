// Package cli implements the orderpack command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
	"github.com/custodia-labs/orderpack/internal/core/ports/driving"
	"github.com/custodia-labs/orderpack/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Set by SetServices before Execute.
var (
	downloadService driving.DownloadService
	settingsService driving.SettingsService
	historyService  driving.HistoryService

	// pageTransport fetches order pages given by URL to --from-html.
	pageTransport driven.Transport
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "orderpack",
	Short: "Download every file of an order into one archive",
	Long: `orderpack fetches a list of download links concurrently, optionally in
rate-limited batches, and packages the results into a single ZIP archive.

Links can be given as arguments, read from a file, or extracted from a
saved or fetched order page.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print diagnostic logging")
}

// Services bundles the application services the commands depend on.
type Services struct {
	Download      driving.DownloadService
	Settings      driving.SettingsService
	History       driving.HistoryService
	PageTransport driven.Transport
}

// SetServices installs the services used by the commands.
func SetServices(s Services) {
	downloadService = s.Download
	settingsService = s.Settings
	historyService = s.History
	pageTransport = s.PageTransport
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Cancelling ctx cancels a running download.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
