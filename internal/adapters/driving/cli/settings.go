package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the stored download settings.

Settings apply to every run unless overridden by download flags.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  rate-limited         true or false
  max-parallel         batch size in rate-limited mode (1-20)
  delay-ms             pause between batches in milliseconds (0-99999)
  collision            overwrite or suffix
  output-dir           directory archives are written to
  user-agent           User-Agent header for requests
  cookie               Cookie header for requests
  requests-per-second  request rate cap, 0 for none`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(titleStyle.Render("Current Settings"))
	cmd.Println()

	cmd.Println("[Batch]")
	cmd.Printf("  Rate limited: %t\n", settings.Batch.RateLimited)
	cmd.Printf("  Max parallel: %d\n", settings.Batch.MaxParallel)
	cmd.Printf("  Inter-batch delay: %d ms\n", settings.Batch.InterBatchDelayMs)
	cmd.Println()

	cmd.Println("[Archive]")
	cmd.Printf("  Collision: %s\n", settings.Archive.Collision.Description())
	outputDir := settings.Archive.OutputDir
	if outputDir == "" {
		outputDir = "(current directory)"
	}
	cmd.Printf("  Output directory: %s\n", outputDir)
	cmd.Println()

	cmd.Println("[Transport]")
	cmd.Printf("  User agent: %s\n", settings.Transport.UserAgent)
	if settings.Transport.Cookie != "" {
		cmd.Printf("  Cookie: %s\n", maskSecret(settings.Transport.Cookie))
	} else {
		cmd.Println("  Cookie: (not set)")
	}
	if settings.Transport.RequestsPerSecond > 0 {
		cmd.Printf("  Requests per second: %d\n", settings.Transport.RequestsPerSecond)
	} else {
		cmd.Println("  Requests per second: unlimited")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.SetValue(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w\nvalid keys: %s", err, strings.Join(services.SettingNames, ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}

// maskSecret masks a secret for display, showing first and last 4 characters.
func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
