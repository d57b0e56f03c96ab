package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past download runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show details of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of runs to list")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	runs, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Status.Description(),
			fmt.Sprintf("%d/%d", run.Succeeded, run.Total),
			run.Label,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "STARTED", "STATUS", "FILES", "LABEL").
		Rows(rows...)
	cmd.Println(t.Render())
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	run, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("run %s not found", args[0])
		}
		return fmt.Errorf("failed to get run: %w", err)
	}

	cmd.Println(titleStyle.Render("Run " + run.ID))
	cmd.Printf("  Label: %s\n", run.Label)
	cmd.Println("  Status: " + statusStyle(run.Status).Render(run.Status.Description()))
	cmd.Printf("  Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("  Duration: %s\n", run.Duration().Round(time.Millisecond))
	cmd.Printf("  Files: %d of %d downloaded, %d failed\n", run.Succeeded, run.Total, run.Failed)
	cmd.Printf("  Policy: %s\n", describePolicy(run.Policy))
	if run.ArchivePath != "" {
		cmd.Printf("  Archive: %s (%d bytes)\n", run.ArchivePath, run.ArchiveBytes)
	}
	if run.Error != "" {
		cmd.Printf("  Error: %s\n", run.Error)
	}

	if len(run.Failures) > 0 {
		cmd.Println()
		cmd.Println("Failures:")
		for _, f := range run.Failures {
			cmd.Printf("  %s: %s\n", f.Locator, f.Reason)
		}
	}
	return nil
}

func describePolicy(p domain.BatchPolicy) string {
	if !p.RateLimited {
		return "unthrottled"
	}
	return "rate limited, " + strconv.Itoa(p.MaxParallel) + " per batch, " +
		strconv.Itoa(p.InterBatchDelayMs) + " ms between batches"
}
