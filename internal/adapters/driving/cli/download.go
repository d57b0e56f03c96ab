package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderpack/internal/adapters/driven/source"
	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
	"github.com/custodia-labs/orderpack/internal/core/ports/driving"
)

var (
	downloadFromFile    string
	downloadFromHTML    string
	downloadSelector    string
	downloadName        string
	downloadOut         string
	downloadRateLimited bool
	downloadMaxParallel int
	downloadDelayMs     int
)

var downloadCmd = &cobra.Command{
	Use:   "download [locator...]",
	Short: "Download files into a single archive",
	Long: `Fetches every locator once and packages the results into <name>.zip.

Locators come from the arguments, from a file with one locator per line
(--from-file, "-" for stdin), and from the download links of an order page
(--from-html, a saved file or a URL). Duplicates are fetched once.

Batch flags override the stored settings for this run only:
  --rate-limited   fetch in batches with a pause between them
  --max-parallel   batch size in rate-limited mode (1-20)
  --delay-ms       pause between batches in milliseconds (0-99999)`,
	RunE: runDownload,
}

func init() {
	flags := downloadCmd.Flags()
	flags.StringVarP(&downloadFromFile, "from-file", "f", "", "read locators from a file, one per line")
	flags.StringVar(&downloadFromHTML, "from-html", "", "extract download links from an order page (path or URL)")
	flags.StringVar(&downloadSelector, "selector", source.DefaultDownloadSelector, "CSS selector for download links in --from-html")
	flags.StringVarP(&downloadName, "name", "n", "", "archive name (default: product name from the page)")
	flags.StringVarP(&downloadOut, "out", "o", "", "directory to write the archive to")
	flags.BoolVar(&downloadRateLimited, "rate-limited", false, "fetch in batches")
	flags.IntVar(&downloadMaxParallel, "max-parallel", domain.DefaultMaxParallel, "batch size in rate-limited mode")
	flags.IntVar(&downloadDelayMs, "delay-ms", domain.DefaultInterBatchDelayMs, "pause between batches in milliseconds")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if downloadService == nil {
		return errors.New("download service not configured")
	}

	req, err := buildDownloadRequest(cmd, args)
	if err != nil {
		return err
	}

	progress := newProgressReporter(cmd.OutOrStdout(), effectivePolicy(req).RateLimited)
	report, err := downloadService.DownloadAll(cmd.Context(), req, progress.Update)
	progress.Finish()

	printReport(cmd, report)
	return err
}

func buildDownloadRequest(cmd *cobra.Command, args []string) (driving.DownloadRequest, error) {
	var sources source.Multi
	var names driven.NameProvider

	if len(args) > 0 {
		sources = append(sources, source.Static(args))
	}
	if downloadFromFile != "" {
		sources = append(sources, source.NewLinesFile(downloadFromFile))
	}
	if downloadFromHTML != "" {
		page := openPage(downloadFromHTML, downloadSelector)
		sources = append(sources, page)
		names = page
	}
	if len(sources) == 0 {
		return driving.DownloadRequest{}, errors.New("nothing to download: pass locators, --from-file or --from-html")
	}
	if downloadName != "" {
		names = source.FixedName(downloadName)
	}

	req := driving.DownloadRequest{
		Source:    sources,
		Names:     names,
		OutputDir: downloadOut,
	}

	flags := cmd.Flags()
	if flags.Changed("rate-limited") || flags.Changed("max-parallel") || flags.Changed("delay-ms") {
		policy := storedPolicy()
		if flags.Changed("rate-limited") {
			policy.RateLimited = downloadRateLimited
		}
		if flags.Changed("max-parallel") {
			policy.MaxParallel = downloadMaxParallel
		}
		if flags.Changed("delay-ms") {
			policy.InterBatchDelayMs = downloadDelayMs
		}
		req.Policy = &policy
	}
	return req, nil
}

func openPage(location, selector string) *source.HTMLPage {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return source.NewHTMLURL(pageTransport, location, selector)
	}
	return source.NewHTMLFile(location, selector)
}

// storedPolicy returns the configured batch policy, or the default.
func storedPolicy() domain.BatchPolicy {
	if settingsService == nil {
		return domain.DefaultBatchPolicy()
	}
	settings, err := settingsService.Get()
	if err != nil || settings == nil {
		return domain.DefaultBatchPolicy()
	}
	return settings.Batch
}

func effectivePolicy(req driving.DownloadRequest) domain.BatchPolicy {
	if req.Policy != nil {
		return req.Policy.Normalize()
	}
	return storedPolicy()
}

func printReport(cmd *cobra.Command, report *domain.RunReport) {
	if report == nil {
		return
	}
	if report.Result != nil && len(report.Result.Failures) > 0 && report.Status != domain.StatusCancelled {
		for _, f := range report.Result.Failures {
			cmd.Println(mutedStyle.Render("  ✗ " + f.Locator + ": " + f.Reason()))
		}
	}
	cmd.Println(renderStatus(report))
	if report.ArchivePath != "" {
		cmd.Println(mutedStyle.Render("  Saved to " + report.ArchivePath))
	}
}
