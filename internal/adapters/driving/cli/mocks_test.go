package cli

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/orderpack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driving"
	"github.com/custodia-labs/orderpack/internal/core/services"
)

// mockDownloadService records the request and replays a canned report.
type mockDownloadService struct {
	ctx      context.Context
	req      driving.DownloadRequest
	calls    int
	report   *domain.RunReport
	err      error
	progress [][2]int
}

func (m *mockDownloadService) DownloadAll(
	ctx context.Context,
	req driving.DownloadRequest,
	onProgress domain.ProgressFunc,
) (*domain.RunReport, error) {
	m.ctx = ctx
	m.calls++
	m.req = req
	for _, p := range m.progress {
		if onProgress != nil {
			onProgress(p[0], p[1])
		}
	}
	return m.report, m.err
}

type testEnv struct {
	download *mockDownloadService
	settings *services.SettingsService
	runs     *memory.RunStore
}

// setupCLITest installs test services and returns a cleanup.
func setupCLITest() (*testEnv, func()) {
	oldDownload, oldSettings, oldHistory, oldTransport := downloadService, settingsService, historyService, pageTransport

	env := &testEnv{
		download: &mockDownloadService{},
		settings: services.NewSettingsService(memory.NewConfigStore()),
		runs:     memory.NewRunStore(),
	}
	SetServices(Services{
		Download: env.download,
		Settings: env.settings,
		History:  services.NewHistoryService(env.runs),
	})

	return env, func() {
		downloadService, settingsService, historyService, pageTransport = oldDownload, oldSettings, oldHistory, oldTransport
		resetFlags()
	}
}

// resetFlags restores flag defaults between executions of rootCmd.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	downloadCmd.Flags().VisitAll(reset)
	historyCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
}

// resetContexts drops the contexts cobra keeps on commands after a run, so
// the next execution hands its own context down again.
func resetContexts(c *cobra.Command) {
	c.SetContext(nil) //nolint:staticcheck // nil means inherit from the parent
	for _, sub := range c.Commands() {
		resetContexts(sub)
	}
}

// execute runs rootCmd with args and returns combined output.
func execute(args ...string) (string, error) {
	resetContexts(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
