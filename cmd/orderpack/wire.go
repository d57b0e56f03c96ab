package main

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/orderpack/internal/adapters/driven/archive"
	"github.com/custodia-labs/orderpack/internal/adapters/driven/config/file"
	"github.com/custodia-labs/orderpack/internal/adapters/driven/httpclient"
	"github.com/custodia-labs/orderpack/internal/adapters/driven/sink"
	"github.com/custodia-labs/orderpack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/orderpack/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/orderpack/internal/adapters/driving/cli"
	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
	"github.com/custodia-labs/orderpack/internal/core/services"
	"github.com/custodia-labs/orderpack/internal/logger"
)

// application holds the wired services and the resources they own.
type application struct {
	Services cli.Services
	store    *sqlite.Store
}

// Close releases the history database.
func (a *application) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Warn("Closing history store: %v", err)
		}
	}
}

// wire builds the services. An empty home uses ~/.orderpack.
func wire(home string) (*application, error) {
	configDir, dataDir := "", ""
	if home != "" {
		configDir = home
		dataDir = filepath.Join(home, "data")
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("Using default settings: %v", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	transport := httpclient.New(httpclient.Config{
		UserAgent: settings.Transport.UserAgent,
		Cookie:    settings.Transport.Cookie,
		Limiter:   httpclient.NewRateLimiter(settings.Transport.RequestsPerSecond),
	})

	orchestrator := services.NewBatchOrchestrator(services.NewFetchUnit(transport))
	assembler := services.NewArchiveAssembler(archive.NewZipWriter(), settings.Archive.Collision)

	app := &application{}
	var runStore driven.RunStore
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("History unavailable, runs will not persist: %v", err)
		runStore = memory.NewRunStore()
	} else {
		app.store = store
		runStore = store.RunStore()
	}

	downloadService := services.NewDownloadService(
		orchestrator,
		assembler,
		sink.NewDir(""),
		settingsService,
		runStore,
	).WithSinkFactory(func(dir string) driven.OutputSink {
		return sink.NewDir(dir)
	})

	app.Services = cli.Services{
		Download:      downloadService,
		Settings:      settingsService,
		History:       services.NewHistoryService(runStore),
		PageTransport: transport,
	}
	return app, nil
}
