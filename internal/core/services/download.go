package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
	"github.com/custodia-labs/orderpack/internal/core/ports/driving"
	"github.com/custodia-labs/orderpack/internal/logger"
)

// Ensure DownloadService implements the interface.
var _ driving.DownloadService = (*DownloadService)(nil)

// DownloadService runs the full pipeline for one order: discover, fetch,
// package, save and record.
type DownloadService struct {
	runner    driving.BatchRunner
	assembler *ArchiveAssembler
	sink      driven.OutputSink
	settings  driving.SettingsService
	runStore  driven.RunStore
	newSink   func(dir string) driven.OutputSink
	now       func() time.Time
	newID     func() string
}

// NewDownloadService creates a new download service.
// runStore is optional - if nil, runs are not recorded.
func NewDownloadService(
	runner driving.BatchRunner,
	assembler *ArchiveAssembler,
	sink driven.OutputSink,
	settings driving.SettingsService,
	runStore driven.RunStore,
) *DownloadService {
	return &DownloadService{
		runner:    runner,
		assembler: assembler,
		sink:      sink,
		settings:  settings,
		runStore:  runStore,
		now:       time.Now,
		newID:     newRunID,
	}
}

// WithSinkFactory makes the service open a sink per run for the request's
// output directory, falling back to the configured one. The fixed sink is
// used when neither names a directory.
func (s *DownloadService) WithSinkFactory(newSink func(dir string) driven.OutputSink) *DownloadService {
	s.newSink = newSink
	return s
}

// DownloadAll executes one run and reports its terminal state.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *DownloadService) DownloadAll(
	ctx context.Context,
	req driving.DownloadRequest,
	onProgress domain.ProgressFunc,
) (*domain.RunReport, error) {
	report := &domain.RunReport{StartedAt: s.now()}
	defer func() { report.EndedAt = s.now() }()

	if s.runner == nil || s.assembler == nil || (s.sink == nil && s.newSink == nil) {
		report.Status = domain.StatusArchiveFailed
		report.Err = fmt.Errorf("download service: %w", domain.ErrNotConfigured)
		return report, report.Err
	}

	// 1. Discover and dedupe locators
	locators, err := s.locators(ctx, req)
	if err != nil {
		report.Status = domain.StatusNoLocators
		report.Err = err
		return report, err
	}
	locators = domain.Dedupe(locators)
	if len(locators) == 0 {
		logger.Info("No downloadable items found")
		report.Status = domain.StatusNoLocators
		return report, nil
	}

	// 2. Resolve label and load the policy once
	report.Label = domain.SanitizeLabel(s.label(ctx, req))
	settings := s.loadSettings()
	policy := settings.Batch
	if req.Policy != nil {
		policy = req.Policy.Normalize()
	}
	report.RunID = s.newID()

	logger.Section("Download " + report.Label)

	// 3. Fetch
	result, err := s.runner.Run(ctx, locators, policy, onProgress)
	report.Result = result
	if err != nil {
		if ctx.Err() != nil {
			report.Status = domain.StatusCancelled
		} else {
			report.Status = domain.StatusAllFailed
		}
		report.Err = err
		s.record(ctx, report, policy)
		return report, err
	}

	// 4. Nothing to package
	if result.SuccessCount() == 0 {
		report.Status = domain.StatusAllFailed
		report.Err = fmt.Errorf("%w: %d of %d failed", domain.ErrAllFetchesFailed, result.FailureCount(), result.TotalCount)
		logger.Error("Failed to download any of %d files", result.TotalCount)
		s.record(ctx, report, policy)
		return report, report.Err
	}

	// 5. Assemble
	archive, err := s.assembler.AssembleAt(result.Successes, settings.Archive.Collision, report.StartedAt)
	if err != nil {
		return s.archiveFailed(ctx, report, policy, err)
	}

	// 6. Save
	sink := s.sinkFor(req.OutputDir, settings.Archive.OutputDir)
	path, err := sink.Save(ctx, report.ArchiveName(), archive)
	if err != nil {
		return s.archiveFailed(ctx, report, policy, fmt.Errorf("save archive: %w", err))
	}
	report.ArchivePath = path
	report.ArchiveBytes = len(archive)

	// 7. Terminal state
	if result.FailureCount() > 0 {
		report.Status = domain.StatusPartial
		logger.Warn("%d of %d files failed to download", result.FailureCount(), result.TotalCount)
	} else {
		report.Status = domain.StatusComplete
	}
	logger.Info("Saved %s (%d bytes)", path, len(archive))

	// 8. Record
	s.record(ctx, report, policy)
	return report, nil
}

func (s *DownloadService) locators(ctx context.Context, req driving.DownloadRequest) ([]string, error) {
	if len(req.Locators) > 0 || req.Source == nil {
		return req.Locators, nil
	}
	locators, err := req.Source.Locators(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover locators: %w", err)
	}
	return locators, nil
}

// label returns the raw label. Name provider errors fall back to the default.
func (s *DownloadService) label(ctx context.Context, req driving.DownloadRequest) string {
	if req.Label != "" || req.Names == nil {
		return req.Label
	}
	name, err := req.Names.Name(ctx)
	if err != nil {
		logger.Warn("Could not read archive name: %v", err)
		return ""
	}
	return name
}

func (s *DownloadService) sinkFor(override, configured string) driven.OutputSink {
	dir := override
	if dir == "" {
		dir = configured
	}
	if s.newSink == nil || (dir == "" && s.sink != nil) {
		return s.sink
	}
	return s.newSink(dir)
}

func (s *DownloadService) loadSettings() domain.AppSettings {
	if s.settings == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := s.settings.Get()
	if err != nil || settings == nil {
		logger.Warn("Using default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *settings
}

func (s *DownloadService) archiveFailed(
	ctx context.Context,
	report *domain.RunReport,
	policy domain.BatchPolicy,
	cause error,
) (*domain.RunReport, error) {
	report.Status = domain.StatusArchiveFailed
	report.Err = &domain.ArchiveError{Successes: report.Result.SuccessCount(), Cause: cause}
	logger.Error("%v", report.Err)
	s.record(ctx, report, policy)
	return report, report.Err
}

// record saves a history entry. Failures are logged, never returned.
func (s *DownloadService) record(ctx context.Context, report *domain.RunReport, policy domain.BatchPolicy) {
	if s.runStore == nil {
		return
	}
	report.EndedAt = s.now()
	run := domain.NewRunRecord(report, policy)
	// Cancelled runs are still recorded.
	if err := s.runStore.Save(context.WithoutCancel(ctx), &run); err != nil {
		logger.Warn("Failed to record run %s: %v", report.RunID, err)
	}
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
