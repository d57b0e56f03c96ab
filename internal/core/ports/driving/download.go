package driving

import (
	"context"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

// DownloadRequest describes one download run.
type DownloadRequest struct {
	// Locators to fetch. When empty, Source is consulted.
	Locators []string

	// Source discovers locators when Locators is empty. May be nil.
	Source LocatorDiscoverer

	// Label is the raw archive name. When empty, Names is consulted.
	Label string

	// Names supplies the label when Label is empty. May be nil.
	Names LabelProvider

	// Policy overrides the configured batch policy when non-nil.
	Policy *domain.BatchPolicy

	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
}

// LocatorDiscoverer discovers locators for a request.
type LocatorDiscoverer interface {
	Locators(ctx context.Context) ([]string, error)
}

// LabelProvider supplies a request label.
type LabelProvider interface {
	Name(ctx context.Context) (string, error)
}

// DownloadService runs the full fetch, package and save pipeline.
type DownloadService interface {
	// DownloadAll executes one run. onProgress may be nil. The report is
	// never nil. The error is nil for complete, partial and no-locator runs.
	DownloadAll(ctx context.Context, req DownloadRequest, onProgress domain.ProgressFunc) (*domain.RunReport, error)
}
