package driven

import (
	"io"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

// ArchiveWriter encodes entries into an uncompressed ZIP container.
type ArchiveWriter interface {
	// Write encodes entries to w in order. Entry names are used as-is.
	Write(w io.Writer, entries []domain.ArchiveEntry) error
}
