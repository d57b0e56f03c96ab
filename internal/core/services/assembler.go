package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
)

// ArchiveAssembler packs fetched payloads into a single store-only archive.
// It runs strictly after every fetch of a run has resolved.
type ArchiveAssembler struct {
	writer    driven.ArchiveWriter
	collision domain.CollisionPolicy
	now       func() time.Time
}

// NewArchiveAssembler creates an assembler. An invalid collision policy
// falls back to overwrite.
func NewArchiveAssembler(writer driven.ArchiveWriter, collision domain.CollisionPolicy) *ArchiveAssembler {
	if !collision.IsValid() {
		collision = domain.CollisionOverwrite
	}
	return &ArchiveAssembler{
		writer:    writer,
		collision: collision,
		now:       time.Now,
	}
}

// Assemble builds an archive holding one entry per distinct filename,
// stamped with the current time.
func (a *ArchiveAssembler) Assemble(successes []domain.Success) ([]byte, error) {
	return a.AssembleAt(successes, a.collision, a.now())
}

// AssembleAt builds an archive using the given collision policy and entry
// modification time. Zero successes produce a valid empty archive.
func (a *ArchiveAssembler) AssembleAt(
	successes []domain.Success,
	collision domain.CollisionPolicy,
	modified time.Time,
) ([]byte, error) {
	if a.writer == nil {
		return nil, fmt.Errorf("%w: archive writer %w", domain.ErrArchiveBuild, domain.ErrNotConfigured)
	}

	entries := domain.BuildEntries(successes, collision)
	for i := range entries {
		entries[i].Modified = modified
	}

	var buf bytes.Buffer
	if err := a.writer.Write(&buf, entries); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArchiveBuild, err)
	}
	return buf.Bytes(), nil
}
