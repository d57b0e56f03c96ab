// Package archive encodes archive entries as store-only ZIP files.
package archive

import (
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
)

// Ensure ZipWriter implements the interface.
var _ driven.ArchiveWriter = (*ZipWriter)(nil)

// ZipWriter writes entries uncompressed (method Store). Payloads are
// usually already compressed, so deflating them again only costs time.
// Zip64 records are emitted automatically for entries over 4 GiB.
type ZipWriter struct {
	now func() time.Time
}

// NewZipWriter creates a store-only ZIP writer.
func NewZipWriter() *ZipWriter {
	return &ZipWriter{now: time.Now}
}

// Write encodes entries to w in order. Entries without a timestamp are
// stamped with the current time.
func (z *ZipWriter) Write(w io.Writer, entries []domain.ArchiveEntry) error {
	zw := zip.NewWriter(w)

	for _, entry := range entries {
		modified := entry.Modified
		if modified.IsZero() {
			modified = z.now()
		}

		header := &zip.FileHeader{
			Name:     entry.Name,
			Method:   zip.Store,
			Modified: modified,
		}
		header.SetMode(0644)

		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("creating entry %q: %w", entry.Name, err)
		}
		if _, err := fw.Write(entry.Data); err != nil {
			return fmt.Errorf("writing entry %q: %w", entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}
