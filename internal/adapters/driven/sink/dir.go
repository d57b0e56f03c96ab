// Package sink persists finished archives.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
)

// Ensure Dir implements the interface.
var _ driven.OutputSink = (*Dir)(nil)

// Dir writes archives into a directory. An existing file of the same name
// is replaced atomically.
type Dir struct {
	path string
}

// NewDir creates a sink for path. Empty means the current directory.
func NewDir(path string) *Dir {
	if path == "" {
		path = "."
	}
	return &Dir{path: path}
}

// Path returns the target directory.
func (d *Dir) Path() string {
	return d.path
}

// Save writes data to <dir>/<filename> via a temporary file and rename.
func (d *Dir) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid archive name %q", filename)
	}

	if err := os.MkdirAll(d.path, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.path, "."+filename+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing archive: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("setting archive permissions: %w", err)
	}

	target := filepath.Join(d.path, filename)
	if err := os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("moving archive into place: %w", err)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return target, nil
	}
	return abs, nil
}
