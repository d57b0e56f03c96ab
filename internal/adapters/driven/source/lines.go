package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
)

var _ driven.LocatorSource = (*Lines)(nil)

// Lines reads one locator per line. Blank lines and lines starting with
// '#' are skipped.
type Lines struct {
	path   string
	reader io.Reader
}

// NewLinesFile reads locators from the file at path. "-" reads stdin.
func NewLinesFile(path string) *Lines {
	return &Lines{path: path}
}

// NewLinesReader reads locators from r. The reader is consumed once.
func NewLinesReader(r io.Reader) *Lines {
	return &Lines{reader: r}
}

// Locators returns the locators in file order.
func (l *Lines) Locators(ctx context.Context) ([]string, error) {
	r := l.reader
	switch {
	case r != nil:
	case l.path == "-":
		r = os.Stdin
	default:
		f, err := os.Open(l.path)
		if err != nil {
			return nil, fmt.Errorf("opening locator file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading locators: %w", err)
	}
	return out, nil
}
