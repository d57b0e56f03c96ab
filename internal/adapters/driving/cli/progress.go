package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

// progressReporter shows fetch progress. On a terminal it draws a bar;
// otherwise it prints one line per completed fetch.
type progressReporter struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	rateLimited bool
	bar         *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer, rateLimited bool) *progressReporter {
	return &progressReporter{
		out:         out,
		interactive: isTerminal(out),
		rateLimited: rateLimited,
	}
}

// Update records that completed of total fetches have finished.
func (p *progressReporter) Update(completed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.interactive {
		fmt.Fprintln(p.out, domain.ProgressText(completed, total, p.rateLimited))
		return
	}

	if p.bar == nil {
		description := "Downloading"
		if p.rateLimited {
			description += " (rate limited)"
		}
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(completed)
}

// Finish clears the bar, if one was drawn.
func (p *progressReporter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
