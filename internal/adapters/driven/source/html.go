package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
)

const (
	// DefaultDownloadSelector matches the download anchors of an order page.
	DefaultDownloadSelector = `a[href^="https://booth.pm/downloadables/"]`

	// ProductNameSelector matches the anchor whose text names the product.
	ProductNameSelector = `a.nav[href*="/items/"]`
)

// Ensure HTMLPage implements both interfaces.
var (
	_ driven.LocatorSource = (*HTMLPage)(nil)
	_ driven.NameProvider  = (*HTMLPage)(nil)
)

// HTMLPage extracts locators and the product label from an order page.
// The page is loaded and parsed once and shared by both methods.
type HTMLPage struct {
	open     func(ctx context.Context) (io.ReadCloser, error)
	selector string

	mu  sync.Mutex
	doc *goquery.Document
}

// NewHTMLFile reads a saved page from disk.
func NewHTMLFile(path, selector string) *HTMLPage {
	return newHTMLPage(func(context.Context) (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening page: %w", err)
		}
		return f, nil
	}, selector)
}

// NewHTMLURL fetches the page through transport, so the configured cookie
// and user agent apply.
func NewHTMLURL(transport driven.Transport, url, selector string) *HTMLPage {
	return newHTMLPage(func(ctx context.Context) (io.ReadCloser, error) {
		if transport == nil {
			return nil, fmt.Errorf("fetching page: no transport configured")
		}
		resp, err := transport.Get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetching page: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching page: HTTP %d", resp.StatusCode)
		}
		return resp.Body, nil
	}, selector)
}

// NewHTMLReader parses a page from r.
func NewHTMLReader(r io.Reader, selector string) *HTMLPage {
	return newHTMLPage(func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}, selector)
}

func newHTMLPage(open func(context.Context) (io.ReadCloser, error), selector string) *HTMLPage {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultDownloadSelector
	}
	return &HTMLPage{open: open, selector: selector}
}

// Locators returns the href of every matching anchor in document order.
func (p *HTMLPage) Locators(ctx context.Context) ([]string, error) {
	doc, err := p.document(ctx)
	if err != nil {
		return nil, err
	}

	var out []string
	doc.Find(p.selector).Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			if href = strings.TrimSpace(href); href != "" {
				out = append(out, href)
			}
		}
	})
	return out, nil
}

// Name returns the trimmed text of the first product anchor, or "" when
// the page has none.
func (p *HTMLPage) Name(ctx context.Context) (string, error) {
	doc, err := p.document(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Find(ProductNameSelector).First().Text()), nil
}

func (p *HTMLPage) document(ctx context.Context) (*goquery.Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc != nil {
		return p.doc, nil
	}

	rc, err := p.open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	doc, err := goquery.NewDocumentFromReader(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	p.doc = doc
	return doc, nil
}
