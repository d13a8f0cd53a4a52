// Package jobs fetches job posting pages and classifies them into
// structured postings with an LLM.
package jobs

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// maxPageChars caps the amount of page text handed to the classifier.
const maxPageChars = 12000

const fetchUserAgent = "Mozilla/5.0 (WhatsTheMove Job Inspector)"

// Fetcher retrieves a job posting page and reduces it to plain text.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a fetcher with a sensible request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// PageText fetches the URL and returns its visible text, readability-cleaned
// when possible, capped at maxPageChars.
func (f *Fetcher) PageText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	// Prefer the readability extraction; job boards bury the posting in
	// chrome that the raw text walk drags along.
	if html, err := doc.Html(); err == nil {
		if article, err := readability.FromReader(strings.NewReader(html), req.URL); err == nil {
			if text := collapseText(article.TextContent); text != "" {
				return capText(text), nil
			}
		}
	}

	doc.Find("script, style, noscript").Remove()
	return capText(collapseText(doc.Text())), nil
}

// collapseText trims every line and drops blank ones.
func collapseText(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func capText(text string) string {
	if len(text) > maxPageChars {
		return text[:maxPageChars]
	}
	return text
}
