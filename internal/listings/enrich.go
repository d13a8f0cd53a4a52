package listings

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/service"
)

// Enricher fills missing listing websites using the Google Custom Search
// API: the top result for "<address> apartments for rent".
type Enricher struct {
	svc   *customsearch.Service
	cseID string
	retry service.RetryOptions
}

// NewEnricher builds an enricher from an API key and a custom search
// engine id.
func NewEnricher(ctx context.Context, apiKey, cseID string) (*Enricher, error) {
	if apiKey == "" || cseID == "" {
		return nil, fmt.Errorf("%w: search API key and engine id are required", common.ErrMissingConfig)
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &Enricher{
		svc:   svc,
		cseID: cseID,
		retry: service.RetryOptions{MaxAttempts: 3},
	}, nil
}

// WebsiteFor returns the top search result URL for an address, or an empty
// string when the search yields nothing.
func (e *Enricher) WebsiteFor(ctx context.Context, formattedAddress string) (string, error) {
	if formattedAddress == "" {
		return "", nil
	}

	query := formattedAddress + " apartments for rent"

	var link string
	err := common.WithRetry(ctx, func() error {
		resp, err := e.svc.Cse.List().Cx(e.cseID).Q(query).Num(1).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("search request failed: %w", err)
		}
		if len(resp.Items) > 0 {
			link = resp.Items[0].Link
		}
		return nil
	}, e.retry)
	if err != nil {
		return "", err
	}
	return link, nil
}

// FillMissingWebsites looks up every listing without a website and stores
// the top search result. Individual search failures are logged and skipped;
// enrichment is best-effort.
func (s *Store) FillMissingWebsites(ctx context.Context, e *Enricher) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, formatted_address
		FROM listings
		WHERE listing_website IS NULL OR listing_website = ''`)
	if err != nil {
		return 0, fmt.Errorf("failed to query unenriched listings: %w", err)
	}

	type pending struct{ id, address string }
	var work []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.address); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("failed to scan listing: %w", err)
		}
		work = append(work, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, fmt.Errorf("error iterating listings: %w", err)
	}
	_ = rows.Close()

	updated := 0
	for _, p := range work {
		website, err := e.WebsiteFor(ctx, p.address)
		if err != nil {
			common.LogError(err, "listing enrichment failed", common.Fields{"id": p.id})
			continue
		}
		if website == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx,
			`UPDATE listings SET listing_website = ? WHERE id = ?`, website, p.id); err != nil {
			return updated, fmt.Errorf("failed to update listing %s: %w", p.id, err)
		}
		updated++
	}

	slog.Info("enriched listings", "updated", updated, "candidates", len(work))
	return updated, nil
}
