// Package mover quotes moving trucks and moving-help crews. A best-effort
// vendor page scraper sits in front of a deterministic static estimator.
package mover

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/model"
)

const (
	truckPath      = "/Truck-Rentals/"
	movingHelpPath = "/MovingHelp/"
)

// Scraper fetches vendor quote pages and extracts priced options. Vendor
// pages shift often, so every parse failure surfaces as a typed error the
// caller can fall back from.
type Scraper struct {
	client  *http.Client
	baseURL string
}

// NewScraper builds a scraper against the vendor site. An empty baseURL
// targets the production site.
func NewScraper(baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = "https://www.uhaul.com"
	}
	return &Scraper{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ScrapeTrucks fetches the truck rate page for a pickup/dropoff pair and
// parses the equipment list into priced options.
func (s *Scraper) ScrapeTrucks(ctx context.Context, pickup, dropoff, date string) ([]model.TruckOption, error) {
	doc, err := s.fetch(ctx, truckPath, url.Values{
		"pickup":  {pickup},
		"dropoff": {dropoff},
		"date":    {date},
	})
	if err != nil {
		return nil, err
	}

	list := doc.Find("#equipmentList")
	if list.Length() == 0 {
		return nil, fmt.Errorf("%w: equipment list not found", common.ErrPageLayoutChanged)
	}

	var options []model.TruckOption
	list.Find("li").Each(func(_ int, card *goquery.Selection) {
		truckType := strings.TrimSpace(card.Find("h3").First().Text())
		if truckType == "" {
			return
		}

		price := card.Find("dl dd b").First()
		if price.Length() == 0 {
			price = card.Find("b").FilterFunction(func(_ int, sel *goquery.Selection) bool {
				return strings.Contains(sel.Text(), "$")
			}).First()
		}
		rate, ok := parseDollars(price.Text())
		if !ok {
			return
		}

		options = append(options, model.TruckOption{
			TruckType: truckType,
			BaseRate:  rate,
			Total:     rate,
		})
	})
	return options, nil
}

// ScrapeMovingHelp fetches the moving-help results page and parses the
// provider cards.
func (s *Scraper) ScrapeMovingHelp(ctx context.Context, loading, unloading, loadDate, unloadDate string) ([]model.HelpProvider, error) {
	doc, err := s.fetch(ctx, movingHelpPath, url.Values{
		"loading":       {loading},
		"unloading":     {unloading},
		"loadingDate":   {loadDate},
		"unloadingDate": {unloadDate},
	})
	if err != nil {
		return nil, err
	}

	list := doc.Find("#movingHelperResults")
	if list.Length() == 0 {
		return nil, fmt.Errorf("%w: helper results not found", common.ErrPageLayoutChanged)
	}

	var providers []model.HelpProvider
	list.Find("ul li").Each(func(_ int, card *goquery.Selection) {
		name := strings.TrimSpace(card.Find("h3").First().Text())
		if name == "" {
			name = strings.TrimSpace(card.Find("h2").First().Text())
		}
		if name == "" {
			return
		}

		price := card.Find("*").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return sel.Children().Length() == 0 && strings.Contains(sel.Text(), "$")
		}).First()
		total, ok := parseDollars(price.Text())
		if !ok {
			return
		}

		providers = append(providers, model.HelpProvider{
			Name:  name,
			Total: total,
		})
	})
	return providers, nil
}

func (s *Scraper) fetch(ctx context.Context, path string, params url.Values) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (WhatsTheMove)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote page: %w", err)
	}

	// Retrying a captcha page only digs the hole deeper.
	if text := doc.Find("main p").First().Text(); strings.Contains(strings.ToLower(text), "captcha") {
		return nil, &common.RetryableError{Err: common.ErrCaptcha, Retryable: false}
	}
	return doc, nil
}

// parseDollars extracts the leading dollar amount from text like "$520" or
// "$1,083.00 estimated".
func parseDollars(text string) (float64, bool) {
	i := strings.IndexByte(text, '$')
	if i < 0 {
		return 0, false
	}
	text = text[i+1:]

	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
			continue
		}
		if r == ',' {
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
