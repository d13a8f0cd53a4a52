package mover

import (
	"context"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/model"
	"github.com/whatsthemove/moveplan/internal/service"
)

// Quoter answers truck and moving-help queries. When a scraper is
// configured it is tried first with retries; any scrape failure degrades
// to the static estimator so a plan is always produced.
type Quoter struct {
	scraper *Scraper
	static  StaticEstimator
	retry   service.RetryOptions
}

var (
	_ service.TruckQuoter      = (*Quoter)(nil)
	_ service.MovingHelpQuoter = (*Quoter)(nil)
)

// NewQuoter builds a quoter. A nil scraper disables scraping entirely.
func NewQuoter(scraper *Scraper) *Quoter {
	return &Quoter{
		scraper: scraper,
		retry:   service.RetryOptions{MaxAttempts: 2},
	}
}

// TruckOptions implements service.TruckQuoter.
func (q *Quoter) TruckOptions(ctx context.Context, pickup, dropoff, date string) ([]model.TruckOption, error) {
	if q.scraper == nil {
		return q.static.TruckOptions(ctx, pickup, dropoff, date)
	}

	var options []model.TruckOption
	err := common.WithRetry(ctx, func() error {
		var err error
		options, err = q.scraper.ScrapeTrucks(ctx, pickup, dropoff, date)
		return err
	}, q.retry)
	if err != nil {
		common.LogError(err, "truck scrape failed, using static estimates", common.Fields{
			"pickup":  pickup,
			"dropoff": dropoff,
		})
		return q.static.TruckOptions(ctx, pickup, dropoff, date)
	}
	if len(options) == 0 {
		return q.static.TruckOptions(ctx, pickup, dropoff, date)
	}
	return options, nil
}

// MovingHelpOptions implements service.MovingHelpQuoter.
func (q *Quoter) MovingHelpOptions(ctx context.Context, loading, unloading, loadDate, unloadDate string) ([]model.HelpProvider, error) {
	if q.scraper == nil {
		return q.static.MovingHelpOptions(ctx, loading, unloading, loadDate, unloadDate)
	}

	var providers []model.HelpProvider
	err := common.WithRetry(ctx, func() error {
		var err error
		providers, err = q.scraper.ScrapeMovingHelp(ctx, loading, unloading, loadDate, unloadDate)
		return err
	}, q.retry)
	if err != nil {
		common.LogError(err, "moving help scrape failed, using static estimates", common.Fields{
			"loading":   loading,
			"unloading": unloading,
		})
		return q.static.MovingHelpOptions(ctx, loading, unloading, loadDate, unloadDate)
	}
	if len(providers) == 0 {
		return q.static.MovingHelpOptions(ctx, loading, unloading, loadDate, unloadDate)
	}
	return providers, nil
}
