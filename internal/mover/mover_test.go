package mover

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsthemove/moveplan/internal/common"
)

const truckPage = `<html><body><main>
	<h1>Truck rentals for Madison, WI to Seattle, WA on 06/01/2026</h1>
	<ul id="equipmentList">
		<li>
			<h3>10-foot truck</h3>
			<dl><dd><b>$670</b></dd></dl>
		</li>
		<li>
			<h3>15-foot truck</h3>
			<dl><dd><b>$1,083.00 estimated</b></dd></dl>
		</li>
		<li>
			<h3>Cargo van</h3>
			<p>Call for rates</p>
		</li>
	</ul>
</main></body></html>`

const helperPage = `<html><body><main>
	<div id="movingHelperResults">
		<ul>
			<li><h3>QuickMove Helpers</h3><span>$220</span></li>
			<li><h2>College Movers Co.</h2><span>$310</span></li>
			<li><h3>No Price Crew</h3><span>Call us</span></li>
		</ul>
	</div>
</main></body></html>`

const captchaPage = `<html><body><main><div><div><div><div><div><div>
	<p>Please complete the CAPTCHA to continue.</p>
</div></div></div></div></div></div></main></body></html>`

func newVendorStub(t *testing.T, truckBody, helperBody string) *Scraper {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case truckPath:
			fmt.Fprint(w, truckBody)
		case movingHelpPath:
			fmt.Fprint(w, helperBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return NewScraper(srv.URL)
}

func TestScrapeTrucks(t *testing.T) {
	s := newVendorStub(t, truckPage, helperPage)

	options, err := s.ScrapeTrucks(context.Background(), "Madison, WI", "Seattle, WA", "06/01/2026")
	require.NoError(t, err)

	// The unpriced cargo van card is dropped.
	require.Len(t, options, 2)
	assert.Equal(t, "10-foot truck", options[0].TruckType)
	assert.InDelta(t, 670, options[0].Total, 1e-9)
	assert.Equal(t, "15-foot truck", options[1].TruckType)
	assert.InDelta(t, 1083, options[1].Total, 1e-9)
}

func TestScrapeMovingHelp(t *testing.T) {
	s := newVendorStub(t, truckPage, helperPage)

	providers, err := s.ScrapeMovingHelp(context.Background(),
		"Madison, WI", "Seattle, WA", "06/01/2026", "06/02/2026")
	require.NoError(t, err)

	require.Len(t, providers, 2)
	assert.Equal(t, "QuickMove Helpers", providers[0].Name)
	assert.InDelta(t, 220, providers[0].Total, 1e-9)
	assert.Equal(t, "College Movers Co.", providers[1].Name)
}

func TestScrapeCaptcha(t *testing.T) {
	s := newVendorStub(t, captchaPage, captchaPage)

	_, err := s.ScrapeTrucks(context.Background(), "a", "b", "c")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCaptcha)
}

func TestScrapeLayoutChanged(t *testing.T) {
	s := newVendorStub(t, "<html><body><main><p>hi</p></main></body></html>",
		"<html><body><main></main></body></html>")

	_, err := s.ScrapeTrucks(context.Background(), "a", "b", "c")
	assert.ErrorIs(t, err, common.ErrPageLayoutChanged)

	_, err = s.ScrapeMovingHelp(context.Background(), "a", "b", "c", "d")
	assert.ErrorIs(t, err, common.ErrPageLayoutChanged)
}

func TestParseDollars(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"$520", 520, true},
		{"$1,083.00 estimated", 1083, true},
		{"from $45/day", 45, true},
		{"Call for rates", 0, false},
		{"$", 0, false},
	}
	for _, tc := range tests {
		got, ok := parseDollars(tc.input)
		assert.Equal(t, tc.ok, ok, "input=%q", tc.input)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input=%q", tc.input)
		}
	}
}

func TestStaticEstimator(t *testing.T) {
	ctx := context.Background()
	var est StaticEstimator

	t.Run("long distance tier", func(t *testing.T) {
		options, err := est.TruckOptions(ctx, "Madison, WI", "Seattle, WA", "06/01/2026")
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.InDelta(t, 670, options[0].Total, 1e-9)
		assert.InDelta(t, 760, options[1].Total, 1e-9)
	})

	t.Run("local tier", func(t *testing.T) {
		options, err := est.TruckOptions(ctx, "Madison, WI", "madison, wi", "06/01/2026")
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.InDelta(t, 85, options[0].Total, 1e-9)
		assert.InDelta(t, 100, options[1].Total, 1e-9)
	})

	t.Run("moving help crews", func(t *testing.T) {
		providers, err := est.MovingHelpOptions(ctx, "a", "b", "c", "d")
		require.NoError(t, err)
		require.Len(t, providers, 2)
		assert.Equal(t, "QuickMove Helpers", providers[0].Name)
		assert.Equal(t, 2, providers[0].CrewSize)
		assert.InDelta(t, 310, providers[1].Total, 1e-9)
	})
}

func TestQuoterFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("nil scraper goes straight to static", func(t *testing.T) {
		q := NewQuoter(nil)
		options, err := q.TruckOptions(ctx, "Madison, WI", "Seattle, WA", "06/01/2026")
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.InDelta(t, 670, options[0].Total, 1e-9)
	})

	t.Run("captcha degrades to static", func(t *testing.T) {
		q := NewQuoter(newVendorStub(t, captchaPage, captchaPage))
		options, err := q.TruckOptions(ctx, "Madison, WI", "Seattle, WA", "06/01/2026")
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.Equal(t, "10-foot truck", options[0].TruckType)
	})

	t.Run("scraped results win when available", func(t *testing.T) {
		q := NewQuoter(newVendorStub(t, truckPage, helperPage))
		options, err := q.TruckOptions(ctx, "Madison, WI", "Seattle, WA", "06/01/2026")
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.InDelta(t, 1083, options[1].Total, 1e-9)

		providers, err := q.MovingHelpOptions(ctx, "a", "b", "c", "d")
		require.NoError(t, err)
		require.Len(t, providers, 2)
	})

	t.Run("empty scrape degrades to static", func(t *testing.T) {
		empty := `<html><body><main><ul id="equipmentList"></ul></main></body></html>`
		q := NewQuoter(newVendorStub(t, empty, helperPage))
		options, err := q.TruckOptions(ctx, "Madison, WI", "Seattle, WA", "06/01/2026")
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.InDelta(t, 670, options[0].Total, 1e-9)
	})
}
