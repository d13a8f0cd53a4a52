package mover

import (
	"context"
	"strings"

	"github.com/whatsthemove/moveplan/internal/model"
)

// StaticEstimator serves deterministic demo quotes. It stands in for the
// scraper when scraping is disabled or failing.
type StaticEstimator struct{}

// StaticNote flags estimates produced by the static path.
const StaticNote = "Demo cost estimates (static). Not live prices."

func longDistanceTruckOptions() []model.TruckOption {
	return []model.TruckOption{
		{TruckType: "10-foot truck", BaseRate: 450, MileageFees: 220, Total: 670},
		{TruckType: "15-foot truck", BaseRate: 520, MileageFees: 240, Total: 760},
	}
}

func localTruckOptions() []model.TruckOption {
	return []model.TruckOption{
		{TruckType: "10-foot truck", BaseRate: 45, MileageFees: 40, Total: 85},
		{TruckType: "15-foot truck", BaseRate: 55, MileageFees: 45, Total: 100},
	}
}

// TruckOptions returns tiered truck quotes. Any move between two different
// cities is priced at the long-distance tier.
func (StaticEstimator) TruckOptions(_ context.Context, pickup, dropoff, _ string) ([]model.TruckOption, error) {
	if strings.EqualFold(strings.TrimSpace(pickup), strings.TrimSpace(dropoff)) {
		return localTruckOptions(), nil
	}
	return longDistanceTruckOptions(), nil
}

// MovingHelpOptions returns two demo crews.
func (StaticEstimator) MovingHelpOptions(_ context.Context, _, _, _, _ string) ([]model.HelpProvider, error) {
	return []model.HelpProvider{
		{Name: "QuickMove Helpers", Hours: 2, CrewSize: 2, Total: 220},
		{Name: "College Movers Co.", Hours: 3, CrewSize: 2, Total: 310},
	}, nil
}
