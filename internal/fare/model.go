// Package fare implements the air ticket cost model. It fits a base
// cost-per-mile and multiplicative adjustment factors from a DB1B-style
// historical ticket dataset and prices flights for arbitrary distances.
package fare

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/model"
)

// CarrierNames maps reporting-carrier codes to display names for the top 8
// carriers by passengers carried.
var CarrierNames = map[string]string{
	"HA": "Hawaiian Airlines",
	"WN": "Southwest Airlines",
	"AS": "Alaska Airlines",
	"UA": "United Airlines",
	"B6": "JetBlue Airways",
	"DL": "Delta Air Lines",
	"AA": "American Airlines",
	"F9": "Frontier Airlines",
}

// topCarrierCount limits the public carrier multiplier table.
const topCarrierCount = 8

// Model holds the fitted fare multipliers. It is immutable after
// construction and safe for concurrent reads.
type Model struct {
	baseCPM     float64
	carrierMult map[string]float64 // top carriers only
	distMult    map[int]float64
	tripMult    map[int]float64
	topCarriers []string // ranked by passengers, descending
}

// Snapshot is a structured view of all fitted multipliers.
type Snapshot struct {
	BaseCPM                 float64            `json:"BaseCPM"`
	CarrierMultiplier       map[string]float64 `json:"CarrierMultiplier"`
	DistanceGroupMultiplier map[int]float64    `json:"DistanceGroupMultiplier"`
	RoundTripMultiplier     map[int]float64    `json:"RoundTripMultiplier"`
}

// Load reads the ticket dataset and fits the model. Construction fails when
// the dataset is missing required columns or has no valid records left after
// filtering; a model fitted on zero records is undefined and must not be used.
func Load(path string) (*Model, error) {
	records, err := readTicketCSV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket dataset: %w", err)
	}
	return fit(records)
}

// fit derives the base CPM and multiplier maps from valid records.
func fit(records []model.TicketRecord) (*Model, error) {
	var valid []model.TicketRecord
	for _, r := range records {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("ticket dataset: %w", common.ErrEmptyDataset)
	}

	yields := make([]float64, len(valid))
	for i, r := range valid {
		yields[i] = r.Yield
	}
	base := median(yields)

	m := &Model{
		baseCPM:  base,
		distMult: make(map[int]float64),
		tripMult: make(map[int]float64),
	}

	carrierFull := groupMultiplier(valid, base, func(r model.TicketRecord) string { return r.Carrier })

	for k, v := range groupMultiplier(valid, base, func(r model.TicketRecord) int { return r.DistanceGroup }) {
		m.distMult[k] = v
	}
	for k, v := range groupMultiplier(valid, base, func(r model.TicketRecord) int { return r.RoundTrip }) {
		m.tripMult[k] = v
	}

	// Rank carriers by total passengers; only the top 8 are exposed in the
	// public multiplier table, though every carrier contributed to the
	// bucket and trip statistics above.
	passengers := make(map[string]float64)
	for _, r := range valid {
		passengers[r.Carrier] += r.Passengers
	}
	ranked := make([]string, 0, len(passengers))
	for c := range passengers {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if passengers[ranked[i]] != passengers[ranked[j]] {
			return passengers[ranked[i]] > passengers[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > topCarrierCount {
		ranked = ranked[:topCarrierCount]
	}
	m.topCarriers = ranked

	m.carrierMult = make(map[string]float64, len(ranked))
	for _, c := range ranked {
		m.carrierMult[c] = carrierFull[c]
	}

	slog.Info("fitted fare model",
		"records", len(valid),
		"base_cpm", base,
		"top_carriers", ranked)

	return m, nil
}

// BaseCPM returns the base cost per mile in dollars.
func (m *Model) BaseCPM() float64 {
	return m.baseCPM
}

// TopCarriers returns the carrier codes exposed by the model, ranked by
// total passengers carried.
func (m *Model) TopCarriers() []string {
	out := make([]string, len(m.topCarriers))
	copy(out, m.topCarriers)
	return out
}

// DistanceBucket maps a distance in miles to its 500-mile band: bucket 1
// covers 0-499 miles, bucket 2 covers 500-999, and so on.
func DistanceBucket(miles float64) int {
	if miles <= 0 {
		return 1
	}
	return int(miles)/500 + 1
}

// PriceEstimate prices a trip of the given distance on the given carrier:
// base CPM adjusted by the distance-band and carrier multipliers, with the
// round-trip multiplier applied for round trips. Unknown carriers, buckets
// or trip types fall back to a neutral 1.0 multiplier, never an error.
func (m *Model) PriceEstimate(miles float64, carrier string, roundTrip bool) float64 {
	perMile := m.pricePerMile(DistanceBucket(miles), carrier)
	trip := 0
	if roundTrip {
		trip = 1
	}
	if tripMult, ok := m.tripMult[trip]; ok {
		perMile *= tripMult
	}
	return perMile * miles
}

func (m *Model) pricePerMile(bucket int, carrier string) float64 {
	distMult, ok := m.distMult[bucket]
	if !ok {
		distMult = 1.0
	}
	carrierMult, ok := m.carrierMult[carrier]
	if !ok {
		carrierMult = 1.0
	}
	return m.baseCPM * distMult * carrierMult
}

// Multipliers returns a snapshot of all fitted multipliers.
func (m *Model) Multipliers() Snapshot {
	s := Snapshot{
		BaseCPM:                 m.baseCPM,
		CarrierMultiplier:       make(map[string]float64, len(m.carrierMult)),
		DistanceGroupMultiplier: make(map[int]float64, len(m.distMult)),
		RoundTripMultiplier:     make(map[int]float64, len(m.tripMult)),
	}
	for k, v := range m.carrierMult {
		s.CarrierMultiplier[k] = v
	}
	for k, v := range m.distMult {
		s.DistanceGroupMultiplier[k] = v
	}
	for k, v := range m.tripMult {
		s.RoundTripMultiplier[k] = v
	}
	return s
}

// Band is the per-carrier price per mile for one 500-mile distance band.
type Band struct {
	Label         string             // e.g. "500-999"
	PricePerMile  map[string]float64 // keyed by carrier display name
	DistanceGroup int
}

// PriceBands estimates price-per-mile for each 500-mile band up to
// maxDistance miles, for each of the top carriers.
func (m *Model) PriceBands(maxDistance int) []Band {
	groups := 1
	if maxDistance > 1 {
		groups = (maxDistance-1)/500 + 1
	}

	bands := make([]Band, 0, groups)
	for g := 1; g <= groups; g++ {
		band := Band{
			Label:         fmt.Sprintf("%d-%d", (g-1)*500, g*500-1),
			DistanceGroup: g,
			PricePerMile:  make(map[string]float64, len(m.topCarriers)),
		}
		for _, code := range m.topCarriers {
			name, ok := CarrierNames[code]
			if !ok {
				name = code
			}
			band.PricePerMile[name] = m.pricePerMile(g, code)
		}
		bands = append(bands, band)
	}
	return bands
}
