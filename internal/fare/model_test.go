package fare

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsthemove/moveplan/internal/common"
)

const ticketHeader = "REPORTING_CARRIER,ITIN_YIELD,MILES_FLOWN,ITIN_FARE,PASSENGERS,DISTANCE_GROUP,ROUNDTRIP,DOLLAR_CRED,BULK_FARE,ITIN_GEO_TYPE,ONLINE"

// ticketRow renders a valid one-way ticket row unless overridden.
func ticketRow(carrier string, yield float64, passengers float64) string {
	miles := 400.0
	return fmt.Sprintf("%s,%g,%g,%g,%g,1,0,1,0,1,1", carrier, yield, miles, yield*miles, passengers)
}

func writeTicketCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.csv")
	content := ticketHeader + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDistanceBucket(t *testing.T) {
	tests := []struct {
		miles float64
		want  int
	}{
		{0, 1},
		{1, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{5999, 12},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DistanceBucket(tc.miles), "miles=%v", tc.miles)
	}
}

func TestLoadSingleRecord(t *testing.T) {
	m, err := Load(writeTicketCSV(t, ticketRow("DL", 0.25, 10)))
	require.NoError(t, err)

	// With one valid record the base CPM is that record's yield exactly and
	// every multiplier is neutral.
	assert.InDelta(t, 0.25, m.BaseCPM(), 1e-12)
	assert.InDelta(t, 0.25*800, m.PriceEstimate(800, "DL", false), 1e-9)
}

func TestLoadEmptyDataset(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		_, err := Load(writeTicketCSV(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEmptyDataset)
	})

	t.Run("all rows filtered out", func(t *testing.T) {
		// Bulk fares fail the validity flags.
		row := "DL,0.25,400,100,1,1,0,1,1,1,1"
		_, err := Load(writeTicketCSV(t, row))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEmptyDataset)
	})
}

func TestLoadMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.csv")
	require.NoError(t, os.WriteFile(path, []byte("REPORTING_CARRIER,ITIN_YIELD\nDL,0.25\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingColumn)
}

func TestValidityFiltering(t *testing.T) {
	// One valid row plus one row failing each flag; only the valid row and
	// its yield should shape the model.
	rows := []string{
		ticketRow("DL", 0.30, 5),
		"DL,0.90,400,360,1,1,0,0,0,1,1", // no dollar credibility
		"DL,0.90,400,360,1,1,0,1,1,1,1", // bulk fare
		"DL,0.90,400,0,1,1,0,1,0,1,1",   // non-positive fare
		"DL,0.90,0,360,1,1,0,1,0,1,1",   // zero miles
		"DL,0.90,400,360,1,1,0,1,0,2,1", // international itinerary
		"DL,0.90,400,360,1,1,0,1,0,1,0", // not ticketed online
		"DL,not-a-number,400,360,1,1,0,1,0,1,1",
	}
	m, err := Load(writeTicketCSV(t, rows...))
	require.NoError(t, err)
	assert.InDelta(t, 0.30, m.BaseCPM(), 1e-12)
}

func TestUnknownCarrierIsNeutral(t *testing.T) {
	m, err := Load(writeTicketCSV(t, ticketRow("AA", 0.20, 10)))
	require.NoError(t, err)

	// Unknown carrier code falls back to a 1.0 multiplier, not an error.
	assert.InDelta(t, 0.20*100, m.PriceEstimate(100, "ZZ", false), 1e-9)
}

func TestCarrierMultipliers(t *testing.T) {
	m, err := Load(writeTicketCSV(t,
		ticketRow("AA", 0.20, 10),
		ticketRow("AA", 0.20, 10),
		ticketRow("DL", 0.40, 20),
		ticketRow("DL", 0.40, 20),
	))
	require.NoError(t, err)

	// Median yield over {0.2, 0.2, 0.4, 0.4} is 0.3.
	require.InDelta(t, 0.30, m.BaseCPM(), 1e-12)

	snap := m.Multipliers()
	assert.InDelta(t, 0.20/0.30, snap.CarrierMultiplier["AA"], 1e-12)
	assert.InDelta(t, 0.40/0.30, snap.CarrierMultiplier["DL"], 1e-12)
	assert.InDelta(t, 1.0, snap.RoundTripMultiplier[0], 1e-12)

	// DL carried more passengers, so it ranks first.
	assert.Equal(t, []string{"DL", "AA"}, m.TopCarriers())
}

func TestTopCarrierRestriction(t *testing.T) {
	rows := make([]string, 0, 9)
	for i := 1; i <= 9; i++ {
		rows = append(rows, ticketRow(fmt.Sprintf("C%d", i), 0.25, float64(10-i)))
	}
	m, err := Load(writeTicketCSV(t, rows...))
	require.NoError(t, err)

	snap := m.Multipliers()
	assert.Len(t, snap.CarrierMultiplier, 8)
	// C9 carried the fewest passengers and is not exposed.
	assert.NotContains(t, snap.CarrierMultiplier, "C9")
	assert.Len(t, m.TopCarriers(), 8)
}

func TestRoundTripMultiplier(t *testing.T) {
	oneWay := ticketRow("DL", 0.20, 10)
	roundTrip := "DL,0.40,400,160,10,1,1,1,0,1,1"
	m, err := Load(writeTicketCSV(t, oneWay, roundTrip))
	require.NoError(t, err)

	// base = median{0.2, 0.4} = 0.3. Both rows share the carrier and the
	// distance group, so those multipliers are neutral; the trip-type
	// multipliers are 0.2/0.3 (one-way) and 0.4/0.3 (round-trip).
	base := 0.3
	got := m.PriceEstimate(100, "DL", true)
	assert.InDelta(t, base*(0.4/base)*100, got, 1e-9)
	assert.InDelta(t, base*(0.2/base)*100, m.PriceEstimate(100, "DL", false), 1e-9)
	assert.Greater(t, got, m.PriceEstimate(100, "DL", false))
}

func TestPriceBands(t *testing.T) {
	m, err := Load(writeTicketCSV(t, ticketRow("DL", 0.25, 10)))
	require.NoError(t, err)

	bands := m.PriceBands(1000)
	require.Len(t, bands, 2)
	assert.Equal(t, "0-499", bands[0].Label)
	assert.Equal(t, "500-999", bands[1].Label)

	// Single-record model: every multiplier neutral, so the per-mile price
	// is the base CPM for the known bucket and for fallback buckets alike.
	assert.InDelta(t, 0.25, bands[0].PricePerMile["Delta Air Lines"], 1e-12)
	assert.InDelta(t, 0.25, bands[1].PricePerMile["Delta Air Lines"], 1e-12)
}
