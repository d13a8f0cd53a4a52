package ground

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/model"
)

func writeRentalCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rentals.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const rentalFixture = `location.city,vehicle.type,rate.daily
Seattle,car,40
Madison,car,60
Seattle,car,80
Seattle,suv,100
Madison,suv,
Madison,truck,120
`

func TestLoad(t *testing.T) {
	m, err := Load(writeRentalCSV(t, rentalFixture))
	require.NoError(t, err)

	t.Run("median daily rate per vehicle type", func(t *testing.T) {
		rate, err := m.DailyRate("car")
		require.NoError(t, err)
		assert.InDelta(t, 60, rate, 1e-9)

		rate, err = m.DailyRate("suv")
		require.NoError(t, err)
		assert.InDelta(t, 100, rate, 1e-9)
	})

	t.Run("unknown vehicle type", func(t *testing.T) {
		_, err := m.DailyRate("hovercraft")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestPerMileCost(t *testing.T) {
	m, err := Load(writeRentalCSV(t, rentalFixture))
	require.NoError(t, err)

	t.Run("car averages the sedan subtypes", func(t *testing.T) {
		fuel, maint, err := m.PerMileCost(model.ClassCar)
		require.NoError(t, err)
		assert.InDelta(t, (11.12+12.54)/2/100, fuel, 1e-12)
		assert.InDelta(t, (9.55+10.89)/2/100, maint, 1e-12)
	})

	t.Run("minivan and suv share a subtype set", func(t *testing.T) {
		mvFuel, mvMaint, err := m.PerMileCost(model.ClassMinivan)
		require.NoError(t, err)
		suvFuel, suvMaint, err2 := m.PerMileCost(model.ClassSUV)
		require.NoError(t, err2)
		assert.Equal(t, suvFuel, mvFuel)
		assert.Equal(t, suvMaint, mvMaint)
		assert.InDelta(t, (13.37+12.70+16.46)/3/100, suvFuel, 1e-12)
	})

	t.Run("truck and van share a subtype set", func(t *testing.T) {
		tFuel, _, err := m.PerMileCost(model.ClassTruck)
		require.NoError(t, err)
		vFuel, _, err2 := m.PerMileCost(model.ClassVan)
		require.NoError(t, err2)
		assert.Equal(t, tFuel, vFuel)
		assert.InDelta(t, (18.81+22.16)/2/100, tFuel, 1e-12)
	})

	t.Run("unknown class", func(t *testing.T) {
		_, _, err := m.PerMileCost(model.VehicleClass("bicycle"))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestBusRate(t *testing.T) {
	tests := []struct {
		miles float64
		want  float64
	}{
		{0, 0.2794},
		{499, 0.2794},
		{500, 0.2413},
		{999, 0.2413},
		{1000, 0.1905},
		{1499, 0.1905},
		// Longer trips share the last band's rate.
		{5000, 0.1905},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, BusRate(tc.miles), 1e-12, "miles=%v", tc.miles)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("empty dataset", func(t *testing.T) {
		_, err := Load(writeRentalCSV(t, "vehicle.type,rate.daily\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEmptyDataset)
	})

	t.Run("all rows unparseable", func(t *testing.T) {
		_, err := Load(writeRentalCSV(t, "vehicle.type,rate.daily\ncar,n/a\n,50\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEmptyDataset)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := Load(writeRentalCSV(t, "vehicle.type\ncar\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrMissingColumn)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/rentals.csv")
		assert.Error(t, err)
	})
}

func TestMultipliersSnapshot(t *testing.T) {
	m, err := Load(writeRentalCSV(t, rentalFixture))
	require.NoError(t, err)

	snap := m.Multipliers()
	assert.Len(t, snap.BusCPM, 3)
	assert.Contains(t, snap.DailyRental, "truck")
	assert.Len(t, snap.FuelPerMile, 5)
	assert.Len(t, snap.MaintenancePerMile, 5)
}
