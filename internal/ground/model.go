// Package ground implements the ground transportation cost model: median
// daily rental rates fitted from a rental-rate dataset, published per-mile
// fuel and maintenance costs, and a distance-banded bus rate.
package ground

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/model"
)

// AAA "Your Driving Costs" published figures, cents per mile per vehicle
// subtype. These are fixed constants, not derived from any dataset.
var (
	fuelCentsPerMile = map[string]float64{
		"Small Sedan":       11.12,
		"Medium Sedan":      12.54,
		"Subcompact SUV":    13.37,
		"Compact SUV (FWD)": 12.70,
		"Medium SUV (4WD)":  16.46,
		"Midsize Pickup":    18.81,
		"1/2 Ton Pickup":    22.16,
	}

	maintenanceCentsPerMile = map[string]float64{
		"Small Sedan":       9.55,
		"Medium Sedan":      10.89,
		"Subcompact SUV":    10.06,
		"Compact SUV (FWD)": 10.87,
		"Medium SUV (4WD)":  11.10,
		"Midsize Pickup":    10.88,
		"1/2 Ton Pickup":    9.88,
	}
)

// Subtype groupings for the five simplified classes. Minivan and SUV share
// a subtype set, as do truck and van, so each pair derives the same value.
var classSubtypes = map[model.VehicleClass][]string{
	model.ClassCar:     {"Small Sedan", "Medium Sedan"},
	model.ClassMinivan: {"Subcompact SUV", "Compact SUV (FWD)", "Medium SUV (4WD)"},
	model.ClassSUV:     {"Subcompact SUV", "Compact SUV (FWD)", "Medium SUV (4WD)"},
	model.ClassTruck:   {"Midsize Pickup", "1/2 Ton Pickup"},
	model.ClassVan:     {"Midsize Pickup", "1/2 Ton Pickup"},
}

// Intercity bus dollars per mile, keyed by distance/500 bucket. Trips of
// 1000 miles or more share the longest band's rate.
var busCPMByBucket = map[int]float64{
	0: 0.2794,
	1: 0.2413,
	2: 0.1905,
}

const maxBusBucket = 2

// Model holds the fitted ground cost tables. Immutable after construction,
// safe for concurrent reads.
type Model struct {
	dailyRate   map[string]float64
	fuelPerMile map[model.VehicleClass]float64
	mainPerMile map[model.VehicleClass]float64
}

// Snapshot is a structured view of all ground cost tables.
type Snapshot struct {
	DailyRental        map[string]float64             `json:"DailyRental"`
	FuelPerMile        map[model.VehicleClass]float64 `json:"FuelPerMile"`
	MaintenancePerMile map[model.VehicleClass]float64 `json:"MaintenancePerMile"`
	BusCPM             map[int]float64                `json:"BusCPM"`
}

// Load reads the rental-rate dataset and builds the model. An empty or
// malformed dataset is a fatal construction error, not a runtime fallback.
func Load(path string) (*Model, error) {
	records, err := readRentalCSV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rental dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("rental dataset: %w", common.ErrEmptyDataset)
	}

	grouped := make(map[string][]float64)
	for _, r := range records {
		grouped[r.VehicleType] = append(grouped[r.VehicleType], r.DailyRate)
	}

	m := &Model{
		dailyRate:   make(map[string]float64, len(grouped)),
		fuelPerMile: make(map[model.VehicleClass]float64, len(classSubtypes)),
		mainPerMile: make(map[model.VehicleClass]float64, len(classSubtypes)),
	}
	for vehicleType, rates := range grouped {
		m.dailyRate[vehicleType] = median(rates)
	}
	for class, subtypes := range classSubtypes {
		m.fuelPerMile[class] = avgDollarsPerMile(subtypes, fuelCentsPerMile)
		m.mainPerMile[class] = avgDollarsPerMile(subtypes, maintenanceCentsPerMile)
	}

	slog.Info("fitted ground model", "records", len(records), "vehicle_types", len(m.dailyRate))
	return m, nil
}

// DailyRate returns the median daily rental rate for a vehicle type from
// the rental dataset.
func (m *Model) DailyRate(vehicleType string) (float64, error) {
	rate, ok := m.dailyRate[vehicleType]
	if !ok {
		return 0, fmt.Errorf("vehicle type %q: %w", vehicleType, common.ErrNotFound)
	}
	return rate, nil
}

// PerMileCost returns the fuel and maintenance cost per mile in dollars for
// a vehicle class.
func (m *Model) PerMileCost(class model.VehicleClass) (fuel, maintenance float64, err error) {
	fuel, ok := m.fuelPerMile[class]
	if !ok {
		return 0, 0, fmt.Errorf("vehicle class %q: %w", class, common.ErrNotFound)
	}
	return fuel, m.mainPerMile[class], nil
}

// BusRate returns the intercity bus cost per mile in dollars for a trip of
// the given distance.
func BusRate(miles float64) float64 {
	bucket := int(miles) / 500
	if bucket > maxBusBucket {
		bucket = maxBusBucket
	}
	if bucket < 0 {
		bucket = 0
	}
	return busCPMByBucket[bucket]
}

// Multipliers returns a snapshot of all ground cost tables.
func (m *Model) Multipliers() Snapshot {
	s := Snapshot{
		DailyRental:        make(map[string]float64, len(m.dailyRate)),
		FuelPerMile:        make(map[model.VehicleClass]float64, len(m.fuelPerMile)),
		MaintenancePerMile: make(map[model.VehicleClass]float64, len(m.mainPerMile)),
		BusCPM:             make(map[int]float64, len(busCPMByBucket)),
	}
	for k, v := range m.dailyRate {
		s.DailyRental[k] = v
	}
	for k, v := range m.fuelPerMile {
		s.FuelPerMile[k] = v
	}
	for k, v := range m.mainPerMile {
		s.MaintenancePerMile[k] = v
	}
	for k, v := range busCPMByBucket {
		s.BusCPM[k] = v
	}
	return s
}

// avgDollarsPerMile averages cents-per-mile over the given subtypes and
// converts to dollars per mile. The mean is unweighted.
func avgDollarsPerMile(subtypes []string, centsPerMile map[string]float64) float64 {
	var sum float64
	for _, s := range subtypes {
		sum += centsPerMile[s]
	}
	return sum / float64(len(subtypes)) / 100.0
}

// median returns the median of values without reordering the input.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// readRentalCSV parses the rental dataset, keeping only rows with a vehicle
// type and a numeric daily rate.
func readRentalCSV(path string) ([]model.RentalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	typeCol, rateCol := -1, -1
	for i, name := range header {
		switch name {
		case "vehicle.type":
			typeCol = i
		case "rate.daily":
			rateCol = i
		}
	}
	if typeCol < 0 {
		return nil, fmt.Errorf("%w: vehicle.type", common.ErrMissingColumn)
	}
	if rateCol < 0 {
		return nil, fmt.Errorf("%w: rate.daily", common.ErrMissingColumn)
	}

	var records []model.RentalRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		vehicleType := row[typeCol]
		rate, parseErr := strconv.ParseFloat(row[rateCol], 64)
		if vehicleType == "" || parseErr != nil {
			continue
		}
		records = append(records, model.RentalRecord{VehicleType: vehicleType, DailyRate: rate})
	}
	return records, nil
}
