// Package geo resolves cities to nearby airport cities and computes
// great-circle flight distances from a static geocoded city/airport table.
package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/whatsthemove/moveplan/internal/common"
)

// City is one geocoded row from the city or airport table.
type City struct {
	Name  string
	State string
	Lat   float64
	Lng   float64
}

// Index holds the geocoded city table and the list of cities with airports.
// It is built once at startup and read-only thereafter.
type Index struct {
	cities   map[string]City
	airports []City
}

// Matching thresholds for the airport fallback tiers, in raw lat/long
// degrees. This is a deliberate Euclidean approximation, not geodesic
// distance; changing it would change match outcomes near the boundaries.
const (
	sameStateRadius = 50.0
	anyStateRadius  = 150.0
)

// LoadIndex reads the city table and airport table CSVs. The city table
// needs city, state_id, lat and lng columns; the airport table needs city,
// state, lat and lng columns.
func LoadIndex(cityPath, airportPath string) (*Index, error) {
	cities, err := loadCityCSV(cityPath, "city", "state_id")
	if err != nil {
		return nil, fmt.Errorf("failed to load city table: %w", err)
	}

	airportRows, err := loadCityCSV(airportPath, "city", "state")
	if err != nil {
		return nil, fmt.Errorf("failed to load airport table: %w", err)
	}

	idx := &Index{
		cities:   make(map[string]City, len(cities)),
		airports: airportRows,
	}
	for _, c := range cities {
		// First row wins on duplicate city names, matching table order.
		if _, ok := idx.cities[c.Name]; !ok {
			idx.cities[c.Name] = c
		}
	}
	return idx, nil
}

// City returns the geocoded entry for a city name.
func (idx *Index) City(name string) (City, error) {
	c, ok := idx.cities[name]
	if !ok {
		return City{}, fmt.Errorf("city %q: %w", name, common.ErrNotFound)
	}
	return c, nil
}

// ResolveAirportCity finds the airport city serving the given city: the city
// itself when it has an airport, otherwise the first airport city in the
// same state within 50 coordinate-units, otherwise the first airport city
// anywhere within 150. First match in table order wins at each tier; this is
// an approximation, not a nearest-airport search.
func (idx *Index) ResolveAirportCity(city string) (City, error) {
	for _, a := range idx.airports {
		if a.Name == city {
			return a, nil
		}
	}

	c, err := idx.City(city)
	if err != nil {
		return City{}, fmt.Errorf("%w for %q: %v", common.ErrNoAirport, city, err)
	}

	for _, a := range idx.airports {
		if a.State == c.State && flatDistance(c, a) < sameStateRadius {
			return a, nil
		}
	}

	for _, a := range idx.airports {
		if flatDistance(c, a) < anyStateRadius {
			return a, nil
		}
	}

	return City{}, fmt.Errorf("%w within range of %q", common.ErrNoAirport, city)
}

// flatDistance is the Euclidean distance over raw lat/long degrees, used
// only for the airport matching tiers.
func flatDistance(a, b City) float64 {
	return math.Sqrt(math.Pow(a.Lat-b.Lat, 2) + math.Pow(a.Lng-b.Lng, 2))
}

// loadCityCSV parses a geocoded table, locating columns by header name.
func loadCityCSV(path, cityCol, stateCol string) ([]City, error) {
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

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{cityCol, stateCol, "lat", "lng"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, required)
		}
	}

	var rows []City
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		lat, latErr := strconv.ParseFloat(rec[cols["lat"]], 64)
		lng, lngErr := strconv.ParseFloat(rec[cols["lng"]], 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		rows = append(rows, City{
			Name:  rec[cols[cityCol]],
			State: rec[cols[stateCol]],
			Lat:   lat,
			Lng:   lng,
		})
	}
	return rows, nil
}
