package geo

import (
	"fmt"
	"math"
)

// Mean Earth radius in miles (IUGG value, 6371.009 km).
const earthRadiusMiles = 3958.7613

// GreatCircle returns the great-circle distance between two geocoded cities
// in miles.
func GreatCircle(a, b City) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

// FlightDistance resolves both cities to their serving airport cities and
// returns the great-circle distance between those airports in miles. A city
// with no airport within range fails with a no-airport error, never a
// silent default.
func (idx *Index) FlightDistance(cityA, cityB string) (float64, error) {
	a, err := idx.ResolveAirportCity(cityA)
	if err != nil {
		return 0, fmt.Errorf("origin: %w", err)
	}
	b, err := idx.ResolveAirportCity(cityB)
	if err != nil {
		return 0, fmt.Errorf("destination: %w", err)
	}
	return GreatCircle(a, b), nil
}
