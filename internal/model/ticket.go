// Package model contains the core domain types shared across the application.
package model

// TicketRecord is one historical fare observation from a DB1B-style
// itinerary dataset.
type TicketRecord struct {
	Carrier       string
	Yield         float64 // fare per mile, already in dollars
	MilesFlown    float64
	ItinFare      float64
	Passengers    float64
	DistanceGroup int // miles/500 bucket, 1-indexed
	RoundTrip     int // 0 = one-way, 1 = round-trip
	DollarCred    int
	BulkFare      int
	ItinGeoType   int
	Online        int
}

// Valid reports whether the record passes all five validity flags and has
// positive fare and mileage. Only valid records participate in model fitting.
func (t TicketRecord) Valid() bool {
	return t.DollarCred == 1 &&
		t.BulkFare == 0 &&
		t.ItinFare > 0 &&
		t.MilesFlown > 0 &&
		t.ItinGeoType == 1 &&
		t.Online == 1
}
