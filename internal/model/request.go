package model

// MoveRequest is a fully validated and decoded move-planning request. The
// two flag strings are decoded once at the request boundary; the rest of the
// codebase only reads the named booleans.
type MoveRequest struct {
	FromSlug   string
	ToSlug     string
	StartMonth string
	EndMonth   string

	// Decoded from the 2-bit U-Haul/moving segment.
	UseUHaul       bool
	NeedMovingHelp bool

	// Decoded from the 6-bit transport segment.
	NoTransportNeeded bool
	UseOwnCar         bool
	UseMovingTruck    bool
	NeedRentalCar     bool
	UseBus            bool
	UsePlane          bool

	// Raw flag strings, echoed back in the response.
	RawUHaulFlags     string
	RawTransportFlags string

	MaxHousingCost int
}

// NeedHousing reports whether a housing lookup should run. The URL scheme
// carries no housing bit, so housing is always enabled.
func (r MoveRequest) NeedHousing() bool {
	return true
}
