package model

// MovePlan is the combined response for one move request. Field order is a
// contract for downstream consumers: job summary first (when present), then
// the request echo, then transportation, then housing.
type MovePlan struct {
	JobSummary *JobSummary `json:"job_summary,omitempty"`
	JobError   string      `json:"job_analysis_error,omitempty"`

	Request        RequestEcho    `json:"request"`
	Transportation Transportation `json:"transportation"`
	Housing        Housing        `json:"housing"`
}

// RequestEcho mirrors the originating request back to the caller.
type RequestEcho struct {
	FromCity         string       `json:"from_city"`
	ToCity           string       `json:"to_city"`
	StartMonth       string       `json:"start_month"`
	EndMonth         string       `json:"end_month"`
	Flags            RequestFlags `json:"flags"`
	ApartmentMaxCost int          `json:"apartment_max_cost"`
}

// RequestFlags echoes the raw flag strings as received.
type RequestFlags struct {
	UHaulAndMoving string `json:"uhaul_and_moving"`
	Transport      string `json:"transport"`
}

// Transportation holds one subsection per enabled transport mode. Disabled
// modes have no key at all, not a null.
type Transportation struct {
	Skipped    bool                `json:"skipped"`
	Reason     string              `json:"reason,omitempty"`
	UHaulTruck *TruckEstimate      `json:"uhaul_truck,omitempty"`
	OwnCar     *OwnCarEstimate     `json:"own_car,omitempty"`
	RentalCar  *RentalCarEstimate  `json:"rental_car,omitempty"`
	Bus        *BusEstimate        `json:"bus,omitempty"`
	Plane      *PlaneEstimate      `json:"plane,omitempty"`
	MovingHelp *MovingHelpEstimate `json:"moving_help,omitempty"`
}

// TruckOption is one priced moving-truck offer.
type TruckOption struct {
	TruckType   string  `json:"truck_type"`
	BaseRate    float64 `json:"estimated_base_rate"`
	MileageFees float64 `json:"estimated_mileage_fees"`
	Total       float64 `json:"estimated_total"`
}

// TruckEstimate is the moving-truck section of a plan.
type TruckEstimate struct {
	Enabled     bool          `json:"enabled"`
	Note        string        `json:"note,omitempty"`
	PickupCity  string        `json:"pickup_city"`
	DropoffCity string        `json:"dropoff_city"`
	Options     []TruckOption `json:"options"`
	Error       string        `json:"error,omitempty"`
}

// HelpProvider is one priced moving-help crew offer.
type HelpProvider struct {
	Name     string  `json:"name"`
	Hours    int     `json:"hours"`
	CrewSize int     `json:"crew_size"`
	Total    float64 `json:"estimated_total"`
}

// MovingHelpEstimate is the moving-help section of a plan.
type MovingHelpEstimate struct {
	Enabled          bool           `json:"enabled"`
	Note             string         `json:"note,omitempty"`
	LoadingAddress   string         `json:"loading_address"`
	UnloadingAddress string         `json:"unloading_address"`
	LoadingDate      string         `json:"loading_date"`
	UnloadingDate    string         `json:"unloading_date"`
	Providers        []HelpProvider `json:"providers"`
	Error            string         `json:"error,omitempty"`
}

// OwnCarEstimate prices driving one's own car, fuel plus maintenance.
type OwnCarEstimate struct {
	Enabled         bool    `json:"enabled"`
	OriginCity      string  `json:"origin_city"`
	DestinationCity string  `json:"destination_city"`
	VehicleClass    string  `json:"vehicle_class"`
	DistanceMiles   float64 `json:"distance_miles,omitempty"`
	FuelCost        float64 `json:"fuel_cost,omitempty"`
	MaintenanceCost float64 `json:"maintenance_cost,omitempty"`
	TotalCost       float64 `json:"total_cost,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// RentalCarEstimate prices a one-way rental for the drive.
type RentalCarEstimate struct {
	Enabled       bool    `json:"enabled"`
	VehicleClass  string  `json:"vehicle_class"`
	DistanceMiles float64 `json:"distance_miles,omitempty"`
	Days          int     `json:"days,omitempty"`
	DailyRate     float64 `json:"daily_rate,omitempty"`
	RentalCost    float64 `json:"rental_cost,omitempty"`
	FuelCost      float64 `json:"fuel_cost,omitempty"`
	TotalCost     float64 `json:"total_cost,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// BusEstimate prices an intercity bus trip with the distance-banded rate.
type BusEstimate struct {
	Enabled       bool    `json:"enabled"`
	DistanceMiles float64 `json:"distance_miles,omitempty"`
	CostPerMile   float64 `json:"cost_per_mile,omitempty"`
	TotalCost     float64 `json:"total_cost,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// PlaneEstimate prices a flight between the nearest airports per carrier.
type PlaneEstimate struct {
	Enabled         bool               `json:"enabled"`
	OriginCity      string             `json:"origin_city"`
	DestinationCity string             `json:"destination_city"`
	DistanceMiles   float64            `json:"distance_miles,omitempty"`
	DistanceKM      float64            `json:"distance_km,omitempty"`
	FareByCarrier   map[string]float64 `json:"fare_by_carrier,omitempty"`
	Description     string             `json:"description,omitempty"`
	Error           string             `json:"error,omitempty"`
}

// Housing is the listings section of a plan.
type Housing struct {
	Enabled         bool      `json:"enabled"`
	DestinationCity string    `json:"destination_city,omitempty"`
	MaxPrice        int       `json:"max_price,omitempty"`
	ResultsCount    int       `json:"results_count"`
	Apartments      []Listing `json:"apartments"`
	Error           string    `json:"error,omitempty"`
}
