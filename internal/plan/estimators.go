package plan

import (
	"context"
	"math"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/fare"
	"github.com/whatsthemove/moveplan/internal/geo"
	"github.com/whatsthemove/moveplan/internal/ground"
	"github.com/whatsthemove/moveplan/internal/model"
)

const milesPerRentalDay = 500.0

const quoteNote = "Best-effort quotes; static estimates when live rates are unavailable."

func (p *Planner) truckSection(ctx context.Context, req *model.MoveRequest) *model.TruckEstimate {
	pickup := CityForSlug(req.FromSlug)
	dropoff := CityForSlug(req.ToSlug)

	section := &model.TruckEstimate{
		Enabled:     true,
		Note:        quoteNote,
		PickupCity:  pickup,
		DropoffCity: dropoff,
	}
	if p.Trucks == nil {
		section.Error = "truck quoter not configured"
		return section
	}

	loadingDate, _ := moveDates(p.now(), req.StartMonth)
	options, err := p.Trucks.TruckOptions(ctx, pickup, dropoff, loadingDate)
	if err != nil {
		common.LogError(err, "truck quote failed", common.Fields{"pickup": pickup, "dropoff": dropoff})
		section.Error = err.Error()
		return section
	}
	section.Options = options
	return section
}

func (p *Planner) movingHelpSection(ctx context.Context, req *model.MoveRequest) *model.MovingHelpEstimate {
	loading := CityForSlug(req.FromSlug)
	unloading := CityForSlug(req.ToSlug)
	loadDate, unloadDate := moveDates(p.now(), req.StartMonth)

	section := &model.MovingHelpEstimate{
		Enabled:          true,
		Note:             quoteNote,
		LoadingAddress:   loading,
		UnloadingAddress: unloading,
		LoadingDate:      loadDate,
		UnloadingDate:    unloadDate,
	}
	if p.Help == nil {
		section.Error = "moving help quoter not configured"
		return section
	}

	providers, err := p.Help.MovingHelpOptions(ctx, loading, unloading, loadDate, unloadDate)
	if err != nil {
		common.LogError(err, "moving help quote failed", common.Fields{"loading": loading})
		section.Error = err.Error()
		return section
	}
	section.Providers = providers
	return section
}

func (p *Planner) ownCarSection(req *model.MoveRequest) *model.OwnCarEstimate {
	section := &model.OwnCarEstimate{
		Enabled:         true,
		OriginCity:      CityForSlug(req.FromSlug),
		DestinationCity: CityForSlug(req.ToSlug),
		VehicleClass:    string(model.ClassCar),
	}

	miles, err := p.cityDistance(req)
	if err != nil {
		section.Error = err.Error()
		return section
	}

	fuelPerMile, maintPerMile, err := p.Ground.PerMileCost(model.ClassCar)
	if err != nil {
		section.Error = err.Error()
		return section
	}

	section.DistanceMiles = round1(miles)
	section.FuelCost = round2(fuelPerMile * miles)
	section.MaintenanceCost = round2(maintPerMile * miles)
	section.TotalCost = round2((fuelPerMile + maintPerMile) * miles)
	return section
}

func (p *Planner) rentalCarSection(req *model.MoveRequest) *model.RentalCarEstimate {
	section := &model.RentalCarEstimate{
		Enabled:      true,
		VehicleClass: string(model.ClassCar),
	}

	miles, err := p.cityDistance(req)
	if err != nil {
		section.Error = err.Error()
		return section
	}

	daily, err := p.Ground.DailyRate(string(model.ClassCar))
	if err != nil {
		section.Error = err.Error()
		return section
	}
	fuelPerMile, _, err := p.Ground.PerMileCost(model.ClassCar)
	if err != nil {
		section.Error = err.Error()
		return section
	}

	days := int(math.Ceil(miles / milesPerRentalDay))
	if days < 1 {
		days = 1
	}

	section.DistanceMiles = round1(miles)
	section.Days = days
	section.DailyRate = round2(daily)
	section.RentalCost = round2(float64(days) * daily)
	section.FuelCost = round2(fuelPerMile * miles)
	section.TotalCost = round2(float64(days)*daily + fuelPerMile*miles)
	return section
}

func (p *Planner) busSection(req *model.MoveRequest) *model.BusEstimate {
	section := &model.BusEstimate{Enabled: true}

	miles, err := p.cityDistance(req)
	if err != nil {
		section.Error = err.Error()
		return section
	}

	cpm := ground.BusRate(miles)
	section.DistanceMiles = round1(miles)
	section.CostPerMile = cpm
	section.TotalCost = round2(cpm * miles)
	return section
}

func (p *Planner) planeSection(req *model.MoveRequest) *model.PlaneEstimate {
	originFull := CityForSlug(req.FromSlug)
	destFull := CityForSlug(req.ToSlug)

	section := &model.PlaneEstimate{
		Enabled:         true,
		OriginCity:      originFull,
		DestinationCity: destFull,
		Description:     "Great-circle distance between nearest airports to origin and destination.",
	}

	miles, err := p.Geo.FlightDistance(cityName(originFull), cityName(destFull))
	if err != nil {
		section.Error = err.Error()
		return section
	}

	section.DistanceMiles = round1(miles)
	section.DistanceKM = round1(miles * 1.60934)

	fares := make(map[string]float64, len(p.Fare.TopCarriers()))
	for _, code := range p.Fare.TopCarriers() {
		name := code
		if display, ok := fare.CarrierNames[code]; ok {
			name = display
		}
		fares[name] = round2(p.Fare.PriceEstimate(miles, code, false))
	}
	section.FareByCarrier = fares
	return section
}

// cityDistance is the great-circle distance between the origin and
// destination cities themselves, used for the driving and bus modes.
func (p *Planner) cityDistance(req *model.MoveRequest) (float64, error) {
	from, err := p.Geo.City(cityName(CityForSlug(req.FromSlug)))
	if err != nil {
		return 0, err
	}
	to, err := p.Geo.City(cityName(CityForSlug(req.ToSlug)))
	if err != nil {
		return 0, err
	}
	return geo.GreatCircle(from, to), nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
