package plan

import (
	"context"
	"time"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/fare"
	"github.com/whatsthemove/moveplan/internal/geo"
	"github.com/whatsthemove/moveplan/internal/ground"
	"github.com/whatsthemove/moveplan/internal/jobs"
	"github.com/whatsthemove/moveplan/internal/model"
	"github.com/whatsthemove/moveplan/internal/service"
)

// Planner assembles a move plan from the pricing models and collaborator
// services. Collaborator failures degrade their own section; Build never
// fails as a whole.
type Planner struct {
	Geo      *geo.Index
	Fare     *fare.Model
	Ground   *ground.Model
	Listings service.ListingSource
	Jobs     service.JobInspector
	Trucks   service.TruckQuoter
	Help     service.MovingHelpQuoter

	// Now is the clock used for move dates; nil means time.Now.
	Now func() time.Time
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Build produces the combined plan for a validated request. The jobURL is
// optional; when present the posting is classified and summarized first.
func (p *Planner) Build(ctx context.Context, req *model.MoveRequest, jobURL string) *model.MovePlan {
	plan := &model.MovePlan{
		Request: model.RequestEcho{
			FromCity:   req.FromSlug,
			ToCity:     req.ToSlug,
			StartMonth: req.StartMonth,
			EndMonth:   req.EndMonth,
			Flags: model.RequestFlags{
				UHaulAndMoving: req.RawUHaulFlags,
				Transport:      req.RawTransportFlags,
			},
			ApartmentMaxCost: req.MaxHousingCost,
		},
	}

	if jobURL != "" && p.Jobs != nil {
		posting, err := p.Jobs.Inspect(ctx, jobURL)
		if err != nil {
			common.LogError(err, "job analysis failed", common.Fields{"url": jobURL})
			plan.JobSummary = jobs.Summarize(nil)
			plan.JobError = err.Error()
		} else {
			plan.JobSummary = jobs.Summarize(posting)
		}
	}

	plan.Transportation = p.buildTransportation(ctx, req)

	if req.NeedHousing() {
		plan.Housing = p.buildHousing(ctx, req)
	} else {
		plan.Housing = model.Housing{
			Enabled: false,
			Error:   "housing help not requested",
		}
	}

	return plan
}

func (p *Planner) buildTransportation(ctx context.Context, req *model.MoveRequest) model.Transportation {
	if req.NoTransportNeeded {
		return model.Transportation{
			Skipped: true,
			Reason:  "User indicated they already have travel arrangements.",
		}
	}

	t := model.Transportation{Skipped: false}

	if req.UseUHaul || req.UseMovingTruck {
		t.UHaulTruck = p.truckSection(ctx, req)
	}
	if req.UseOwnCar {
		t.OwnCar = p.ownCarSection(req)
	}
	if req.NeedRentalCar {
		t.RentalCar = p.rentalCarSection(req)
	}
	if req.UseBus {
		t.Bus = p.busSection(req)
	}
	if req.UsePlane {
		t.Plane = p.planeSection(req)
	}
	if req.NeedMovingHelp {
		t.MovingHelp = p.movingHelpSection(ctx, req)
	}

	return t
}

func (p *Planner) buildHousing(ctx context.Context, req *model.MoveRequest) model.Housing {
	destFull := CityForSlug(req.ToSlug)

	h := model.Housing{
		Enabled:         true,
		DestinationCity: destFull,
		MaxPrice:        req.MaxHousingCost,
	}

	if p.Listings == nil {
		h.Error = "listing source not configured"
		return h
	}

	city, state := splitCityState(destFull)
	apartments, err := p.Listings.TopListings(ctx, city, state, float64(req.MaxHousingCost), 10)
	if err != nil {
		common.LogError(err, "housing lookup failed", common.Fields{"city": destFull})
		h.Error = err.Error()
		return h
	}

	h.ResultsCount = len(apartments)
	h.Apartments = apartments
	return h
}
