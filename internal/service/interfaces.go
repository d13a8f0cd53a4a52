// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/whatsthemove/moveplan/internal/model"
)

// ListingSource provides rental listings for a destination city.
// Implementations must return listings sorted ascending by price.
type ListingSource interface {
	TopListings(ctx context.Context, city, state string, maxPrice float64, limit int) ([]model.Listing, error)
}

// JobInspector classifies a job posting URL into structured fields.
type JobInspector interface {
	Inspect(ctx context.Context, url string) (*model.JobPosting, error)
}

// TruckQuoter returns priced moving-truck options for a pickup/dropoff pair.
// Implementations are best-effort: an empty slice is a valid answer.
type TruckQuoter interface {
	TruckOptions(ctx context.Context, pickup, dropoff, date string) ([]model.TruckOption, error)
}

// MovingHelpQuoter returns priced moving-help providers for a move.
type MovingHelpQuoter interface {
	MovingHelpOptions(ctx context.Context, loading, unloading, loadDate, unloadDate string) ([]model.HelpProvider, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
