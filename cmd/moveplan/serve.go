package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/whatsthemove/moveplan/internal/config"
	"github.com/whatsthemove/moveplan/internal/fare"
	"github.com/whatsthemove/moveplan/internal/geo"
	"github.com/whatsthemove/moveplan/internal/ground"
	"github.com/whatsthemove/moveplan/internal/jobs"
	"github.com/whatsthemove/moveplan/internal/listings"
	"github.com/whatsthemove/moveplan/internal/mover"
	"github.com/whatsthemove/moveplan/internal/plan"
	"github.com/whatsthemove/moveplan/internal/server"
	"github.com/whatsthemove/moveplan/internal/service"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the move-planning HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			planner, store, inspector, err := buildPlanner(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			srv := server.New(planner, inspector, cfg.Server)
			return srv.Run(cmd.Context())
		},
	}
}

// buildPlanner constructs the pricing models and collaborators from config.
// The caller owns closing the returned store.
func buildPlanner(cfg *config.Config) (*plan.Planner, *listings.Store, service.JobInspector, error) {
	idx, err := geo.LoadIndex(cfg.Data.Cities, cfg.Data.Airports)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build geo index: %w", err)
	}

	fareModel, err := fare.Load(cfg.Data.Tickets)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fit fare model: %w", err)
	}

	groundModel, err := ground.Load(cfg.Data.Rentals)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fit ground model: %w", err)
	}

	store, err := listings.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open listings store: %w", err)
	}

	var inspector service.JobInspector
	if cfg.OpenAI.APIKey != "" {
		insp, err := jobs.NewInspector(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			_ = store.Close()
			return nil, nil, nil, err
		}
		inspector = insp
	} else {
		slog.Warn("no OpenAI API key configured, job analysis disabled")
	}

	var scraper *mover.Scraper
	if cfg.Scrape.Enabled {
		scraper = mover.NewScraper(cfg.Scrape.BaseURL)
	}
	quoter := mover.NewQuoter(scraper)

	planner := &plan.Planner{
		Geo:      idx,
		Fare:     fareModel,
		Ground:   groundModel,
		Listings: store,
		Jobs:     inspector,
		Trucks:   quoter,
		Help:     quoter,
	}
	return planner, store, inspector, nil
}
