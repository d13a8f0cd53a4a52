package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whatsthemove/moveplan/internal/config"
	"github.com/whatsthemove/moveplan/internal/listings"
)

func seedListingsCmd() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "seed-listings",
		Short: "Import the rental-listing CSV into the listings database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if csvPath == "" {
				csvPath = cfg.Data.Listings
			}

			store, err := listings.NewStore(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return store.SeedFromCSV(cmd.Context(), csvPath)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "listings CSV to import (default: data.listings from config)")
	return cmd
}

func enrichListingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich-listings",
		Short: "Fill missing listing websites via Google Custom Search",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()

			enricher, err := listings.NewEnricher(cmd.Context(), cfg.Google.APIKey, cfg.Google.CSEID)
			if err != nil {
				return err
			}

			store, err := listings.NewStore(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			updated, err := store.FillMissingWebsites(cmd.Context(), enricher)
			if err != nil {
				return err
			}
			fmt.Printf("updated %d listings\n", updated)
			return nil
		},
	}
}
