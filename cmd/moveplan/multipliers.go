package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/whatsthemove/moveplan/internal/config"
	"github.com/whatsthemove/moveplan/internal/fare"
	"github.com/whatsthemove/moveplan/internal/ground"
)

func multipliersCmd() *cobra.Command {
	var (
		maxDistance int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "multipliers",
		Short: "Inspect the fitted fare and ground multipliers",
		Long: `Fits the fare and ground models from the configured datasets, prints
their multiplier snapshots as JSON, and writes per-carrier price-per-mile
bands to a CSV file when --output is set.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			fareModel, err := fare.Load(cfg.Data.Tickets)
			if err != nil {
				return err
			}
			groundModel, err := ground.Load(cfg.Data.Rentals)
			if err != nil {
				return err
			}

			snapshots := map[string]any{
				"fare":   fareModel.Multipliers(),
				"ground": groundModel.Multipliers(),
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snapshots); err != nil {
				return err
			}

			if output == "" {
				return nil
			}
			if err := writeBandsCSV(output, fareModel.PriceBands(maxDistance)); err != nil {
				return err
			}
			fmt.Printf("wrote price bands to %s\n", output)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDistance, "max-distance", 6000, "largest distance in miles to band")
	cmd.Flags().StringVar(&output, "output", "", "CSV file for per-carrier price bands")
	return cmd
}

// writeBandsCSV writes one row per distance band with a column per carrier,
// carriers sorted by name for a stable layout.
func writeBandsCSV(path string, bands []fare.Band) error {
	if len(bands) == 0 {
		return nil
	}

	carriers := make([]string, 0, len(bands[0].PricePerMile))
	for name := range bands[0].PricePerMile {
		carriers = append(carriers, name)
	}
	sort.Strings(carriers)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"miles"}, carriers...)); err != nil {
		return err
	}
	for _, band := range bands {
		row := []string{band.Label}
		for _, name := range carriers {
			row = append(row, strconv.FormatFloat(band.PricePerMile[name], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
