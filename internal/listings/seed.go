package listings

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/whatsthemove/moveplan/internal/common"
)

// csvColumns maps the CSV export's headers to the store's columns, in
// insert order.
var csvColumns = []string{
	"id",
	"formattedAddress",
	"city",
	"state",
	"zipCode",
	"propertyType",
	"bedrooms",
	"bathrooms",
	"squareFootage",
	"yearBuilt",
	"status",
	"price",
	"listingWebsite",
}

// SeedFromCSV imports the listing CSV into the store, replacing rows that
// share an id. Rows without a parseable price are stored with a NULL price
// and never surface in queries.
func (s *Store) SeedFromCSV(ctx context.Context, csvPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open listings CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("failed to read listings header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"id", "city", "state", "price"} {
		if _, ok := cols[required]; !ok {
			return fmt.Errorf("listings CSV %w: %s", common.ErrMissingColumn, required)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO listings (
			id, formatted_address, city, state, zip_code, property_type,
			bedrooms, bathrooms, square_footage, year_built, status,
			price, listing_website
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read listings row: %w", err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		var price any
		if v, err := strconv.ParseFloat(field("price"), 64); err == nil {
			price = v
		}

		args := make([]any, 0, len(csvColumns))
		for _, name := range csvColumns {
			if name == "price" {
				args = append(args, price)
				continue
			}
			args = append(args, field(name))
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert listing: %w", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("seeded listings", "count", count, "source", csvPath)
	return nil
}
