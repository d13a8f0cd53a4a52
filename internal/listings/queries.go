package listings

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/whatsthemove/moveplan/internal/model"
)

// naSentinel replaces blank fields at the response boundary.
const naSentinel = "NA"

// DefaultLimit caps the number of listings returned when the caller does
// not specify one.
const DefaultLimit = 10

// SplitCityState normalizes inputs like "Seattle, WA" or "Seattle" into a
// lowercase city filter and an uppercase state filter (empty when absent).
func SplitCityState(input string) (city, state string) {
	input = strings.TrimSpace(input)
	if i := strings.Index(input, ","); i >= 0 {
		return strings.ToLower(strings.TrimSpace(input[:i])),
			strings.ToUpper(strings.TrimSpace(input[i+1:]))
	}
	return strings.ToLower(input), ""
}

// TopListings returns up to limit listings in the given city with price at
// or below maxPrice, sorted ascending by price. The state filter is applied
// only when non-empty. Blank fields are normalized to the "NA" sentinel.
func (s *Store) TopListings(ctx context.Context, city, state string, maxPrice float64, limit int) ([]model.Listing, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `
		SELECT id, formatted_address, city, state, zip_code, property_type,
		       bedrooms, bathrooms, square_footage, year_built, status,
		       price, listing_website
		FROM listings
		WHERE lower(city) = ?
		  AND (? = '' OR upper(state) = ?)
		  AND price IS NOT NULL
		  AND price <= ?
		ORDER BY price ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query,
		strings.ToLower(city), state, strings.ToUpper(state), maxPrice, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.Listing
	for rows.Next() {
		var id, addr, rowCity, rowState, zip sql.NullString
		var propType, beds, baths, sqft sql.NullString
		var yearBuilt, status, website sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(
			&id, &addr, &rowCity, &rowState, &zip, &propType,
			&beds, &baths, &sqft, &yearBuilt, &status,
			&price, &website,
		); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}

		results = append(results, model.Listing{
			ID:               normalize(id.String),
			FormattedAddress: normalize(addr.String),
			City:             normalize(rowCity.String),
			State:            normalize(rowState.String),
			ZipCode:          normalize(zip.String),
			PropertyType:     normalize(propType.String),
			Bedrooms:         normalize(beds.String),
			Bathrooms:        normalize(baths.String),
			SquareFootage:    normalize(sqft.String),
			YearBuilt:        normalize(yearBuilt.String),
			Status:           normalize(status.String),
			Price:            price.Float64,
			ListingWebsite:   normalize(website.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	slog.Debug("retrieved listings", "city", city, "count", len(results))
	return results, nil
}

// normalize replaces a blank field with the NA sentinel.
func normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return naSentinel
	}
	return s
}
