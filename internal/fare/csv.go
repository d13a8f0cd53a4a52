package fare

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/model"
)

// Required ticket dataset columns.
var ticketColumns = []string{
	"REPORTING_CARRIER",
	"ITIN_YIELD",
	"MILES_FLOWN",
	"ITIN_FARE",
	"PASSENGERS",
	"DISTANCE_GROUP",
	"ROUNDTRIP",
	"DOLLAR_CRED",
	"BULK_FARE",
	"ITIN_GEO_TYPE",
	"ONLINE",
}

// readTicketCSV parses the ticket dataset, locating columns by header name.
// Rows with non-numeric core fields are dropped, matching the coercion step
// of the fitting procedure.
func readTicketCSV(path string) ([]model.TicketRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range ticketColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, required)
		}
	}

	var records []model.TicketRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		rec := model.TicketRecord{Carrier: row[cols["REPORTING_CARRIER"]]}

		var ok bool
		if rec.Yield, ok = parseFloat(row[cols["ITIN_YIELD"]]); !ok {
			continue
		}
		if rec.MilesFlown, ok = parseFloat(row[cols["MILES_FLOWN"]]); !ok {
			continue
		}
		if rec.ItinFare, ok = parseFloat(row[cols["ITIN_FARE"]]); !ok {
			continue
		}
		if rec.Passengers, ok = parseFloat(row[cols["PASSENGERS"]]); !ok {
			continue
		}
		if rec.DistanceGroup, ok = parseInt(row[cols["DISTANCE_GROUP"]]); !ok {
			continue
		}
		if rec.RoundTrip, ok = parseInt(row[cols["ROUNDTRIP"]]); !ok {
			continue
		}
		if rec.DollarCred, ok = parseInt(row[cols["DOLLAR_CRED"]]); !ok {
			continue
		}
		if rec.BulkFare, ok = parseInt(row[cols["BULK_FARE"]]); !ok {
			continue
		}
		if rec.ItinGeoType, ok = parseInt(row[cols["ITIN_GEO_TYPE"]]); !ok {
			continue
		}
		if rec.Online, ok = parseInt(row[cols["ONLINE"]]); !ok {
			continue
		}

		records = append(records, rec)
	}
	return records, nil
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func parseInt(s string) (int, bool) {
	// Some exports carry integer columns as "1.0".
	v, err := strconv.ParseFloat(s, 64)
	return int(v), err == nil
}
