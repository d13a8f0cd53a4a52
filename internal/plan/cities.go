package plan

import (
	"strings"
	"time"
)

// canonicalCities backs the slug map. "Madison, WI" becomes "madisonwi".
var canonicalCities = []string{
	"Madison, WI",
	"Seattle, WA",
	"Neenah, WI",
}

var citySlugMap = buildCitySlugMap()

func buildCitySlugMap() map[string]string {
	m := make(map[string]string, len(canonicalCities))
	for _, full := range canonicalCities {
		city, state, ok := strings.Cut(full, ",")
		if !ok {
			continue
		}
		slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(city), " ", "")) +
			strings.ToLower(strings.TrimSpace(state))
		m[slug] = full
	}
	return m
}

// CityForSlug converts a slug like "madisonwi" to "Madison, WI", falling
// back to the raw slug when unknown.
func CityForSlug(slug string) string {
	if full, ok := citySlugMap[strings.ToLower(slug)]; ok {
		return full
	}
	return slug
}

// cityName extracts the bare city name from "Madison, WI".
func cityName(full string) string {
	city, _, _ := strings.Cut(full, ",")
	return strings.TrimSpace(city)
}

// splitCityState separates "Seattle, WA" into a city and an uppercase state
// filter. The state is empty when the input has no comma.
func splitCityState(full string) (city, state string) {
	c, s, ok := strings.Cut(full, ",")
	if !ok {
		return strings.TrimSpace(c), ""
	}
	return strings.TrimSpace(c), strings.ToUpper(strings.TrimSpace(s))
}

var monthNumbers = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// moveDates picks concrete dates from month names: loading on the 1st of
// the start month this year, unloading the next day. Unknown month names
// fall back to the current month. Dates are MM/DD/YYYY strings.
func moveDates(now time.Time, startMonth string) (loading, unloading string) {
	start, ok := monthNumbers[strings.ToLower(startMonth)]
	if !ok {
		start = now.Month()
	}

	loadingDt := time.Date(now.Year(), start, 1, 0, 0, 0, 0, time.UTC)
	unloadingDt := loadingDt.AddDate(0, 0, 1)

	return loadingDt.Format("01/02/2006"), unloadingDt.Format("01/02/2006")
}
