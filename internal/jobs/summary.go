package jobs

import (
	"fmt"

	"github.com/whatsthemove/moveplan/internal/model"
)

const naSentinel = "NA"

// Summarize folds a classified posting into the compact move-oriented
// summary. Missing values carry the "NA" sentinel; months render as
// "M/YYYY" without zero padding.
func Summarize(posting *model.JobPosting) *model.JobSummary {
	s := &model.JobSummary{
		JobTitle:          naSentinel,
		MoveToDestination: naSentinel,
		StartMonth:        naSentinel,
		EndMonth:          naSentinel,
		DurationMonths:    naSentinel,
	}
	if posting == nil {
		return s
	}

	if posting.JobTitle != nil && *posting.JobTitle != "" {
		s.JobTitle = *posting.JobTitle
	}
	if posting.Location != nil && *posting.Location != "" {
		s.MoveToDestination = *posting.Location
	}

	if monthKnown(posting.JobStartMonth, posting.JobStartYear) {
		s.StartMonth = fmt.Sprintf("%d/%d", *posting.JobStartMonth, *posting.JobStartYear)
	}
	if monthKnown(posting.JobEndMonth, posting.JobEndYear) {
		s.EndMonth = fmt.Sprintf("%d/%d", *posting.JobEndMonth, *posting.JobEndYear)
	}

	if monthKnown(posting.JobStartMonth, posting.JobStartYear) &&
		monthKnown(posting.JobEndMonth, posting.JobEndYear) {
		months := (*posting.JobEndYear-*posting.JobStartYear)*12 +
			(*posting.JobEndMonth - *posting.JobStartMonth)
		s.DurationMonths = fmt.Sprintf("%d", months)
	}

	return s
}

// monthKnown reports whether a month/year pair is usable. Zero values are
// treated as missing, matching the JSON nulls the classifier emits.
func monthKnown(month, year *int) bool {
	return month != nil && year != nil && *month != 0 && *year != 0
}
