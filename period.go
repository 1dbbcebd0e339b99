package main

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var errInvalidPeriodType = errors.New("invalid period type")

// Period is the closed date range of imported transactions.
type Period struct {
	kind  string
	start time.Time
	end   time.Time
}

func (p Period) String() string {
	return fmt.Sprintf("%s - %s", p.startDate(), p.endDate())
}

func (p Period) startDate() string {
	return p.start.Format(dateLayout)
}

func (p Period) endDate() string {
	return p.end.Format(dateLayout)
}

// newPeriod returns the calendar month or year containing current.
func newPeriod(current time.Time, periodType string) (Period, error) {
	loc := current.Location()

	switch periodType {
	case monthlyPeriodType:
		start := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, loc)
		return Period{kind: periodType, start: start, end: start.AddDate(0, 1, 0).Add(-time.Second)}, nil
	case annualPeriodType:
		start := time.Date(current.Year(), 1, 1, 0, 0, 0, 0, loc)
		return Period{kind: periodType, start: start, end: start.AddDate(1, 0, 0).Add(-time.Second)}, nil
	}

	return Period{}, fmt.Errorf("%w: %q (must be %s or %s)",
		errInvalidPeriodType, periodType, monthlyPeriodType, annualPeriodType)
}

// parsePeriod builds the period of the given type around date. An empty date
// means today.
func parsePeriod(date, periodType string, now time.Time) (Period, error) {
	current := now
	if date != "" {
		d, err := time.ParseInLocation(dateLayout, date, now.Location())
		if err != nil {
			return Period{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
		}
		current = d
	}

	return newPeriod(current, periodType)
}
