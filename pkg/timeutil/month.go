// Package timeutil provides calendar-month time range helpers.
package timeutil

import (
	"fmt"
	"time"
)

// MonthRange returns the inclusive start and end Unix timestamps of a calendar
// month in UTC. Start is midnight on day 1; end is one second before midnight
// on day 1 of the following month (the year rolls over for December).
func MonthRange(year, month int) (start, end int64) {
	startDt := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDt := startDt.AddDate(0, 1, 0).Add(-time.Second)
	return startDt.Unix(), endDt.Unix()
}

// UnixToDate converts a Unix timestamp to a YYYY-MM-DD date string in UTC.
func UnixToDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}

// ValidateMonth checks that year and month describe a real calendar month.
func ValidateMonth(year, month int) error {
	if year <= 0 {
		return fmt.Errorf("invalid year: %d", year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month: %d (must be 1-12)", month)
	}
	return nil
}
