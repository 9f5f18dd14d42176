package utils

import "time"

// TruncateToDate drops the time of day, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TodayUTC is the current calendar date in UTC.
func TodayUTC() time.Time {
	return TruncateToDate(time.Now())
}
