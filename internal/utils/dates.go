package utils

import "time"

const isoDateLayout = "2006-01-02"

// ISODate formats a time as an ISO calendar date (YYYY-MM-DD).
func ISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// Midnight truncates a time to midnight in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidISODate reports whether s is a well-formed YYYY-MM-DD date.
func ValidISODate(s string) bool {
	_, err := time.Parse(isoDateLayout, s)
	return err == nil
}
