package utils

import (
	"strconv"
	"time"
)

// Iso8601Now stamps exports with the current UTC time.
func Iso8601Now() string {
	return Iso8601(time.Now())
}

func Iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// UnixSecondsParam renders t the way the Directions API expects a
// departure_time. The zero time yields "" so callers can omit the parameter.
func UnixSecondsParam(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.Unix(), 10)
}
