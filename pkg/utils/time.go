package utils

import "time"

// Card and collection timestamps are persisted and served as RFC3339 strings.

// FormatTime renders a timestamp in the storage and API format.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTime reads a stored RFC3339 timestamp. Unparseable values come back
// as the zero time so a damaged item still hydrates.
func ParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NowFormatted returns the current time in the storage format.
func NowFormatted() string {
	return FormatTime(time.Now())
}
