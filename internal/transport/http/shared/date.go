package shared

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses the YYYY-MM-DD wire format used for all entry dates.
// Timestamps are rejected; dates carry no time component anywhere in the API.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
