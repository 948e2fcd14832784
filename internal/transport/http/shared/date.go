package shared

import "time"

// ParseDate parses the from/to query parameters of the analytics endpoints.
// It accepts RFC3339 or YYYY-MM-DD; an empty value means no bound.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
