package sqlite

import (
	"fmt"
	"time"
)

// parseTime parses timestamps as stored by this package (RFC3339) plus the
// formats SQLite's CURRENT_TIMESTAMP family emits, so rows written by hand
// in tests or older builds still scan.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", s)
}
