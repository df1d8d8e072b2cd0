package repository

import (
	"fmt"
	"time"
)

// ParseTime parses a timestamp stored by SQLite in either "2006-01-02",
// RFC3339 or the driver's default "2006-01-02 15:04:05" format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse time: %q", str)
}
