package repository

import (
	"fmt"
	"strings"
	"time"
)

// ParseTime parses a date string in "2006-01-02", SQLite datetime, or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if parsed, err := time.Parse(layout, str); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// isUniqueConstraintError reports whether err is a SQLite unique constraint
// violation. The driver does not export a typed error for this, so the check
// is on the error text.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
