package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// LoadLocation resolves a time zone name, falling back to UTC when empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// DateIn formats t as YYYY-MM-DD in loc.
func DateIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
