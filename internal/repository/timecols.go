package repository

import (
	"database/sql"
	"time"
)

// Time columns are TEXT holding RFC 3339 in UTC, so they sort lexically.
const timeLayout = time.RFC3339

func timeColumn(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// nullTimeColumn maps a nil pointer to SQL NULL.
func nullTimeColumn(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timeColumn(*t)
}

func parseTimeColumn(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// parseNullTimeColumn treats NULL, empty and unparseable values as unset.
func parseNullTimeColumn(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := parseTimeColumn(s.String)
	if err != nil {
		return nil
	}
	return &t
}
