package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// resolveInstant builds a plan instant from optional YYYY-MM-DD and HH:MM
// inputs, both read in loc. Whatever is left empty is taken from base.
// Seconds are always dropped.
func resolveInstant(date, clock string, base time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	b := base.In(loc)
	y, m, d := b.Date()
	hh, mm := b.Hour(), b.Minute()

	if date = strings.TrimSpace(date); date != "" {
		t, err := time.ParseInLocation(dateLayout, date, loc)
		if err != nil {
			return time.Time{}, &domain.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
		y, m, d = t.Date()
	}
	if clock = strings.TrimSpace(clock); clock != "" {
		t, err := time.Parse(clockLayout, clock)
		if err != nil {
			return time.Time{}, &domain.ValidationError{Field: "time", Reason: "must be HH:MM"}
		}
		hh, mm = t.Hour(), t.Minute()
	}
	return time.Date(y, m, d, hh, mm, 0, 0, loc).UTC(), nil
}

// validateDate accepts a YYYY-MM-DD date string.
func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD format")
	}
	return nil
}

// validateClock accepts an HH:MM 24-hour time string.
func validateClock(s string) error {
	if _, err := time.Parse(clockLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("use HH:MM format")
	}
	return nil
}
