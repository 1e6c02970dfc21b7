package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLen is the longest title, in characters, a plan may carry.
const MaxTitleLen = 50

// Category values known to the app. Stored plans may carry any string.
const (
	CategoryStudy    = "Study"
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"

	// CategoryAll is the filter sentinel meaning "no category filter".
	CategoryAll = "All"
	// CategoryUncategorized buckets plans with an empty category in stats.
	CategoryUncategorized = "Uncategorized"

	DefaultCategory = CategoryStudy
)

// KnownCategories lists the categories offered when creating or editing a plan.
var KnownCategories = []string{CategoryStudy, CategoryWork, CategoryPersonal}

// Plan is a single dated task or event.
type Plan struct {
	ID        string
	Title     string
	Date      time.Time
	Category  string
	Note      string
	Completed bool
	CreatedAt time.Time
}

// Collection is the full set of plans; it is the unit of persistence.
// Ordering at rest carries no meaning.
type Collection []Plan

// Draft describes a plan to be created.
type Draft struct {
	Title    string
	Date     time.Time
	Category string
	Note     string
}

// Patch replaces the mutable fields of an existing plan.
type Patch struct {
	Title    string
	Date     time.Time
	Category string
	Note     string
}

// NormalizeTitle trims the title and checks it against the title rules.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLen {
		return "", &ValidationError{Field: "title", Reason: "must be at most 50 characters"}
	}
	return trimmed, nil
}

// ValidateDate rejects the zero time; every plan needs a scheduled instant.
func ValidateDate(t time.Time) error {
	if t.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	return nil
}

// StatsCategory returns the bucket a plan is counted under in statistics.
func (p Plan) StatsCategory() string {
	return CategoryOr(p.Category, CategoryUncategorized)
}

// CategoryOr returns category, or fallback when category is unset.
func CategoryOr(category, fallback string) string {
	if category == "" {
		return fallback
	}
	return category
}

// IDs returns the set of plan IDs in the collection.
func (c Collection) IDs() map[string]bool {
	ids := make(map[string]bool, len(c))
	for _, p := range c {
		ids[p.ID] = true
	}
	return ids
}

// IndexOf returns the position of the plan with id, or -1.
func (c Collection) IndexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the collection that shares no backing array.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
