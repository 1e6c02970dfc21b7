package cli

import (
	"context"
	"time"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Category is the plan list filter, kept across visits to the list.
	Category string

	// Terminal dimensions
	Width  int
	Height int

	ctx context.Context
}

// Location returns the zone plan days are shown in.
func (s *SharedState) Location() *time.Location {
	return s.App.Plans.Location()
}

// Now returns the current instant from the App clock.
func (s *SharedState) Now() time.Time {
	return s.App.now()
}

// Context returns the context every service call from the TUI runs under.
func (s *SharedState) Context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
