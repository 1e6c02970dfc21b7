package testutil

import (
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/google/uuid"
)

// Plan options
type PlanOption func(*domain.Plan)

func WithDate(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.Date = d
	}
}

func WithCategory(c string) PlanOption {
	return func(p *domain.Plan) {
		p.Category = c
	}
}

func WithNote(n string) PlanOption {
	return func(p *domain.Plan) {
		p.Note = n
	}
}

func WithCompleted() PlanOption {
	return func(p *domain.Plan) {
		p.Completed = true
	}
}

func WithID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.ID = id
	}
}

func WithCreatedAt(t time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.CreatedAt = t
	}
}

// NewTestPlan builds an open Study plan scheduled for tomorrow.
func NewTestPlan(title string, opts ...PlanOption) domain.Plan {
	now := time.Now().UTC().Truncate(time.Millisecond)
	p := domain.Plan{
		ID:        uuid.New().String(),
		Title:     title,
		Date:      now.AddDate(0, 0, 1),
		Category:  domain.CategoryStudy,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Reminder options
type ReminderOption func(*domain.Reminder)

func WithFireAt(t time.Time) ReminderOption {
	return func(r *domain.Reminder) {
		r.FireAt = t
	}
}

func WithDeliveredAt(t time.Time) ReminderOption {
	return func(r *domain.Reminder) {
		r.DeliveredAt = &t
	}
}

// NewTestReminder builds a pending reminder for title that fired an hour ago.
func NewTestReminder(title string, opts ...ReminderOption) *domain.Reminder {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.Reminder{
		ID:        uuid.New().String(),
		Heading:   domain.ReminderHeading,
		Body:      domain.ReminderBody(title),
		FireAt:    now.Add(-time.Hour),
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
