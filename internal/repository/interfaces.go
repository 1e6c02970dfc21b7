package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
)

// PlanStore persists the whole plan collection as one unit.
type PlanStore interface {
	// Load returns the stored collection. A missing or unreadable store
	// yields an empty collection.
	Load(ctx context.Context) (domain.Collection, error)
	// Save replaces the stored collection.
	Save(ctx context.Context, plans domain.Collection) error
}

// ReminderRepo persists queued plan reminders.
type ReminderRepo interface {
	Create(ctx context.Context, r *domain.Reminder) error
	ListPending(ctx context.Context) ([]*domain.Reminder, error)
	ListDue(ctx context.Context, now time.Time) ([]*domain.Reminder, error)
	MarkDelivered(ctx context.Context, id string, at time.Time) error
}
