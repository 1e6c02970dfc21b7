package domain

import "time"

// ReminderHeading is the title every plan reminder is delivered under.
const ReminderHeading = "PlanEasy Reminder"

// Reminder is a queued local notification for a plan.
type Reminder struct {
	ID          string
	Heading     string
	Body        string
	FireAt      time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
}

// ReminderBody renders the notification text for a plan title.
func ReminderBody(title string) string {
	return "Don't forget: " + title
}

// IsDue reports whether the reminder should be delivered at now.
func (r *Reminder) IsDue(now time.Time) bool {
	return r.DeliveredAt == nil && !r.FireAt.After(now)
}
