// Package notify schedules plan reminders. A CLI cannot raise notifications
// while it is not running, so the default scheduler queues reminders in the
// database and `planeasy reminders deliver` hands due ones to a Sink.
package notify

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/planeasy/internal/db"
	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/logging"
	"github.com/alexanderramin/planeasy/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scheduler registers a one-shot reminder for a plan.
type Scheduler interface {
	Schedule(ctx context.Context, title string, when time.Time) error
}

// Sink receives reminders as they are delivered.
type Sink interface {
	Notify(ctx context.Context, r *domain.Reminder) error
}

// Modes accepted by the notify.mode setting.
const (
	ModeQueue = "queue"
	ModeLog   = "log"
	ModeOff   = "off"
)

// QueueScheduler persists reminders to the reminders table.
type QueueScheduler struct {
	reminders repository.ReminderRepo
	uow       db.UnitOfWork
	log       *zap.Logger

	Clock func() time.Time
	NewID func() string
}

// NewQueueScheduler creates a QueueScheduler. uow scopes delivery batches.
func NewQueueScheduler(reminders repository.ReminderRepo, uow db.UnitOfWork, log *zap.Logger) *QueueScheduler {
	return &QueueScheduler{
		reminders: reminders,
		uow:       uow,
		log:       logging.OrNop(log),
		Clock:     func() time.Time { return time.Now().UTC() },
		NewID:     func() string { return uuid.New().String() },
	}
}

// Schedule queues a reminder titled after the plan to fire at when.
func (s *QueueScheduler) Schedule(ctx context.Context, title string, when time.Time) error {
	r := &domain.Reminder{
		ID:        s.NewID(),
		Heading:   domain.ReminderHeading,
		Body:      domain.ReminderBody(title),
		FireAt:    when.UTC(),
		CreatedAt: s.Clock(),
	}
	if err := s.reminders.Create(ctx, r); err != nil {
		return fmt.Errorf("queueing reminder: %w", err)
	}
	s.log.Debug("reminder queued", zap.String("id", r.ID), zap.Time("fire_at", r.FireAt))
	return nil
}

// Pending lists reminders that have not been delivered.
func (s *QueueScheduler) Pending(ctx context.Context) ([]*domain.Reminder, error) {
	return s.reminders.ListPending(ctx)
}

// Due lists reminders that should have fired by now.
func (s *QueueScheduler) Due(ctx context.Context, now time.Time) ([]*domain.Reminder, error) {
	return s.reminders.ListDue(ctx, now)
}

// Deliver marks every due reminder delivered and hands it to sink, all in one
// transaction. A sink or store failure rolls the batch back so the reminders
// stay pending; reminders already handed to the sink may then be seen again
// on the next run.
func (s *QueueScheduler) Deliver(ctx context.Context, now time.Time, sink Sink) (int, error) {
	delivered := 0
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteReminderRepo(tx)
		due, err := repo.ListDue(ctx, now)
		if err != nil {
			return err
		}
		for _, r := range due {
			if err := repo.MarkDelivered(ctx, r.ID, now); err != nil {
				return err
			}
			at := now
			r.DeliveredAt = &at
			if err := sink.Notify(ctx, r); err != nil {
				return fmt.Errorf("delivering reminder %s: %w", r.ID, err)
			}
			delivered++
		}
		return nil
	})
	if err != nil {
		s.log.Warn("reminder delivery rolled back", zap.Error(err))
		return 0, err
	}
	return delivered, nil
}

// WriterSink prints reminders, one per line.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Notify(_ context.Context, r *domain.Reminder) error {
	_, err := fmt.Fprintf(s.W, "%s: %s (%s)\n", r.Heading, r.Body, r.FireAt.Local().Format("Jan 2 15:04"))
	return err
}

// NoopScheduler discards reminders.
type NoopScheduler struct{}

func (NoopScheduler) Schedule(context.Context, string, time.Time) error { return nil }

// LogScheduler writes each reminder to the logger instead of storing it.
type LogScheduler struct {
	Log *zap.Logger
}

func (s LogScheduler) Schedule(_ context.Context, title string, when time.Time) error {
	logging.OrNop(s.Log).Info(domain.ReminderHeading,
		zap.String("body", domain.ReminderBody(title)),
		zap.Time("fire_at", when))
	return nil
}

// New builds the scheduler for mode. Only the queue mode uses reminders and uow.
func New(mode string, reminders repository.ReminderRepo, uow db.UnitOfWork, log *zap.Logger) (Scheduler, error) {
	switch mode {
	case ModeQueue, "":
		return NewQueueScheduler(reminders, uow, log), nil
	case ModeLog:
		return LogScheduler{Log: log}, nil
	case ModeOff:
		return NoopScheduler{}, nil
	default:
		return nil, fmt.Errorf("unknown notify mode %q", mode)
	}
}
