package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/planeasy/internal/db"
	"github.com/alexanderramin/planeasy/internal/domain"
)

// SQLiteReminderRepo implements ReminderRepo using a SQLite database.
type SQLiteReminderRepo struct {
	db db.DBTX
}

// NewSQLiteReminderRepo creates a new SQLiteReminderRepo.
func NewSQLiteReminderRepo(conn db.DBTX) *SQLiteReminderRepo {
	return &SQLiteReminderRepo{db: conn}
}

func (r *SQLiteReminderRepo) Create(ctx context.Context, rem *domain.Reminder) error {
	query := `INSERT INTO reminders (id, heading, body, fire_at, delivered_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rem.ID,
		rem.Heading,
		rem.Body,
		timeColumn(rem.FireAt),
		nullTimeColumn(rem.DeliveredAt),
		timeColumn(rem.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting reminder: %w", err)
	}
	return nil
}

// ListPending returns undelivered reminders, soonest first.
func (r *SQLiteReminderRepo) ListPending(ctx context.Context) ([]*domain.Reminder, error) {
	query := `SELECT id, heading, body, fire_at, delivered_at, created_at
		FROM reminders WHERE delivered_at IS NULL ORDER BY fire_at, created_at`
	return r.list(ctx, query)
}

// ListDue returns undelivered reminders whose fire time is at or before now.
func (r *SQLiteReminderRepo) ListDue(ctx context.Context, now time.Time) ([]*domain.Reminder, error) {
	query := `SELECT id, heading, body, fire_at, delivered_at, created_at
		FROM reminders WHERE delivered_at IS NULL AND fire_at <= ? ORDER BY fire_at, created_at`
	return r.list(ctx, query, timeColumn(now))
}

func (r *SQLiteReminderRepo) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET delivered_at = ? WHERE id = ? AND delivered_at IS NULL`,
		timeColumn(at), id)
	if err != nil {
		return fmt.Errorf("marking reminder delivered: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("pending reminder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteReminderRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	defer rows.Close()

	var out []*domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func scanReminder(rows *sql.Rows) (*domain.Reminder, error) {
	var rem domain.Reminder
	var fireAt, createdAt string
	var deliveredAt sql.NullString
	if err := rows.Scan(&rem.ID, &rem.Heading, &rem.Body, &fireAt, &deliveredAt, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}

	var err error
	rem.FireAt, err = parseTimeColumn(fireAt)
	if err != nil {
		return nil, fmt.Errorf("parsing reminder fire_at: %w", err)
	}
	rem.CreatedAt, _ = parseTimeColumn(createdAt)
	rem.DeliveredAt = parseNullTimeColumn(deliveredAt)
	return &rem, nil
}
