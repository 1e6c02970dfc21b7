package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planeasy/internal/db"
	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/logging"
	"go.uber.org/zap"
)

// DefaultPlansKey is the kv_store key the collection lives under.
const DefaultPlansKey = "plans"

// SQLitePlanStore implements PlanStore as a JSON blob in the kv_store table.
type SQLitePlanStore struct {
	db            db.DBTX
	key           string
	skipMalformed bool
	log           *zap.Logger
}

// PlanStoreOption configures a SQLitePlanStore.
type PlanStoreOption func(*SQLitePlanStore)

// WithKey stores the collection under key instead of DefaultPlansKey.
func WithKey(key string) PlanStoreOption {
	return func(s *SQLitePlanStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithSkipMalformed drops records that fail to decode instead of failing the
// load. Each dropped record is logged at Warn.
func WithSkipMalformed(skip bool) PlanStoreOption {
	return func(s *SQLitePlanStore) {
		s.skipMalformed = skip
	}
}

// WithLogger sets the logger used for load and save failures.
func WithLogger(l *zap.Logger) PlanStoreOption {
	return func(s *SQLitePlanStore) {
		s.log = logging.OrNop(l)
	}
}

// NewSQLitePlanStore creates a new SQLitePlanStore.
func NewSQLitePlanStore(conn db.DBTX, opts ...PlanStoreOption) *SQLitePlanStore {
	s := &SQLitePlanStore{db: conn, key: DefaultPlansKey, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and decodes the collection. A missing row or a failed read
// yields an empty collection and a nil error; the read failure is logged.
// Malformed records fail the load unless the store skips them.
func (s *SQLitePlanStore) Load(ctx context.Context) (domain.Collection, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, s.key).Scan(&blob)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Error("reading plans failed, starting empty", zap.String("key", s.key), zap.Error(err))
		}
		return domain.Collection{}, nil
	}

	if !s.skipMalformed {
		plans, err := domain.DecodeCollection([]byte(blob))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", s.key, err)
		}
		return plans, nil
	}

	plans, skipped, err := domain.DecodeCollectionLenient([]byte(blob))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.key, err)
	}
	for _, m := range skipped {
		s.log.Warn("skipping malformed plan", zap.String("id", m.ID), zap.String("field", m.Field), zap.Error(m.Err))
	}
	return plans, nil
}

// Save encodes the collection and upserts it in one statement.
func (s *SQLitePlanStore) Save(ctx context.Context, plans domain.Collection) error {
	blob, err := domain.EncodeCollection(plans)
	if err != nil {
		s.log.Error("encoding plans failed", zap.Error(err))
		return &domain.StorageError{Op: "save", Err: err}
	}

	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, s.key, string(blob), timeColumn(time.Now())); err != nil {
		s.log.Error("saving plans failed", zap.String("key", s.key), zap.Int("count", len(plans)), zap.Error(err))
		return &domain.StorageError{Op: "save", Err: fmt.Errorf("upserting %s: %w", s.key, err)}
	}
	return nil
}
