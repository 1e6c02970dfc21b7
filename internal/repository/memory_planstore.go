package repository

import (
	"context"
	"sync"

	"github.com/alexanderramin/planeasy/internal/domain"
)

// MemoryPlanStore is an in-process PlanStore. It keeps a private copy of the
// collection so callers cannot alias stored state.
type MemoryPlanStore struct {
	mu           sync.Mutex
	plans        domain.Collection
	saves        int
	readFailures int

	// FailSave, when set, is returned (wrapped in a StorageError) from Save.
	FailSave error
	// FailRead, when set, makes Load fall back to an empty collection, as
	// SQLitePlanStore does when the row cannot be read.
	FailRead error
	// FailDecode, when set, is returned from Load, as SQLitePlanStore
	// returns a stored blob that does not decode.
	FailDecode error
}

// NewMemoryPlanStore creates a store seeded with plans.
func NewMemoryPlanStore(plans ...domain.Plan) *MemoryPlanStore {
	return &MemoryPlanStore{plans: domain.Collection(plans).Clone()}
}

func (s *MemoryPlanStore) Load(ctx context.Context) (domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailRead != nil {
		s.readFailures++
		return domain.Collection{}, nil
	}
	if s.FailDecode != nil {
		return nil, s.FailDecode
	}
	return s.plans.Clone(), nil
}

func (s *MemoryPlanStore) Save(ctx context.Context, plans domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave != nil {
		return &domain.StorageError{Op: "save", Err: s.FailSave}
	}
	s.plans = plans.Clone()
	s.saves++
	return nil
}

// ReadFailures reports how many loads fell back to empty.
func (s *MemoryPlanStore) ReadFailures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readFailures
}

// Saves reports how many saves succeeded.
func (s *MemoryPlanStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
