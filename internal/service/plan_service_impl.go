package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/logging"
	"github.com/alexanderramin/planeasy/internal/mutation"
	"github.com/alexanderramin/planeasy/internal/notify"
	"github.com/alexanderramin/planeasy/internal/query"
	"github.com/alexanderramin/planeasy/internal/repository"
	"go.uber.org/zap"
)

// ErrAmbiguousID is returned when an ID prefix matches more than one plan.
var ErrAmbiguousID = errors.New("ambiguous plan id")

type planService struct {
	store     repository.PlanStore
	scheduler notify.Scheduler
	ops       mutation.Ops
	loc       *time.Location
	log       *zap.Logger
	observers observers
}

// Option configures a PlanService.
type Option func(*planService)

// WithOps replaces the clock and ID generator used by mutations.
func WithOps(ops mutation.Ops) Option {
	return func(s *planService) { s.ops = ops }
}

// WithLocation sets the zone calendar days are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *planService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithObserver adds obs to the observers told about each use case.
func WithObserver(obs UseCaseObserver) Option {
	return func(s *planService) {
		if obs != nil {
			s.observers = append(s.observers, obs)
		}
	}
}

func NewPlanService(store repository.PlanStore, scheduler notify.Scheduler, log *zap.Logger, opts ...Option) PlanService {
	if scheduler == nil {
		scheduler = notify.NoopScheduler{}
	}
	s := &planService{
		store:     store,
		scheduler: scheduler,
		ops:       mutation.New(),
		loc:       time.Local,
		log:       logging.OrNop(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *planService) Location() *time.Location {
	return s.loc
}

func (s *planService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observers.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *planService) List(ctx context.Context) (domain.Collection, error) {
	plans, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plans: %w", err)
	}
	return plans, nil
}

func (s *planService) Get(ctx context.Context, ref string) (domain.Plan, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return domain.Plan{}, err
	}
	return resolvePlan(plans, ref)
}

func resolvePlan(plans domain.Collection, ref string) (domain.Plan, error) {
	ref = strings.TrimSpace(ref)
	if p, err := mutation.Find(plans, ref); err == nil {
		return p, nil
	}
	if ref == "" {
		return domain.Plan{}, &domain.NotFoundError{ID: ref}
	}

	var matches []domain.Plan
	for _, p := range plans {
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Plan{}, &domain.NotFoundError{ID: ref}
	case 1:
		return matches[0], nil
	default:
		return domain.Plan{}, fmt.Errorf("%q matches %d plans: %w", ref, len(matches), ErrAmbiguousID)
	}
}

func (s *planService) Create(ctx context.Context, draft domain.Draft) (p domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"category": draft.Category}
	defer func() { s.observe(ctx, "create-plan", startedAt, fields, err) }()

	plans, err := s.List(ctx)
	if err != nil {
		return domain.Plan{}, err
	}
	next, p, err := s.ops.Create(plans, draft)
	if err != nil {
		return domain.Plan{}, err
	}
	if err = s.save(ctx, next); err != nil {
		return domain.Plan{}, err
	}
	fields["id"] = p.ID
	s.schedule(ctx, p)
	return p, nil
}

func (s *planService) Update(ctx context.Context, id string, patch domain.Patch) (p domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "update-plan", startedAt, fields, err) }()

	plans, err := s.List(ctx)
	if err != nil {
		return domain.Plan{}, err
	}
	next, p, err := s.ops.Update(plans, id, patch)
	if err != nil {
		return domain.Plan{}, err
	}
	if err = s.save(ctx, next); err != nil {
		return domain.Plan{}, err
	}
	s.schedule(ctx, p)
	return p, nil
}

func (s *planService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "delete-plan", startedAt, fields, err) }()

	plans, err := s.List(ctx)
	if err != nil {
		return err
	}
	next := s.ops.Remove(plans, id)
	fields["removed"] = len(plans) - len(next)
	return s.save(ctx, next)
}

func (s *planService) ToggleCompletion(ctx context.Context, id string) (p domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "toggle-plan", startedAt, fields, err) }()

	plans, err := s.List(ctx)
	if err != nil {
		return domain.Plan{}, err
	}
	next, p, err := s.ops.ToggleCompletion(plans, id)
	if err != nil {
		return domain.Plan{}, err
	}
	if err = s.save(ctx, next); err != nil {
		return domain.Plan{}, err
	}
	fields["completed"] = p.Completed
	return p, nil
}

// Import merges incoming into the stored collection by ID, or replaces it
// outright. Imported plans are not rescheduled.
func (s *planService) Import(ctx context.Context, incoming domain.Collection, replace bool) (res ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"incoming": len(incoming), "replace": replace}
	defer func() { s.observe(ctx, "import-plans", startedAt, fields, err) }()

	var next domain.Collection
	if replace {
		next = incoming.Clone()
		res.Added = len(incoming)
	} else {
		current, err := s.List(ctx)
		if err != nil {
			return ImportResult{}, err
		}
		next = current.Clone()
		for _, p := range incoming {
			if i := next.IndexOf(p.ID); i >= 0 {
				next[i] = p
				res.Replaced++
				continue
			}
			next = append(next, p)
			res.Added++
		}
	}
	if err = s.save(ctx, next); err != nil {
		return ImportResult{}, err
	}
	res.Total = len(next)
	return res, nil
}

func (s *planService) Dashboard(ctx context.Context, now time.Time) (query.Dashboard, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return query.Dashboard{}, err
	}
	return query.BuildDashboard(plans, now.In(s.loc)), nil
}

func (s *planService) Listing(ctx context.Context, category string) (query.Listing, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return query.Listing{}, err
	}
	return query.BuildListing(plans, category, s.loc), nil
}

func (s *planService) Stats(ctx context.Context) (query.Stats, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return query.Stats{}, err
	}
	return query.ComputeStats(plans), nil
}

// save normalizes every store failure to a StorageError for the caller.
func (s *planService) save(ctx context.Context, plans domain.Collection) error {
	err := s.store.Save(ctx, plans)
	if err == nil {
		return nil
	}
	var se *domain.StorageError
	if errors.As(err, &se) {
		return err
	}
	return &domain.StorageError{Op: "save", Err: err}
}

// schedule is fire-and-forget: a failure is logged and never surfaced.
func (s *planService) schedule(ctx context.Context, p domain.Plan) {
	if err := s.scheduler.Schedule(ctx, p.Title, p.Date); err != nil {
		s.log.Warn("scheduling reminder failed",
			zap.String("plan_id", p.ID),
			zap.String("title", p.Title),
			zap.Error(err))
	}
}
