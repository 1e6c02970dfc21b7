package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/logging"
	"github.com/alexanderramin/planeasy/internal/mutation"
	"github.com/alexanderramin/planeasy/internal/repository"
	"github.com/alexanderramin/planeasy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var testNow = time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

type scheduledCall struct {
	Title string
	When  time.Time
}

type recordingScheduler struct {
	calls []scheduledCall
	err   error
}

func (r *recordingScheduler) Schedule(_ context.Context, title string, when time.Time) error {
	r.calls = append(r.calls, scheduledCall{title, when})
	return r.err
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func testOps() mutation.Ops {
	n := 0
	return mutation.Ops{
		Clock: func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("plan-%03d", n)
		},
	}
}

func setupPlanService(t *testing.T, seed ...domain.Plan) (PlanService, *repository.MemoryPlanStore, *recordingScheduler) {
	t.Helper()
	store := repository.NewMemoryPlanStore(seed...)
	sched := &recordingScheduler{}
	svc := NewPlanService(store, sched, nil, WithOps(testOps()), WithLocation(time.UTC))
	return svc, store, sched
}

func TestPlanService_CreateSavesAndSchedules(t *testing.T) {
	svc, store, sched := setupPlanService(t)
	ctx := context.Background()
	when := testNow.Add(2 * time.Hour)

	p, err := svc.Create(ctx, domain.Draft{Title: "Gym", Date: when, Category: "Health"})
	require.NoError(t, err)

	assert.Equal(t, "plan-001", p.ID)
	assert.Equal(t, 1, store.Saves())
	assert.Equal(t, []scheduledCall{{"Gym", when}}, sched.calls)

	plans, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Collection{p}, plans)
}

func TestPlanService_CreateValidationSkipsSaveAndSchedule(t *testing.T) {
	svc, store, sched := setupPlanService(t)

	_, err := svc.Create(context.Background(), domain.Draft{Title: "   ", Date: testNow})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, 0, store.Saves())
	assert.Empty(t, sched.calls)
}

func TestPlanService_SaveFailureSurfacesAndSkipsReminder(t *testing.T) {
	svc, store, sched := setupPlanService(t)
	store.FailSave = errors.New("quota exceeded")

	_, err := svc.Create(context.Background(), domain.Draft{Title: "Gym", Date: testNow})

	require.Error(t, err)
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "save", se.Op)
	assert.Empty(t, sched.calls, "no reminder after a failed save")

	plans, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanService_SchedulerFailureIsLoggedNotReturned(t *testing.T) {
	store := repository.NewMemoryPlanStore()
	sched := &recordingScheduler{err: errors.New("permission denied")}
	log := logging.NewTestLogger()
	svc := NewPlanService(store, sched, log.Logger, WithOps(testOps()))

	_, err := svc.Create(context.Background(), domain.Draft{Title: "Gym", Date: testNow})

	require.NoError(t, err)
	assert.Equal(t, 1, store.Saves())
	log.AssertLogged(t, zapcore.WarnLevel, "scheduling reminder failed")
	log.AssertField(t, "scheduling reminder failed", "title", "Gym")
}

func TestPlanService_UpdateReschedules(t *testing.T) {
	seed := testutil.NewTestPlan("Read", testutil.WithID("p1"), testutil.WithCompleted())
	svc, _, sched := setupPlanService(t, seed)
	newDate := testNow.AddDate(0, 0, 3)

	p, err := svc.Update(context.Background(), "p1", domain.Patch{Title: "Read ch. 2", Date: newDate, Category: "Study"})
	require.NoError(t, err)

	assert.Equal(t, "Read ch. 2", p.Title)
	assert.True(t, p.Completed)
	assert.Equal(t, []scheduledCall{{"Read ch. 2", newDate}}, sched.calls)
}

func TestPlanService_UpdateNotFound(t *testing.T) {
	svc, store, sched := setupPlanService(t)

	_, err := svc.Update(context.Background(), "nope", domain.Patch{Title: "x", Date: testNow})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 0, store.Saves())
	assert.Empty(t, sched.calls)
}

func TestPlanService_DeleteIsIdempotent(t *testing.T) {
	seed := testutil.NewTestPlan("Read", testutil.WithID("p1"))
	svc, store, _ := setupPlanService(t, seed)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "p1"))
	require.NoError(t, svc.Delete(ctx, "p1"))

	plans, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.Equal(t, 2, store.Saves())
}

func TestPlanService_ToggleCompletion(t *testing.T) {
	seed := testutil.NewTestPlan("Read", testutil.WithID("p1"))
	svc, _, sched := setupPlanService(t, seed)
	ctx := context.Background()

	p, err := svc.ToggleCompletion(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.Completed)

	p, err = svc.ToggleCompletion(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, p.Completed)
	assert.Empty(t, sched.calls, "toggling never schedules")
}

func TestPlanService_GetResolvesPrefix(t *testing.T) {
	svc, _, _ := setupPlanService(t,
		testutil.NewTestPlan("A", testutil.WithID("abc123")),
		testutil.NewTestPlan("B", testutil.WithID("abd456")),
		testutil.NewTestPlan("C", testutil.WithID("ab")),
	)
	ctx := context.Background()

	p, err := svc.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Title)

	p, err = svc.Get(ctx, "ab")
	require.NoError(t, err)
	assert.Equal(t, "C", p.Title, "exact match wins over prefix")

	_, err = svc.Get(ctx, "a")
	assert.True(t, errors.Is(err, ErrAmbiguousID))

	_, err = svc.Get(ctx, "zzz")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.Get(ctx, "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPlanService_ImportMergeAndReplace(t *testing.T) {
	existing := testutil.NewTestPlan("Old", testutil.WithID("p1"))
	svc, _, sched := setupPlanService(t, existing)
	ctx := context.Background()

	incoming := domain.Collection{
		testutil.NewTestPlan("Old renamed", testutil.WithID("p1")),
		testutil.NewTestPlan("New", testutil.WithID("p2")),
	}
	res, err := svc.Import(ctx, incoming, false)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 1, Replaced: 1, Total: 2}, res)

	p, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Old renamed", p.Title)

	res, err = svc.Import(ctx, domain.Collection{incoming[1]}, true)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 1, Total: 1}, res)
	assert.Empty(t, sched.calls)
}

func TestPlanService_EndToEndScenario(t *testing.T) {
	svc, _, sched := setupPlanService(t)
	ctx := context.Background()
	gymAt := time.Date(2025, 3, 5, 18, 0, 0, 0, time.UTC)
	examAt := time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, domain.Draft{Title: "Gym", Date: gymAt, Category: "Health"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.Draft{Title: "Exam", Date: examAt, Category: "Study"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 2, stats.InProgress)
	assert.Equal(t, map[string]int{"Health": 1, "Study": 1}, stats.PerCategory)

	dash, err := svc.Dashboard(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, dash.Today, 1)
	assert.Equal(t, "Gym", dash.Today[0].Title)

	listing, err := svc.Listing(ctx, "Study")
	require.NoError(t, err)
	require.Len(t, listing.Groups, 1)
	assert.Equal(t, "Mar 6, 2025", listing.Groups[0].Key)

	assert.Len(t, sched.calls, 2)
}

func TestPlanService_LoadFailure(t *testing.T) {
	store := repository.NewMemoryPlanStore()
	store.FailDecode = errors.New("decode failed")
	svc := NewPlanService(store, nil, nil)

	_, err := svc.Stats(context.Background())
	assert.ErrorContains(t, err, "loading plans")
}

func TestPlanService_ObservesUseCases(t *testing.T) {
	obs := &recordingObserver{}
	store := repository.NewMemoryPlanStore()
	svc := NewPlanService(store, nil, nil, WithOps(testOps()), WithObserver(obs))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Draft{Title: "Gym", Date: testNow})
	require.NoError(t, err)
	_, err = svc.ToggleCompletion(ctx, "missing")
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "create-plan", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "plan-001", obs.events[0].Fields["id"])
	assert.Equal(t, "toggle-plan", obs.events[1].Name)
	assert.False(t, obs.events[1].Success)
}

func TestLogUseCaseObserver(t *testing.T) {
	log := logging.NewTestLogger()
	obs := NewLogUseCaseObserver(log.Logger)

	ctx := context.Background()
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "create-plan", Success: true})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "delete-plan", Err: errors.New("boom")})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "get-plan", Err: &domain.NotFoundError{ID: "x"}})

	log.AssertLogged(t, zapcore.DebugLevel, "use case finished")
	log.AssertLogged(t, zapcore.ErrorLevel, "use case finished")
	log.AssertLogged(t, zapcore.InfoLevel, "use case finished")
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestWithObserver_FansOut(t *testing.T) {
	var first, second []string
	svc := NewPlanService(repository.NewMemoryPlanStore(), nil, nil,
		WithObserver(UseCaseObserverFunc(func(_ context.Context, e UseCaseEvent) { first = append(first, e.Name) })),
		WithObserver(nil),
		WithObserver(UseCaseObserverFunc(func(_ context.Context, e UseCaseEvent) { second = append(second, e.Name) })),
	)

	_, err := svc.ToggleCompletion(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, []string{"toggle-plan"}, first)
	assert.Equal(t, first, second)
}
