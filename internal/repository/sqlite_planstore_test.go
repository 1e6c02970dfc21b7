package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/planeasy/internal/db"
	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/logging"
	"github.com/alexanderramin/planeasy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestPlanStore_LoadEmptyWhenMissing(t *testing.T) {
	store := NewSQLitePlanStore(testutil.NewTestDB(t))

	plans, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)
}

func TestPlanStore_RoundTrip(t *testing.T) {
	store := NewSQLitePlanStore(testutil.NewTestDB(t))
	ctx := context.Background()

	want := domain.Collection{
		testutil.NewTestPlan("Gym", testutil.WithCategory("Health")),
		testutil.NewTestPlan("Exam", testutil.WithNote("room 4"), testutil.WithCompleted()),
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPlanStore_SurvivesReopen(t *testing.T) {
	first, path := testutil.NewTestFileDB(t)
	ctx := context.Background()
	plans := domain.Collection{testutil.NewTestPlan("Dentist", testutil.WithID("plan-001"))}
	require.NoError(t, NewSQLitePlanStore(first).Save(ctx, plans))
	require.NoError(t, first.Close())

	second, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	got, err := NewSQLitePlanStore(second).Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dentist", got[0].Title)
}

func TestPlanStore_SaveReplacesCollection(t *testing.T) {
	store := NewSQLitePlanStore(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Collection{testutil.NewTestPlan("A"), testutil.NewTestPlan("B")}))
	only := testutil.NewTestPlan("C")
	require.NoError(t, store.Save(ctx, domain.Collection{only}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Collection{only}, got)
}

func TestPlanStore_KeysAreIsolated(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	a := NewSQLitePlanStore(database)
	b := NewSQLitePlanStore(database, WithKey("plans-archive"))

	require.NoError(t, a.Save(ctx, domain.Collection{testutil.NewTestPlan("A")}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlanStore_ReadFailureFallsBackToEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLitePlanStore(database).Save(ctx, domain.Collection{testutil.NewTestPlan("A")}))

	log := logging.NewTestLogger()
	broken := &testutil.BrokenDBTX{DBTX: database, FailReads: true, Err: errors.New("disk gone")}
	store := NewSQLitePlanStore(broken, WithLogger(log.Logger))

	plans, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
	log.AssertLogged(t, zapcore.ErrorLevel, "reading plans failed")
}

func TestPlanStore_SaveFailureIsStorageError(t *testing.T) {
	database := testutil.NewTestDB(t)
	log := logging.NewTestLogger()
	broken := &testutil.BrokenDBTX{DBTX: database, FailWrites: true, Err: errors.New("disk full")}
	store := NewSQLitePlanStore(broken, WithLogger(log.Logger))

	err := store.Save(context.Background(), domain.Collection{testutil.NewTestPlan("A")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "save", se.Op)
	assert.Contains(t, err.Error(), "disk full")
	log.AssertLogged(t, zapcore.ErrorLevel, "saving plans failed")
}

const mixedBlob = `[
	{"id":"ok","title":"Gym","date":"2025-03-05T09:00:00.000Z","category":"Health","note":"","completed":false,"createdAt":"2025-03-01T08:00:00.000Z"},
	{"id":"bad","title":"Exam","date":"next tuesday","category":"Study","note":"","completed":false,"createdAt":""}
]`

func seedBlob(t *testing.T, blob string) *SQLitePlanStore {
	t.Helper()
	database := testutil.NewTestDB(t)
	_, err := database.Exec(`INSERT INTO kv_store (key, value) VALUES (?, ?)`, DefaultPlansKey, blob)
	require.NoError(t, err)
	return NewSQLitePlanStore(database)
}

func TestPlanStore_MalformedRecordFailsStrictLoad(t *testing.T) {
	store := seedBlob(t, mixedBlob)

	_, err := store.Load(context.Background())

	require.Error(t, err)
	var me *domain.MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "bad", me.ID)
	assert.Equal(t, "date", me.Field)
	assert.Equal(t, "next tuesday", me.Value)
}

func TestPlanStore_SkipMalformed(t *testing.T) {
	store := seedBlob(t, mixedBlob)
	log := logging.NewTestLogger()
	WithSkipMalformed(true)(store)
	WithLogger(log.Logger)(store)

	plans, err := store.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "ok", plans[0].ID)
	assert.True(t, plans[0].Date.Equal(time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)))
	log.AssertField(t, "skipping malformed plan", "id", "bad")
}

func TestPlanStore_UnreadableBlobFailsEvenWhenSkipping(t *testing.T) {
	store := seedBlob(t, `{not json`)
	WithSkipMalformed(true)(store)

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))
}

func TestPlanStore_NullBlobIsEmpty(t *testing.T) {
	store := seedBlob(t, `null`)

	plans, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}
