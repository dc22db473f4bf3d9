package schedule

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/notify"
	"github.com/saurabhkm/pland/internal/storage"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func openState(t *testing.T, opts ...Option) (*State, *storage.SQLiteStore) {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "pland-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	state := New(store, opts...)
	require.NoError(t, state.Load(context.Background()))
	return state, store
}

func TestLoadWithoutDocumentYieldsEmptySchedule(t *testing.T) {
	state, _ := openState(t)
	require.True(t, state.Loaded())
	require.Empty(t, state.Activities())
	require.True(t, state.LastModified().IsZero())
}

func TestAddPersistsSortedList(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	state, store := openState(t, WithClock(fixedClock(now)))
	ctx := context.Background()

	_, err := state.Add(ctx, model.Draft{Title: "Lunch", StartTime: "12:00"})
	require.NoError(t, err)
	added, err := state.Add(ctx, model.Draft{Title: "Workout", StartTime: "07:00", NotifyAtStart: true})
	require.NoError(t, err)

	require.NotEmpty(t, added.ID)
	require.True(t, added.CreatedAt.Equal(now))
	require.True(t, added.UpdatedAt.Equal(now))

	activities := state.Activities()
	require.Len(t, activities, 2)
	require.Equal(t, "Workout", activities[0].Title) // sorted ahead of Lunch

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, persisted.Activities, 2)
	require.Equal(t, "Workout", persisted.Activities[0].Title)
	require.True(t, persisted.LastModified.Equal(now))
}

func TestAddRejectsInvalidDraftBeforeStore(t *testing.T) {
	state, store := openState(t)
	ctx := context.Background()

	_, err := state.Add(ctx, model.Draft{Title: " ", StartTime: "07:00"})
	require.Error(t, err)
	_, err = state.Add(ctx, model.Draft{Title: "Workout", StartTime: "7am"})
	require.ErrorIs(t, err, model.ErrInvalidClock)

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound, "store must stay untouched by rejected drafts")
}

func TestUpdateTouchesUpdatedAtOnly(t *testing.T) {
	created := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	clock := created
	state, _ := openState(t, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	added, err := state.Add(ctx, model.Draft{Title: "Workout", StartTime: "07:00"})
	require.NoError(t, err)

	clock = created.Add(time.Hour)
	start := "06:15"
	updated, err := state.Update(ctx, added.ID, model.Patch{StartTime: &start})
	require.NoError(t, err)
	require.Equal(t, "06:15", updated.StartTime)
	require.True(t, updated.CreatedAt.Equal(created))
	require.True(t, updated.UpdatedAt.Equal(created.Add(time.Hour)))

	_, err = state.Update(ctx, "missing", model.Patch{StartTime: &start})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	state, _ := openState(t, WithClock(fixedClock(now)))
	ctx := context.Background()

	require.NoError(t, state.Remove(ctx, "missing"))

	added, err := state.Add(ctx, model.Draft{Title: "Workout", StartTime: "07:00"})
	require.NoError(t, err)
	require.NoError(t, state.Remove(ctx, added.ID))
	require.Empty(t, state.Activities())
}

func TestClearPersistsEmptyList(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	state, store := openState(t, WithClock(fixedClock(now)))
	ctx := context.Background()

	_, err := state.Add(ctx, model.Draft{Title: "Workout", StartTime: "07:00"})
	require.NoError(t, err)
	require.NoError(t, state.Clear(ctx))

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, persisted.Activities)
}

type failingStore struct {
	loadResult model.Schedule
	saveErr    error
}

func (f *failingStore) Load(context.Context) (model.Schedule, error) { return f.loadResult, nil }
func (f *failingStore) Save(context.Context, model.Schedule) error   { return f.saveErr }
func (f *failingStore) Close() error                                 { return nil }

func TestFailedSaveLeavesMemoryUnchanged(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	existing := model.Activity{
		ID: "act-1", Title: "Workout", StartTime: "07:00",
		CreatedAt: now, UpdatedAt: now,
	}
	boom := errors.New("disk full")
	store := &failingStore{
		loadResult: model.Schedule{Activities: []model.Activity{existing}, LastModified: now},
		saveErr:    boom,
	}
	state := New(store, WithClock(fixedClock(now.Add(time.Hour))))
	ctx := context.Background()
	require.NoError(t, state.Load(ctx))

	_, err := state.Add(ctx, model.Draft{Title: "Lunch", StartTime: "12:00"})
	require.ErrorIs(t, err, boom)
	require.Len(t, state.Activities(), 1, "failed write must not grow the in-memory list")
	require.True(t, state.LastModified().Equal(now))

	require.ErrorIs(t, state.Remove(ctx, "act-1"), boom)
	require.Len(t, state.Activities(), 1)
}

func TestChangeListenerReceivesPostMutationSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	var snapshots [][]model.Activity
	state, _ := openState(t,
		WithClock(fixedClock(now)),
		WithChangeListener(func(activities []model.Activity) {
			snapshots = append(snapshots, activities)
		}),
	)
	ctx := context.Background()

	added, err := state.Add(ctx, model.Draft{Title: "Workout", StartTime: "07:00"})
	require.NoError(t, err)
	require.NoError(t, state.Remove(ctx, added.ID))

	require.Len(t, snapshots, 2)
	require.Len(t, snapshots[0], 1)
	require.Empty(t, snapshots[1])
}

// End-to-end: a mutation drives persistence, then rearms reminder timers
// through the change listener, exactly one timer for the one activity.
func TestMutationRearmsNotificationEngine(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.Local)
	engine := notify.NewEngine(notify.NoopNotifier{}, notify.StaticPermission(notify.PermissionGranted),
		notify.WithClock(fixedClock(now)),
		notify.WithArmFunc(func(d time.Duration, fn func()) func() bool {
			return func() bool { return true }
		}),
	)

	tokens := make(notify.TokenMap)
	state, store := openState(t,
		WithClock(fixedClock(now)),
		WithChangeListener(func(activities []model.Activity) {
			tokens = engine.Reschedule(activities, tokens, now)
		}),
	)
	ctx := context.Background()

	added, err := state.Add(ctx, model.Draft{Title: "Workout", StartTime: "07:00", NotifyAtStart: true})
	require.NoError(t, err)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, persisted.Activities, 1)

	require.Len(t, tokens, 1)
	require.Len(t, tokens[added.ID], 1)
	wantFire := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)
	require.True(t, tokens[added.ID][0].FireAt.Equal(wantFire))

	// Deleting the only activity empties the store and cancels its timer on
	// the next rearm pass.
	held := tokens[added.ID][0]
	require.NoError(t, state.Remove(ctx, added.ID))

	persisted, err = store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, persisted.Activities)
	require.Empty(t, tokens)
	require.True(t, held.Cancelled())
}
