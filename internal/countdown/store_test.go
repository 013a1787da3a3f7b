package countdown_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/backend/internal/countdown"
	"showcase/backend/internal/model"
)

func newTestStore(blob countdown.BlobStore, clock *fakeClock) *countdown.Store {
	return countdown.NewStore("owner-1", blob,
		countdown.WithClock(clock),
		countdown.WithLocation(time.UTC))
}

func TestStore_CreateAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blob := newCountingBlob()
	store := newTestStore(blob, clock)

	first, err := store.Create(ctx, "  Launch  ", clock.Now().Add(90*time.Minute))
	require.NoError(t, err)
	second, err := store.Create(ctx, "Party", clock.Now().Add(48*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "Launch", first.Name)
	assert.False(t, first.Completed)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "2026-10-18", first.TargetDate)
	assert.Equal(t, "13:30", first.TargetTime)
	assert.Equal(t, 2, blob.saveCount())

	restored := newTestStore(blob, clock)
	loaded, err := restored.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.List(), loaded)
	assert.Equal(t, []string{first.ID, second.ID}, []string{loaded[0].ID, loaded[1].ID})
}

func TestStore_CreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	tests := []struct {
		name        string
		timerName   string
		target      time.Time
		expectedErr error
	}{
		{
			name:        "target equal to now",
			timerName:   "Now",
			target:      clock.Now(),
			expectedErr: countdown.ErrInvalidDate,
		},
		{
			name:        "target in the past",
			timerName:   "Past",
			target:      clock.Now().Add(-time.Minute),
			expectedErr: countdown.ErrInvalidDate,
		},
		{
			name:        "blank name",
			timerName:   "   ",
			target:      clock.Now().Add(time.Hour),
			expectedErr: countdown.ErrEmptyField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := newCountingBlob()
			store := newTestStore(blob, clock)

			_, err := store.Create(ctx, tt.timerName, tt.target)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, store.List())
			assert.Zero(t, blob.saveCount())
		})
	}
}

func TestStore_CreateRollsBackOnStorageFailure(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blob := newCountingBlob()
	store := newTestStore(blob, clock)

	kept, err := store.Create(ctx, "Kept", clock.Now().Add(time.Hour))
	require.NoError(t, err)

	blob.setFailing(true)
	_, err = store.Create(ctx, "Lost", clock.Now().Add(time.Hour))

	assert.ErrorIs(t, err, countdown.ErrUnavailableStorage)
	assert.Equal(t, []model.TimerRecord{kept}, store.List())
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blob := newCountingBlob()
	store := newTestStore(blob, clock)

	a, err := store.Create(ctx, "A", clock.Now().Add(time.Hour))
	require.NoError(t, err)
	b, err := store.Create(ctx, "B", clock.Now().Add(time.Hour))
	require.NoError(t, err)

	err = store.Delete(ctx, "missing")
	assert.ErrorIs(t, err, countdown.ErrNotFound)

	blob.setFailing(true)
	err = store.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, countdown.ErrUnavailableStorage)
	assert.Len(t, store.List(), 2)

	blob.setFailing(false)
	require.NoError(t, store.Delete(ctx, a.ID))
	assert.Equal(t, []model.TimerRecord{b}, store.List())

	reloaded, err := newTestStore(blob, clock).LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.TimerRecord{b}, reloaded)
}

func TestStore_MarkCompletedIsMonotone(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blob := newCountingBlob()
	store := newTestStore(blob, clock)

	record, err := store.Create(ctx, "A", clock.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, store.MarkCompleted(ctx, record.ID))
	saves := blob.saveCount()
	require.NoError(t, store.MarkCompleted(ctx, record.ID))
	assert.Equal(t, saves, blob.saveCount())

	got, ok := store.Get(record.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)

	assert.ErrorIs(t, store.MarkCompleted(ctx, "missing"), countdown.ErrNotFound)
}

func TestStore_LoadAll(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	t.Run("missing snapshot is empty", func(t *testing.T) {
		records, err := newTestStore(newCountingBlob(), clock).LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("corrupt snapshot", func(t *testing.T) {
		blob := newCountingBlob()
		require.NoError(t, blob.Save(ctx, []byte("not-json")))

		_, err := newTestStore(blob, clock).LoadAll(ctx)
		assert.Error(t, err)
	})

	t.Run("duplicate ids keep the first record", func(t *testing.T) {
		blob := newCountingBlob()
		raw := `[{"id":"x","name":"first","targetDateTime":"2026-10-19T00:00:00Z"},
		         {"id":"x","name":"second","targetDateTime":"2026-10-19T00:00:00Z"}]`
		require.NoError(t, blob.Save(ctx, []byte(raw)))

		records, err := newTestStore(blob, clock).LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "first", records[0].Name)
	})
}

func TestParseTarget(t *testing.T) {
	got, err := countdown.ParseTarget("2026-12-31", "", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), got)

	got, err = countdown.ParseTarget("2026-12-31", "23:59:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 31, 23, 59, 30, 0, time.UTC), got)

	_, err = countdown.ParseTarget("", "10:00", time.UTC)
	assert.ErrorIs(t, err, countdown.ErrInvalidDate)

	_, err = countdown.ParseTarget("31/12/2026", "10:00", time.UTC)
	assert.ErrorIs(t, err, countdown.ErrInvalidDate)
}
