package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/proyectoforocine/forocore/internal/watch"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value INTEGER NOT NULL);`)
	require.NoError(t, err)

	return db
}

func waitFor[T any](t *testing.T, ch <-chan T, pred func(T) bool) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				t.Fatal("channel closed before condition held")
			}
			if pred(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for condition")
		}
	}
}

func TestSaveThenCurrent_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, 42))

	id, err := r.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(42), *id)
}

func TestSaveThenObserve_FirstValueIsSaved(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, r.Save(ctx, 42))

	got := <-r.Observe(ctx)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), *got)
}

func TestCurrent_NoSessionMeansNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())

	id, err := r.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestClear_Idempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, 7))
	require.NoError(t, r.Clear(ctx))

	id, err := r.Current(ctx)
	require.NoError(t, err)
	require.Nil(t, id, "cleared session reads as logged out")

	// Clearing twice in a row must behave the same.
	require.NoError(t, r.Clear(ctx))
	id, err = r.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestObserve_ReEmitsOnEveryWrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := r.Observe(ctx)
	waitFor(t, ch, func(v *int64) bool { return v == nil })

	require.NoError(t, r.Save(ctx, 1))
	waitFor(t, ch, func(v *int64) bool { return v != nil && *v == 1 })

	require.NoError(t, r.Save(ctx, 2))
	waitFor(t, ch, func(v *int64) bool { return v != nil && *v == 2 })

	require.NoError(t, r.Clear(ctx))
	waitFor(t, ch, func(v *int64) bool { return v == nil })
}

func TestObserve_LastCommittedWriteWins(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := r.Observe(ctx)

	for i := int64(1); i <= 25; i++ {
		require.NoError(t, r.Save(ctx, i))
	}

	waitFor(t, ch, func(v *int64) bool { return v != nil && *v == 25 })
}
