package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/proyectoforocine/forocore/internal/common"
	"github.com/proyectoforocine/forocore/internal/models"
	"github.com/proyectoforocine/forocore/internal/watch"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  password TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'registered',
  registered_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX idx_users_email ON users (email);
`)
	require.NoError(t, err)

	return db
}

func newUser(email string) *models.User {
	return &models.User{
		Username:     "cinefan",
		Email:        email,
		Password:     "secret1",
		Role:         models.RoleRegistered,
		RegisteredAt: time.Unix(1700000000, 0),
	}
}

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
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

func TestInsert_AssignsMonotonicIDs(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx := context.Background()

	id1, err := r.Insert(ctx, newUser("a@x.com"))
	require.NoError(t, err)
	id2, err := r.Insert(ctx, newUser("b@x.com"))
	require.NoError(t, err)

	assert.Greater(t, id2, id1)
}

func TestInsert_DuplicateEmailLeavesStoreUnchanged(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx := context.Background()

	_, err := r.Insert(ctx, newUser("a@x.com"))
	require.NoError(t, err)

	_, err = r.Insert(ctx, newUser("a@x.com"))
	require.ErrorIs(t, err, common.ErrEmailTaken)
	assert.Equal(t, 1, countUsers(t, db))
}

func TestGetByEmail(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx := context.Background()

	id, err := r.Insert(ctx, newUser("a@x.com"))
	require.NoError(t, err)

	got, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "cinefan", got.Username)
	assert.Equal(t, "secret1", got.Password)
	assert.Equal(t, models.RoleRegistered, got.Role)
	assert.Equal(t, int64(1700000000), got.RegisteredAt.Unix())

	_, err = r.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByEmail_IsCaseSensitive(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx := context.Background()

	_, err := r.Insert(ctx, newUser("A@x.com"))
	require.NoError(t, err)

	_, err = r.GetByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestObserveByID_EmitsChangesAndAbsence(t *testing.T) {
	db := setupDB(t)
	tr := watch.NewTracker()
	r := NewSQLiteRepository(db, tr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id, err := r.Insert(ctx, newUser("a@x.com"))
	require.NoError(t, err)

	ch := r.ObserveByID(ctx, id)
	waitFor(t, ch, func(u *models.User) bool { return u != nil && u.Username == "cinefan" })

	_, err = db.Exec(`UPDATE users SET username = 'renamed' WHERE id = ?`, id)
	require.NoError(t, err)
	tr.Notify(models.TableUsers)
	waitFor(t, ch, func(u *models.User) bool { return u != nil && u.Username == "renamed" })

	require.NoError(t, r.Delete(ctx, id))
	waitFor(t, ch, func(u *models.User) bool { return u == nil })
}

func TestDelete_RemovesRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, watch.NewTracker())
	ctx := context.Background()

	id, err := r.Insert(ctx, newUser("a@x.com"))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.GetByID(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
