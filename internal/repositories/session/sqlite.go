package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/proyectoforocine/forocore/internal/dbx"
	"github.com/proyectoforocine/forocore/internal/models"
	"github.com/proyectoforocine/forocore/internal/watch"
)

const currentUserKey = "current_user_id"

// SQLiteRepository stores the session in a one-row key-value table.
type SQLiteRepository struct {
	db      dbx.DBTX
	tracker *watch.Tracker
}

// NewSQLiteRepository returns a session Repository bound to the given DBTX.
// tracker may be nil for transactional handles that must not publish changes
// before commit; Observe requires a non-nil tracker.
func NewSQLiteRepository(db dbx.DBTX, tracker *watch.Tracker) *SQLiteRepository {
	return &SQLiteRepository{db: db, tracker: tracker}
}

func (r *SQLiteRepository) Current(ctx context.Context) (*int64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, currentUserKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return &value, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, currentUserKey, userID)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	r.notify()
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, currentUserKey)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	r.notify()
	return nil
}

func (r *SQLiteRepository) Observe(ctx context.Context) <-chan *int64 {
	out := make(chan *int64, 1)
	changes := r.tracker.Subscribe(ctx, models.TableSession)

	go func() {
		defer close(out)

		if id, err := r.Current(ctx); err == nil {
			watch.SendLatest(out, id)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				id, err := r.Current(ctx)
				if err != nil {
					continue
				}
				watch.SendLatest(out, id)
			}
		}
	}()

	return out
}

func (r *SQLiteRepository) notify() {
	if r.tracker != nil {
		r.tracker.Notify(models.TableSession)
	}
}
