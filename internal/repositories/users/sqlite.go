package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/proyectoforocine/forocore/internal/common"
	"github.com/proyectoforocine/forocore/internal/dbx"
	"github.com/proyectoforocine/forocore/internal/models"
	"github.com/proyectoforocine/forocore/internal/watch"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db      dbx.DBTX
	tracker *watch.Tracker
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
// tracker may be nil for transactional handles that must not publish changes
// before commit; Observe methods require a non-nil tracker.
func NewSQLiteRepository(db dbx.DBTX, tracker *watch.Tracker) *SQLiteRepository {
	return &SQLiteRepository{db: db, tracker: tracker}
}

// Insert creates the user. OR IGNORE keeps the unique-email violation from
// inserting anything; zero affected rows distinguishes that case.
func (r *SQLiteRepository) Insert(ctx context.Context, user *models.User) (int64, error) {
	query := `INSERT OR IGNORE INTO users (username, email, password, role, registered_at)
			VALUES (?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.Password, user.Role, user.RegisteredAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return 0, common.ErrEmailTaken
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	r.notify()
	return id, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, username, email, password, role, registered_at FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, username, email, password, role, registered_at FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) ObserveByID(ctx context.Context, id int64) <-chan *models.User {
	out := make(chan *models.User, 1)
	changes := r.tracker.Subscribe(ctx, models.TableUsers)

	go func() {
		defer close(out)

		emit := func() bool {
			user, err := r.GetByID(ctx, id)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				// A single read fault skips the emission but keeps the
				// subscription alive.
				return false
			}
			watch.SendLatest(out, user)
			return true
		}

		emit()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				emit()
			}
		}
	}()

	return out
}

// Delete removes the user row. The topics FK cascades, so observers of both
// tables are notified.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if r.tracker != nil {
		r.tracker.Notify(models.TableUsers, models.TableTopics)
	}
	return nil
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var registeredAt int64
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &registeredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user.RegisteredAt = time.Unix(registeredAt, 0)
	return user, nil
}

func (r *SQLiteRepository) notify() {
	if r.tracker != nil {
		r.tracker.Notify(models.TableUsers)
	}
}
