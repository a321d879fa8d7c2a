package topics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/proyectoforocine/forocore/internal/common"
	"github.com/proyectoforocine/forocore/internal/dbx"
	"github.com/proyectoforocine/forocore/internal/models"
	"github.com/proyectoforocine/forocore/internal/watch"
)

const topicColumns = `id, title, content, category, rating, owner_id, created_at`

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

func (r *SQLiteRepository) Insert(ctx context.Context, topic *models.Topic) (int64, error) {
	query := `INSERT INTO topics (title, content, category, rating, owner_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		topic.Title, topic.Content, topic.Category, topic.Rating, topic.OwnerID, topic.CreatedAt.Unix())
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, common.ErrOwnerMissing
		}
		return 0, fmt.Errorf("failed to insert topic: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	r.notify()
	return id, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	r.notify()
	return nil
}

func (r *SQLiteRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE owner_id = ?`, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete topics by owner: %w", err)
	}
	r.notify()
	return nil
}

func (r *SQLiteRepository) All(ctx context.Context) ([]models.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics ORDER BY id DESC`
	return r.queryList(ctx, query)
}

func (r *SQLiteRepository) ByOwner(ctx context.Context, ownerID int64) ([]models.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics WHERE owner_id = ? ORDER BY id DESC`
	return r.queryList(ctx, query, ownerID)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	topic, err := scanTopic(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan topic: %w", err)
	}
	return topic, nil
}

func (r *SQLiteRepository) ObserveAll(ctx context.Context) <-chan []models.Topic {
	return r.observeList(ctx, func() ([]models.Topic, error) { return r.All(ctx) })
}

func (r *SQLiteRepository) ObserveByOwner(ctx context.Context, ownerID int64) <-chan []models.Topic {
	return r.observeList(ctx, func() ([]models.Topic, error) { return r.ByOwner(ctx, ownerID) })
}

func (r *SQLiteRepository) ObserveByID(ctx context.Context, id int64) <-chan *models.Topic {
	out := make(chan *models.Topic, 1)
	changes := r.tracker.Subscribe(ctx, models.TableTopics)

	go func() {
		defer close(out)

		emit := func() {
			topic, err := r.GetByID(ctx, id)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return
			}
			watch.SendLatest(out, topic)
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

func (r *SQLiteRepository) observeList(ctx context.Context, load func() ([]models.Topic, error)) <-chan []models.Topic {
	out := make(chan []models.Topic, 1)
	changes := r.tracker.Subscribe(ctx, models.TableTopics)

	go func() {
		defer close(out)

		emit := func() {
			list, err := load()
			if err != nil {
				// A single read fault skips the emission but keeps the
				// subscription alive.
				return
			}
			watch.SendLatest(out, list)
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

func (r *SQLiteRepository) queryList(ctx context.Context, query string, args ...any) ([]models.Topic, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select topics: %w", err)
	}
	defer rows.Close()

	result := []models.Topic{}
	for rows.Next() {
		topic, err := scanTopic(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *topic)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func scanTopic(scan func(dest ...any) error) (*models.Topic, error) {
	topic := &models.Topic{}
	var createdAt int64
	if err := scan(&topic.ID, &topic.Title, &topic.Content, &topic.Category, &topic.Rating, &topic.OwnerID, &createdAt); err != nil {
		return nil, err
	}
	topic.CreatedAt = time.Unix(createdAt, 0)
	return topic, nil
}

// isForeignKeyViolation sniffs the driver error text; modernc.org/sqlite does
// not export a typed constraint error.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func (r *SQLiteRepository) notify() {
	if r.tracker != nil {
		r.tracker.Notify(models.TableTopics)
	}
}
