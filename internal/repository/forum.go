package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/proyectoforocine/forocore/internal/common"
	"github.com/proyectoforocine/forocore/internal/dbx"
	"github.com/proyectoforocine/forocore/internal/models"
	"github.com/proyectoforocine/forocore/internal/repositories/topics"
	"github.com/proyectoforocine/forocore/internal/repositories/users"
	"github.com/proyectoforocine/forocore/internal/watch"
)

// Forum is the sqlite-backed ForumRepository.
type Forum struct {
	db      *sql.DB
	tracker *watch.Tracker
	users   users.Repository
	topics  topics.Repository
}

// NewForum wires the store implementations over one database handle and one
// change tracker.
func NewForum(db *sql.DB, tracker *watch.Tracker) *Forum {
	return &Forum{
		db:      db,
		tracker: tracker,
		users:   users.NewSQLiteRepository(db, tracker),
		topics:  topics.NewSQLiteRepository(db, tracker),
	}
}

func (f *Forum) InsertUser(ctx context.Context, user *models.User) (int64, error) {
	return f.users.Insert(ctx, user)
}

func (f *Forum) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.users.GetByEmail(ctx, email)
}

func (f *Forum) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return f.users.GetByID(ctx, id)
}

func (f *Forum) ObserveUserByID(ctx context.Context, id int64) <-chan *models.User {
	return f.users.ObserveByID(ctx, id)
}

// DeleteUser removes the user and their topics as an explicit two-step delete
// inside one transaction; the schema-level FK cascade backstops it. Observers
// are notified only after the commit.
func (f *Forum) DeleteUser(ctx context.Context, id int64) error {
	err := dbx.WithTx(ctx, f.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := topics.NewSQLiteRepository(tx, nil).DeleteByOwner(ctx, id); err != nil {
			return err
		}
		return users.NewSQLiteRepository(tx, nil).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	f.tracker.Notify(models.TableUsers, models.TableTopics)
	return nil
}

func (f *Forum) InsertTopic(ctx context.Context, topic *models.Topic) (int64, error) {
	if strings.TrimSpace(topic.Title) == "" {
		return 0, common.ErrEmptyTitle
	}
	return f.topics.Insert(ctx, topic)
}

func (f *Forum) AllTopics(ctx context.Context) ([]models.Topic, error) {
	return f.topics.All(ctx)
}

func (f *Forum) GetTopicByID(ctx context.Context, id int64) (*models.Topic, error) {
	return f.topics.GetByID(ctx, id)
}

func (f *Forum) ObserveAllTopics(ctx context.Context) <-chan []models.Topic {
	return f.topics.ObserveAll(ctx)
}

func (f *Forum) ObserveTopicByID(ctx context.Context, id int64) <-chan *models.Topic {
	return f.topics.ObserveByID(ctx, id)
}

func (f *Forum) ObserveTopicsByOwner(ctx context.Context, ownerID int64) <-chan []models.Topic {
	return f.topics.ObserveByOwner(ctx, ownerID)
}

func (f *Forum) DeleteTopic(ctx context.Context, topic *models.Topic, actor *models.User) error {
	if actor == nil || (actor.ID != topic.OwnerID && !actor.IsModerator()) {
		return common.ErrForbidden
	}
	return f.topics.Delete(ctx, topic.ID)
}
