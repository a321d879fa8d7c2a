// Package repository exposes the user and topic stores behind one facade so
// the auth controller and the profile aggregator depend on a single
// collaborator. The facade forwards to the stores; the only logic it adds is
// the deletion-authority check and the transactional user cascade.
package repository

import (
	"context"

	"github.com/proyectoforocine/forocore/internal/models"
)

// ForumRepository is the union of the user and topic store contracts consumed
// by the higher layers. Instances are constructor-injected; there is no
// package-level shared state.
type ForumRepository interface {
	// Users.
	InsertUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ObserveUserByID(ctx context.Context, id int64) <-chan *models.User

	// DeleteUser removes the user and all their topics in one transaction.
	DeleteUser(ctx context.Context, id int64) error

	// Topics.
	InsertTopic(ctx context.Context, topic *models.Topic) (int64, error)
	AllTopics(ctx context.Context) ([]models.Topic, error)
	GetTopicByID(ctx context.Context, id int64) (*models.Topic, error)
	ObserveAllTopics(ctx context.Context) <-chan []models.Topic
	ObserveTopicByID(ctx context.Context, id int64) <-chan *models.Topic
	ObserveTopicsByOwner(ctx context.Context, ownerID int64) <-chan []models.Topic

	// DeleteTopic removes a topic on behalf of actor. Only the owner or a
	// moderator may delete; anyone else gets common.ErrForbidden.
	DeleteTopic(ctx context.Context, topic *models.Topic, actor *models.User) error
}
