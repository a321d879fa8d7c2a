// Package topics stores discussion-thread records. Every topic is owned by a
// user; deleting the owner removes their topics. Lists are ordered newest
// first, which with store-assigned monotonic ids is descending id order.
package topics

import (
	"context"

	"github.com/proyectoforocine/forocore/internal/models"
)

// Repository describes the topic store contract.
type Repository interface {
	// Insert creates a new topic and returns its assigned id.
	// common.ErrOwnerMissing when the owning user does not exist.
	Insert(ctx context.Context, topic *models.Topic) (int64, error)

	// Delete removes a topic by id.
	Delete(ctx context.Context, id int64) error

	// DeleteByOwner removes every topic owned by the user.
	DeleteByOwner(ctx context.Context, ownerID int64) error

	// One-shot reads.
	All(ctx context.Context) ([]models.Topic, error)
	GetByID(ctx context.Context, id int64) (*models.Topic, error)
	ByOwner(ctx context.Context, ownerID int64) ([]models.Topic, error)

	// Continuous reads: emit immediately, then after every topics change.
	// Conflated; closed when ctx ends.
	ObserveAll(ctx context.Context) <-chan []models.Topic
	ObserveByID(ctx context.Context, id int64) <-chan *models.Topic
	ObserveByOwner(ctx context.Context, ownerID int64) <-chan []models.Topic
}
