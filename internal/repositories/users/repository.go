// Package users stores forum account records. Emails are unique; identifiers
// are store-assigned and monotonically increasing.
package users

import (
	"context"

	"github.com/proyectoforocine/forocore/internal/models"
)

// Repository describes the user store contract.
type Repository interface {
	// Insert creates a new user record and returns its assigned id.
	// common.ErrEmailTaken is returned when the email is already registered;
	// in that case nothing is inserted.
	Insert(ctx context.Context, user *models.User) (int64, error)

	// GetByEmail is a one-shot lookup; common.ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID is a one-shot lookup; common.ErrNotFound when absent.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// ObserveByID emits the record (nil when absent) immediately and after
	// every change to the users table. Conflated; closes when ctx ends.
	ObserveByID(ctx context.Context, id int64) <-chan *models.User

	// Delete removes the user; owned topics go with it (cascade).
	Delete(ctx context.Context, id int64) error
}
