// Package session persists which user, if any, is currently authenticated on
// this device. At most one session exists at a time; absence means logged out.
package session

import "context"

// Repository is the durable single-key session store.
type Repository interface {
	// Current returns the logged-in user id, or nil when no session is active.
	Current(ctx context.Context) (*int64, error)

	// Observe emits the current value immediately and again after every
	// Save or Clear. Emissions are conflated; the channel closes when ctx
	// ends. A transient read fault skips one emission, it does not
	// terminate the stream.
	Observe(ctx context.Context) <-chan *int64

	// Save durably records userID as the active session. The last committed
	// write wins and is visible to all active subscriptions.
	Save(ctx context.Context, userID int64) error

	// Clear durably removes the active session. Idempotent.
	Clear(ctx context.Context) error
}
