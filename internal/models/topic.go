package models

import "time"

// Topic is one discussion thread, owned by a user. Deleting the owner
// cascades to all their topics.
type Topic struct {
	ID        int64
	Title     string
	Content   string
	Category  string
	Rating    int
	OwnerID   int64
	CreatedAt time.Time
}
