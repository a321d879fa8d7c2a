// Package models holds the value types stored and served by the forum data
// layer. Records are immutable snapshots once read; all mutation goes through
// the repository contracts.
package models

import "time"

// Role is the authorization level of a forum account.
type Role string

const (
	RoleRegistered Role = "registered"
	RoleModerator  Role = "moderator"
)

// Table names used as change-notification keys by the repositories.
const (
	TableUsers   = "users"
	TableTopics  = "topics"
	TableSession = "session"
)

// User is one row of the users table. Password holds whatever the configured
// credential scheme produced at registration time (see auth.Verifier); with
// the compatibility "plain" scheme it is the raw password.
type User struct {
	ID           int64
	Username     string
	Email        string
	Password     string
	Role         Role
	RegisteredAt time.Time
}

// IsModerator reports whether the user may act on records it does not own.
func (u *User) IsModerator() bool {
	return u != nil && u.Role == RoleModerator
}
