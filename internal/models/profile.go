package models

// Preferences is the locally edited, not-yet-persisted preference state shown
// on the profile screen.
type Preferences struct {
	DarkMode      bool
	Notifications bool
	AvatarRef     string
}

// ProfileSnapshot combines the current user record, the topics they own, and
// ephemeral UI state into one internally consistent value. User and Topics
// are always replaced together; consumers never see one updated without the
// other.
type ProfileSnapshot struct {
	User             *User
	Topics           []Topic
	Prefs            Preferences
	IsLoading        bool
	ShowAvatarDialog bool
}
