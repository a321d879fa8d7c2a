package cli

import (
	"context"
	"fmt"
)

func (a *App) Profile(ctx context.Context) error {
	snap := a.agg.Snapshot().Get()
	if snap.IsLoading || snap.User == nil {
		fmt.Println("Profile not loaded yet.")
		return nil
	}

	fmt.Printf("%s <%s> role=%s joined=%s\n",
		snap.User.Username, snap.User.Email, snap.User.Role,
		snap.User.RegisteredAt.Format("2006-01-02"))
	fmt.Printf("dark mode: %v, notifications: %v", snap.Prefs.DarkMode, snap.Prefs.Notifications)
	if snap.Prefs.AvatarRef != "" {
		fmt.Printf(", avatar: %s", snap.Prefs.AvatarRef)
	}
	fmt.Println()

	if len(snap.Topics) == 0 {
		fmt.Println("No topics created yet.")
		return nil
	}
	fmt.Println("Your topics:")
	for _, t := range snap.Topics {
		fmt.Printf("  #%d [%s] %s\n", t.ID, t.Category, t.Title)
	}
	return nil
}

func (a *App) ToggleDarkMode(ctx context.Context) error {
	on := !a.agg.Snapshot().Get().Prefs.DarkMode
	a.agg.SetDarkMode(on)
	fmt.Println("Dark mode:", on)
	return nil
}

func (a *App) ToggleNotifications(ctx context.Context) error {
	on := !a.agg.Snapshot().Get().Prefs.Notifications
	a.agg.SetNotifications(on)
	fmt.Println("Notifications:", on)
	return nil
}

func (a *App) PickAvatar(ctx context.Context) error {
	a.agg.ShowAvatarDialog()
	ref := a.agg.SetAvatar()
	fmt.Println("New avatar reference:", ref)
	return nil
}
