package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	snap := a.agg.Snapshot().Get()
	if snap.User != nil && a.isLoggedIn() {
		return fmt.Sprintf("(%s)", snap.User.Username)
	}
	if a.isLoggedIn() {
		return "(logged in)"
	}
	return ""
}

// waitForBootstrap blocks until the one-shot session read has resolved, so
// the first prompt already reflects whether a previous session survives.
func (a *App) waitForBootstrap(ctx context.Context) {
	for loading := range a.ctrl.SessionLoading().Observe(ctx) {
		if !loading {
			return
		}
	}
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to the forum CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.waitForBootstrap(ctx)
	if id := a.ctrl.CurrentUserID().Get(); id != nil {
		fmt.Println("Restored previous session.")
		a.startProfile(ctx, *id)
	}

	for {
		fmt.Printf("foro %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: (l)ist, newtopic, deltopic <id>, profile, dark, notif, avatar, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, forgot, list, exit")
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "forgot":
			_ = a.ForgotPassword(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "newtopic":
			_ = a.NewTopic(ctx)
		case "deltopic":
			if len(args) == 0 {
				fmt.Println("Usage: deltopic <id>")
				continue
			}
			_ = a.DeleteTopic(ctx, args[0])
		case "profile":
			_ = a.Profile(ctx)
		case "dark":
			_ = a.ToggleDarkMode(ctx)
		case "notif":
			_ = a.ToggleNotifications(ctx)
		case "avatar":
			_ = a.PickAvatar(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
